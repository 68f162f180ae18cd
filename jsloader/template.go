package jsloader

import "strings"

// loaderTemplate is the fixed JS glue shipped alongside the page: it
// instantiates the embedded WASM decoder module, decodes the CSS text
// from the two compact streams baked into its linear memory, performs
// the one remaining substitution the decoder itself cannot do ({%SHA%},
// which is identical across every font face and therefore left out of
// the per-face WASM write_src callback), and injects the result as a
// <style> element.
const loaderTemplate = `(function () {
  "use strict";

  var WASM_BASE64 = "{{WASM_BASE64}}";
  var FONT_SPECS = {{FONT_SPECS}};
  var ARTIFACT_SHA = "{{SHA}}";

  function b64ToBytes(b64) {
    var bin = atob(b64);
    var bytes = new Uint8Array(bin.length);
    for (var i = 0; i < bin.length; i++) bytes[i] = bin.charCodeAt(i);
    return bytes;
  }

  function decodeUtf8(bytes) {
    return new TextDecoder("utf-8").decode(bytes);
  }

  function instantiate(bytes) {
    var chunks = [];
    var memory = null;
    var exports = null;

    function writeChunk(ptr, len) {
      chunks.push(
        new Uint8Array(memory.buffer.slice(ptr, ptr + len))
      );
    }

    var imports = {
      env: {
        js_write_font_face_ext: function (faceIdx, ptr) {
          var ext = FONT_SPECS[faceIdx].ext;
          var bytes = new TextEncoder().encode(ext);
          writeChunk(ptr, bytes.length);
        },
        js_write_font_face_src: function (faceIdx, fidPtr, fidLen, ptr) {
          var fid = decodeUtf8(
            new Uint8Array(memory.buffer.slice(fidPtr, fidPtr + fidLen))
          );
          var src = FONT_SPECS[faceIdx].src.split("{%FID%}").join(fid);
          var bytes = new TextEncoder().encode(src);
          writeChunk(ptr, bytes.length);
        },
      },
    };

    return WebAssembly.instantiate(bytes, imports).then(function (result) {
      exports = result.instance.exports;
      memory = exports.memory;
      exports.init_writer();
      exports.decode_css(FONT_SPECS.length);
      var total = 0;
      for (var i = 0; i < chunks.length; i++) total += chunks[i].length;
      var out = new Uint8Array(total);
      var off = 0;
      for (var i = 0; i < chunks.length; i++) {
        out.set(chunks[i], off);
        off += chunks[i].length;
      }
      return decodeUtf8(out).split("{%SHA%}").join(ARTIFACT_SHA);
    });
  }

  instantiate(b64ToBytes(WASM_BASE64)).then(function (css) {
    var style = document.createElement("style");
    style.setAttribute("data-fontchan-sha", ARTIFACT_SHA);
    style.textContent = css;
    document.head.appendChild(style);
  });
})();
`

// render substitutes the three build-time metavariables in loaderTemplate.
// wasmBase64 and sha are inserted inside the template's existing quotes;
// fontSpecsJSON is inserted bare, since it is already a valid JS array
// literal. These double-brace tokens are distinct from the single-percent
// "{%FID%}"/"{%SHA%}" placeholders embedded in a font's css.src fragment,
// which the template's own runtime JS substitutes after decoding.
func render(wasmBase64, fontSpecsJSON, sha string) string {
	replacer := strings.NewReplacer(
		"{{WASM_BASE64}}", wasmBase64,
		"{{FONT_SPECS}}", fontSpecsJSON,
		"{{SHA}}", sha,
	)
	return replacer.Replace(loaderTemplate)
}

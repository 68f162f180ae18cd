package decodermod

import "github.com/hsfzxjy/fontchan-go/decodermod/wasmbin"

// dataBase is the linear-memory address where the decoder module's static
// data segment starts. The five mutable globals below are addresses
// inside that segment; only one of the six exported globals
// (__data_end) is not itself a data-segment slot — it is the
// linker-computed address one past the last static byte, i.e. where the
// heap begins.
const dataBase = 1024

// dummy is the placeholder value the decoder's Rust source initializes
// each patched static with before the rewriter runs (see
// fontchan-decoder-wasm/src/lib.rs).
const dummy = 42

// globalNames lists the six i32 globals the rewriter must find, in the
// fixed order the algorithm reads them.
var globalNames = [6]string{
	"__data_end", "URANGE_START", "URANGE_LEN", "FID_START", "FID_LEN", "HEAP_START",
}

// BuildTemplate constructs, byte for byte, a minimal WASM module
// satisfying the decoder-module contract: a linear memory, six exported
// i32 globals (addresses, not values) named per globalNames, a sole
// active data segment holding placeholder storage for the five
// patchable globals, and stub `init_writer`/`decode_css` exports plus
// `js_write_font_face_ext`/`js_write_font_face_src` imports matching the
// calling convention the loader's generated glue code expects.
//
// This stands in for the precompiled artifact the original toolchain
// produces from a dedicated no_std Rust crate; see DESIGN.md for why a
// hand-built module is used instead.
func BuildTemplate() []byte {
	// Five patchable statics (URANGE_START..HEAP_START), 4 bytes each,
	// each holding the DUMMY placeholder value.
	staticsSize := 5 * 4
	dataEnd := dataBase + staticsSize

	oldBytes := make([]byte, staticsSize)
	for i := 0; i < 5; i++ {
		putU32(oldBytes[i*4:], dummy)
	}

	addrs := [6]int{
		dataEnd,       // __data_end
		dataBase + 0,  // URANGE_START slot
		dataBase + 4,  // URANGE_LEN slot
		dataBase + 8,  // FID_START slot
		dataBase + 12, // FID_LEN slot
		dataBase + 16, // HEAP_START slot
	}

	typeSec := encodeTypeSection()
	importSec := encodeImportSection()
	funcSec := encodeFunctionSection()
	memSec := encodeMemorySection(1)
	globalSec := encodeGlobalSection(addrs)
	exportSec := encodeExportSection()
	codeSec := encodeCodeSection()
	dataSec := encodeDataSection(dataBase, oldBytes)

	return wasmbin.EncodeModule([]wasmbin.Section{
		{ID: wasmbin.SecType, Data: typeSec},
		{ID: wasmbin.SecImport, Data: importSec},
		{ID: wasmbin.SecFunction, Data: funcSec},
		{ID: wasmbin.SecMemory, Data: memSec},
		{ID: wasmbin.SecGlobal, Data: globalSec},
		{ID: wasmbin.SecExport, Data: exportSec},
		{ID: wasmbin.SecCode, Data: codeSec},
		{ID: wasmbin.SecData, Data: dataSec},
	})
}

func putU32(dst []byte, v uint32) {
	dst[0] = byte(v)
	dst[1] = byte(v >> 8)
	dst[2] = byte(v >> 16)
	dst[3] = byte(v >> 24)
}

// valtype/functype tags.
const (
	valI32  = 0x7f
	funcTag = 0x60
)

func encodeFuncType(params, results int) []byte {
	var b []byte
	b = append(b, funcTag)
	b = wasmbin.AppendUvarint(b, uint64(params))
	for i := 0; i < params; i++ {
		b = append(b, valI32)
	}
	b = wasmbin.AppendUvarint(b, uint64(results))
	for i := 0; i < results; i++ {
		b = append(b, valI32)
	}
	return b
}

// Type 0: () -> i32              [init_writer]
// Type 1: (i32,i32) -> i32       [decode_css, js_write_font_face_ext]
// Type 2: (i32,i32,i32,i32)->i32 [js_write_font_face_src]
func encodeTypeSection() []byte {
	var b []byte
	b = wasmbin.AppendUvarint(b, 3)
	b = append(b, encodeFuncType(0, 1)...)
	b = append(b, encodeFuncType(2, 1)...)
	b = append(b, encodeFuncType(4, 1)...)
	return b
}

func encodeImportSection() []byte {
	var b []byte
	b = wasmbin.AppendUvarint(b, 2)
	b = wasmbin.AppendVec(b, []byte("env"))
	b = wasmbin.AppendVec(b, []byte("js_write_font_face_ext"))
	b = append(b, 0x00) // func import kind
	b = wasmbin.AppendUvarint(b, 1)
	b = wasmbin.AppendVec(b, []byte("env"))
	b = wasmbin.AppendVec(b, []byte("js_write_font_face_src"))
	b = append(b, 0x00)
	b = wasmbin.AppendUvarint(b, 2)
	return b
}

// encodeFunctionSection declares the two locally-defined functions'
// type indices. Imported functions occupy indices 0-1; init_writer is
// index 2 (type 0), decode_css is index 3 (type 1).
func encodeFunctionSection() []byte {
	var b []byte
	b = wasmbin.AppendUvarint(b, 2)
	b = wasmbin.AppendUvarint(b, 0)
	b = wasmbin.AppendUvarint(b, 1)
	return b
}

func encodeMemorySection(minPages uint32) []byte {
	var b []byte
	b = wasmbin.AppendUvarint(b, 1)
	b = append(b, 0x00) // limits: min only
	b = wasmbin.AppendUvarint(b, uint64(minPages))
	return b
}

func encodeGlobalSection(addrs [6]int) []byte {
	var b []byte
	b = wasmbin.AppendUvarint(b, uint64(len(addrs)))
	for _, addr := range addrs {
		b = append(b, valI32, 0x01) // i32, mutable
		b = append(b, 0x41)         // i32.const
		b = wasmbin.AppendVarint(b, int64(addr))
		b = append(b, 0x0b) // end
	}
	return b
}

func encodeExportSection() []byte {
	var b []byte
	b = wasmbin.AppendUvarint(b, uint64(6+3))
	appendExport := func(name string, kind byte, idx uint64) {
		b = wasmbin.AppendVec(b, []byte(name))
		b = append(b, kind)
		b = wasmbin.AppendUvarint(b, idx)
	}
	for i, name := range globalNames {
		appendExport(name, 0x03, uint64(i))
	}
	appendExport("memory", 0x02, 0)
	appendExport("init_writer", 0x00, 2)
	appendExport("decode_css", 0x00, 3)
	return b
}

// encodeCodeSection emits trivial `unreachable` bodies: WASM's
// stack-polymorphism after `unreachable` makes these valid for any
// declared result arity without implementing real control flow.
func encodeCodeSection() []byte {
	body := []byte{0x00, 0x00, 0x0b} // 0 locals, unreachable, end
	var b []byte
	b = wasmbin.AppendUvarint(b, 2)
	b = wasmbin.AppendVec(b, body)
	b = wasmbin.AppendVec(b, body)
	return b
}

func encodeDataSection(base int, content []byte) []byte {
	var b []byte
	b = wasmbin.AppendUvarint(b, 1)
	b = append(b, 0x00) // active, memory index 0 implied
	b = append(b, 0x41) // i32.const
	b = wasmbin.AppendVarint(b, int64(base))
	b = append(b, 0x0b) // end
	b = wasmbin.AppendVec(b, content)
	return b
}

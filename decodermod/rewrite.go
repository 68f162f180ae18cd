// Package decodermod builds and rewrites the WASM decoder module that
// ships alongside the generated loader script: a fixed module template
// (see template.go) plus a Rewrite step that embeds a specific build's
// urange_data/fid_data streams into it, following the same five-step
// data-segment-and-globals patch the original toolchain's wasm-mutate
// build step performs on its precompiled artifact.
package decodermod

import (
	"encoding/binary"
	"fmt"

	"github.com/hsfzxjy/fontchan-go/decodermod/wasmbin"
)

const pageSize = 65536

// global is one parsed WASM global: its i32.const value (an address, in
// this module's case).
type global struct {
	value int64
}

// Rewrite embeds urangeData and fidData into template's sole active data
// segment and bumps its memory minimum to accommodate heapSize bytes of
// runtime heap above the new data end, returning the patched module.
// heapSize should already include whatever headroom the caller wants
// (the loader builder adds 64KiB on top of its dry-run decode size).
func Rewrite(template, urangeData, fidData []byte, heapSize int) ([]byte, error) {
	sections, err := wasmbin.ParseModule(template)
	if err != nil {
		return nil, err
	}

	globals, err := parseGlobals(sections)
	if err != nil {
		return nil, err
	}
	addrs, err := exportedGlobalAddrs(sections, globals)
	if err != nil {
		return nil, err
	}

	dataIdx, base, oldPayload, err := findActiveDataSegment(sections)
	if err != nil {
		return nil, err
	}

	newPayload := append(append([]byte{}, oldPayload...), urangeData...)
	newPayload = append(newPayload, fidData...)

	patch := func(slot int, v uint32) error {
		rel := slot - base
		if rel < 0 || rel+4 > len(newPayload) {
			return fmt.Errorf("decodermod: global address %#x outside data segment", slot)
		}
		binary.LittleEndian.PutUint32(newPayload[rel:], v)
		return nil
	}

	oldLen := len(oldPayload)
	urangeStart := base + oldLen
	fidStart := urangeStart + len(urangeData)
	heapStart := fidStart + len(fidData)

	if err := patch(addrs[1], uint32(urangeStart)); err != nil {
		return nil, err
	}
	if err := patch(addrs[2], uint32(len(urangeData))); err != nil {
		return nil, err
	}
	if err := patch(addrs[3], uint32(fidStart)); err != nil {
		return nil, err
	}
	if err := patch(addrs[4], uint32(len(fidData))); err != nil {
		return nil, err
	}
	if err := patch(addrs[5], uint32(heapStart)); err != nil {
		return nil, err
	}

	dataEnd := int(addrs[0])
	newSize := dataEnd + heapSize + len(urangeData) + len(fidData)
	newPages := uint32((newSize + pageSize - 1) / pageSize)

	sections[dataIdx].Data = encodeDataSection(base, newPayload)
	if err := bumpMemory(sections, newPages); err != nil {
		return nil, err
	}

	return wasmbin.EncodeModule(sections), nil
}

// parseGlobals reads every entry of the global section (type byte,
// mutability byte, then a one-instruction init expr — the only form this
// module ever emits).
func parseGlobals(sections []wasmbin.Section) ([]global, error) {
	data, ok := sectionData(sections, wasmbin.SecGlobal)
	if !ok {
		return nil, fmt.Errorf("decodermod: module has no global section")
	}
	count, rest, err := wasmbin.ReadCount(data)
	if err != nil {
		return nil, err
	}
	globals := make([]global, 0, count)
	for i := 0; i < count; i++ {
		if len(rest) < 2 {
			return nil, fmt.Errorf("decodermod: truncated global %d", i)
		}
		rest = rest[2:] // valtype, mutability
		if len(rest) < 1 || rest[0] != 0x41 {
			return nil, fmt.Errorf("decodermod: global %d: only i32.const init exprs are supported", i)
		}
		rest = rest[1:]
		v, n, err := wasmbin.ReadVarint(rest)
		if err != nil {
			return nil, fmt.Errorf("decodermod: global %d: %w", i, err)
		}
		rest = rest[n:]
		if len(rest) < 1 || rest[0] != 0x0b {
			return nil, fmt.Errorf("decodermod: global %d: malformed init expr", i)
		}
		rest = rest[1:]
		globals = append(globals, global{value: v})
	}
	return globals, nil
}

// exportedGlobalAddrs resolves each name in globalNames to its global's
// i32.const value, in globalNames order.
func exportedGlobalAddrs(sections []wasmbin.Section, globals []global) ([6]int64, error) {
	var out [6]int64
	data, ok := sectionData(sections, wasmbin.SecExport)
	if !ok {
		return out, fmt.Errorf("decodermod: module has no export section")
	}
	byName := map[string]int{}
	count, rest, err := wasmbin.ReadCount(data)
	if err != nil {
		return out, err
	}
	for i := 0; i < count; i++ {
		name, r, err := wasmbin.ReadName(rest)
		if err != nil {
			return out, err
		}
		rest = r
		if len(rest) < 1 {
			return out, fmt.Errorf("decodermod: truncated export")
		}
		kind := rest[0]
		rest = rest[1:]
		idx, n, err := wasmbin.ReadUvarint(rest)
		if err != nil {
			return out, err
		}
		rest = rest[n:]
		if kind == 0x03 { // global
			byName[name] = int(idx)
		}
	}
	for i, name := range globalNames {
		idx, ok := byName[name]
		if !ok {
			return out, fmt.Errorf("decodermod: module does not export global %q", name)
		}
		if idx >= len(globals) {
			return out, fmt.Errorf("decodermod: exported global %q index out of range", name)
		}
		out[i] = globals[idx].value
	}
	return out, nil
}

// findActiveDataSegment requires exactly one data segment and that it be
// active with a constant i32 offset, returning its section index, base
// offset, and payload bytes.
func findActiveDataSegment(sections []wasmbin.Section) (int, int, []byte, error) {
	idx := -1
	for i, s := range sections {
		if s.ID == wasmbin.SecData {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0, 0, nil, fmt.Errorf("decodermod: module has no data section")
	}
	data := sections[idx].Data
	count, rest, err := wasmbin.ReadCount(data)
	if err != nil {
		return 0, 0, nil, err
	}
	if count != 1 {
		return 0, 0, nil, fmt.Errorf("decodermod: expected exactly one data segment, got %d", count)
	}
	if len(rest) < 1 {
		return 0, 0, nil, fmt.Errorf("decodermod: truncated data segment")
	}
	flag := rest[0]
	rest = rest[1:]
	if flag == 0x02 {
		// Active with an explicit memory index; skip it (always 0 in a
		// single-memory module).
		_, n, err := wasmbin.ReadUvarint(rest)
		if err != nil {
			return 0, 0, nil, err
		}
		rest = rest[n:]
	} else if flag != 0x00 {
		return 0, 0, nil, fmt.Errorf("decodermod: data segment is not active (flag %#x)", flag)
	}
	if len(rest) < 1 || rest[0] != 0x41 {
		return 0, 0, nil, fmt.Errorf("decodermod: data segment offset is not a constant i32.const")
	}
	rest = rest[1:]
	base, n, err := wasmbin.ReadVarint(rest)
	if err != nil {
		return 0, 0, nil, err
	}
	rest = rest[n:]
	if len(rest) < 1 || rest[0] != 0x0b {
		return 0, 0, nil, fmt.Errorf("decodermod: malformed data segment offset expr")
	}
	rest = rest[1:]
	payloadLen, n, err := wasmbin.ReadUvarint(rest)
	if err != nil {
		return 0, 0, nil, err
	}
	rest = rest[n:]
	if uint64(len(rest)) < payloadLen {
		return 0, 0, nil, fmt.Errorf("decodermod: truncated data segment payload")
	}
	return idx, int(base), append([]byte(nil), rest[:payloadLen]...), nil
}

// bumpMemory raises the module's sole memory's min page count to at
// least newPages, never lowering it.
func bumpMemory(sections []wasmbin.Section, newPages uint32) error {
	for i, s := range sections {
		if s.ID != wasmbin.SecMemory {
			continue
		}
		data := s.Data
		count, rest, err := wasmbin.ReadCount(data)
		if err != nil {
			return err
		}
		if count != 1 {
			return fmt.Errorf("decodermod: expected exactly one memory, got %d", count)
		}
		if len(rest) < 1 {
			return fmt.Errorf("decodermod: truncated memory section")
		}
		flag := rest[0]
		rest = rest[1:]
		min, n, err := wasmbin.ReadUvarint(rest)
		if err != nil {
			return err
		}
		rest = rest[n:]
		if uint32(min) >= newPages {
			return nil
		}
		var out []byte
		out = wasmbin.AppendUvarint(out, 1)
		out = append(out, flag)
		out = wasmbin.AppendUvarint(out, uint64(newPages))
		out = append(out, rest...)
		sections[i].Data = out
		return nil
	}
	return fmt.Errorf("decodermod: module has no memory section")
}

func sectionData(sections []wasmbin.Section, id byte) ([]byte, bool) {
	for _, s := range sections {
		if s.ID == id {
			return s.Data, true
		}
	}
	return nil, false
}

package wasm

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Section is a top-level entry of the wasm binary format: a one byte ID
// followed by a LEB128 payload size. Size excludes the ID and size bytes.
type Section struct {
	ID   byte
	Name string
	Size uint32
}

var magic = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

const SectionCode byte = 10

var sectionNames = map[byte]string{
	0:  "custom",
	1:  "type",
	2:  "import",
	3:  "function",
	4:  "table",
	5:  "memory",
	6:  "global",
	7:  "export",
	8:  "start",
	9:  "element",
	10: "code",
	11: "data",
	12: "datacount",
}

// Sections walks the top-level section layout of a wasm binary without
// decoding payloads. wazero does not expose raw section sizes, and the size
// breakdown is what inspection after an -Oz pass is interested in.
func Sections(wasm []byte) ([]Section, error) {
	if len(wasm) < len(magic) || string(wasm[:len(magic)]) != string(magic) {
		return nil, errors.New("not a wasm binary: bad magic or version")
	}

	var sections []Section

	buf := wasm[len(magic):]
	for len(buf) > 0 {
		id := buf[0]

		size, n := binary.Uvarint(buf[1:])
		if n <= 0 {
			return nil, fmt.Errorf("malformed section size for section id %d", id)
		}

		header := 1 + n
		if size > uint64(len(buf)-header) {
			return nil, fmt.Errorf("section id %d declares %d bytes but only %d remain", id, size, len(buf)-header)
		}

		name, ok := sectionNames[id]
		if !ok {
			name = fmt.Sprintf("unknown(%d)", id)
		}

		sections = append(sections, Section{ID: id, Name: name, Size: uint32(size)})
		buf = buf[header+int(size):]
	}

	return sections, nil
}

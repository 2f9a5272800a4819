package exchange

import "github.com/danmuck/wirepack/packer"

// HeaderSize is the encoded size of a Header.
const HeaderSize = 12

// Header precedes every payload on the wire. Size is the payload byte count.
type Header struct {
	Type    uint32
	Version uint32
	Size    uint32
}

var HeaderPacker = packer.Record("Header",
	packer.FieldOf("type", func(h *Header) *uint32 { return &h.Type }, packer.Uint32),
	packer.FieldOf("version", func(h *Header) *uint32 { return &h.Version }, packer.Uint32),
	packer.FieldOf("size", func(h *Header) *uint32 { return &h.Size }, packer.Uint32),
)

type Message struct {
	Header
	Payload []byte
}

// frame returns header and payload as one buffer.
func frame(msgType, version uint32, payload []byte) ([]byte, error) {
	hdr, err := HeaderPacker.Pack(Header{Type: msgType, Version: version, Size: uint32(len(payload))})
	if err != nil {
		return nil, err
	}
	return append(hdr, payload...), nil
}

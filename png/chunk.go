package png

import (
	"encoding/binary"
	"hash/crc32"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// chunkOverhead is the framing around the data: length(4) + type(4) + crc(4).
const chunkOverhead = 12

// Chunk is one length-prefixed, crc-protected unit of a png file.
type Chunk struct {
	typ  ChunkType
	data []byte
	crc  uint32
}

// NewChunk builds a chunk from a type and payload, computing the crc over
// type‖data on the spot.
func NewChunk(typ ChunkType, data []byte) Chunk {
	d := make([]byte, len(data))
	copy(d, data)
	return Chunk{typ: typ, data: d, crc: checksum(typ, d)}
}

// ChunkFromBytes parses `length(4, BE) ‖ type(4) ‖ data(length) ‖ crc(4, BE)`
// from the front of raw; trailing bytes are ignored. The crc must match or
// parsing fails. Type legality is deliberately not checked here.
func ChunkFromBytes(raw []byte) (Chunk, error) {
	c, _, err := parseChunk(raw)
	return c, err
}

// parseChunk additionally returns the number of bytes consumed, which the
// file-level parser needs to advance past the chunk.
func parseChunk(raw []byte) (Chunk, int, error) {
	if len(raw) < chunkOverhead {
		return Chunk{}, 0, errors.Wrapf(ErrUnexpectedEOF, "%d bytes left, chunk framing needs %d", len(raw), chunkOverhead)
	}
	length := binary.BigEndian.Uint32(raw[0:4])
	total := chunkOverhead + int(length)
	if len(raw) < total {
		return Chunk{}, 0, errors.Wrapf(ErrInvalidChunkLength, "declared %d data bytes, only %d left after framing", length, len(raw)-chunkOverhead)
	}

	var typ ChunkType
	copy(typ[:], raw[4:8])
	data := make([]byte, length)
	copy(data, raw[8:8+length])
	stored := binary.BigEndian.Uint32(raw[8+length : total])

	if sum := checksum(typ, data); sum != stored {
		return Chunk{}, 0, errors.Wrapf(ErrInvalidCRC, "chunk %s: stored %#08x, computed %#08x", typ, stored, sum)
	}
	return Chunk{typ: typ, data: data, crc: stored}, total, nil
}

// checksum is the png crc: CRC-32 (IEEE) over the type bytes followed by the
// data bytes. Length and crc fields are excluded.
func checksum(typ ChunkType, data []byte) uint32 {
	return crc32.Update(crc32.ChecksumIEEE(typ[:]), crc32.IEEETable, data)
}

// Length is the byte count of the data alone, as it appears in the length
// field on the wire.
func (c Chunk) Length() uint32 {
	return uint32(len(c.data))
}

func (c Chunk) Type() ChunkType {
	return c.typ
}

// Data returns the payload. The slice is shared with the chunk and must not
// be modified by the caller.
func (c Chunk) Data() []byte {
	return c.data
}

// CRC returns the checksum stored at construction, not a recomputation.
func (c Chunk) CRC() uint32 {
	return c.crc
}

// DataAsText interprets the payload as utf-8 text.
func (c Chunk) DataAsText() (string, error) {
	if !utf8.Valid(c.data) {
		return "", errors.Wrapf(ErrInvalidUTF8, "chunk %s", c.typ)
	}
	return string(c.data), nil
}

// AsBytes frames the chunk for the wire. The exact inverse of ChunkFromBytes.
func (c Chunk) AsBytes() []byte {
	out := make([]byte, chunkOverhead+len(c.data))
	binary.BigEndian.PutUint32(out[0:4], uint32(len(c.data)))
	copy(out[4:8], c.typ[:])
	copy(out[8:], c.data)
	binary.BigEndian.PutUint32(out[8+len(c.data):], c.crc)
	return out
}

package png

import (
	"bytes"

	"github.com/pkg/errors"
)

// StandardHeader is the fixed 8 byte signature every png file starts with.
var StandardHeader = [8]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// Png is the signature plus an ordered chunk list. Chunk order is preserved
// exactly as parsed; nothing here reorders or validates against the png
// chunk-ordering rules.
type Png struct {
	chunks []Chunk
}

// New returns an empty file, signature only.
func New() *Png {
	return &Png{}
}

// FromChunks builds a file from an explicit chunk list.
func FromChunks(chunks []Chunk) *Png {
	p := &Png{chunks: make([]Chunk, len(chunks))}
	copy(p.chunks, chunks)
	return p
}

// FromBytes parses a whole file: signature check, then chunks back to back
// until the input is exhausted. A trailing partial chunk is an error; nothing
// is skipped or repaired.
func FromBytes(raw []byte) (*Png, error) {
	if len(raw) < len(StandardHeader) || !bytes.Equal(raw[:len(StandardHeader)], StandardHeader[:]) {
		n := len(raw)
		if n > len(StandardHeader) {
			n = len(StandardHeader)
		}
		return nil, errors.Wrapf(ErrInvalidHeader, "got % x", raw[:n])
	}

	p := &Png{}
	rest := raw[len(StandardHeader):]
	for len(rest) > 0 {
		c, n, err := parseChunk(rest)
		if err != nil {
			return nil, err
		}
		p.chunks = append(p.chunks, c)
		rest = rest[n:]
	}
	return p, nil
}

// AppendChunk adds a chunk at the end of the list. Duplicate types are legal
// png, so no dedup happens here.
func (p *Png) AppendChunk(c Chunk) {
	p.chunks = append(p.chunks, c)
}

// RemoveFirstChunk removes and returns the first chunk whose type matches
// byte for byte. The relative order of the remaining chunks is unchanged.
func (p *Png) RemoveFirstChunk(typ ChunkType) (Chunk, error) {
	for i, c := range p.chunks {
		if c.typ == typ {
			p.chunks = append(p.chunks[:i], p.chunks[i+1:]...)
			return c, nil
		}
	}
	return Chunk{}, errors.Wrapf(ErrChunkNotFound, "type %s", typ)
}

// ChunkByType returns the first chunk with the given type, or nil.
func (p *Png) ChunkByType(typ ChunkType) *Chunk {
	for i := range p.chunks {
		if p.chunks[i].typ == typ {
			return &p.chunks[i]
		}
	}
	return nil
}

// Chunks returns the chunk list in stored order. The slice is shared and
// must not be modified by the caller.
func (p *Png) Chunks() []Chunk {
	return p.chunks
}

// AsBytes serializes the whole file: signature, then each chunk in order.
// The exact inverse of FromBytes.
func (p *Png) AsBytes() []byte {
	var buf bytes.Buffer
	buf.Write(StandardHeader[:])
	for _, c := range p.chunks {
		buf.Write(c.AsBytes())
	}
	return buf.Bytes()
}

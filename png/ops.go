// Package png hides, finds, and removes payloads in png files by treating a
// file as its signature plus a generic chunk list. Pixel data (IDAT) is
// opaque bytes; everything outside the touched chunk survives byte for byte.
package png

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Encode appends a new chunk carrying message under the given type code and
// returns the reserialized file. Encoding the same type twice yields two
// chunks; nothing is replaced.
func Encode(raw []byte, chunkType, message string) ([]byte, error) {
	typ, err := ChunkTypeFromString(chunkType)
	if err != nil {
		return nil, err
	}
	p, err := FromBytes(raw)
	if err != nil {
		return nil, err
	}
	p.AppendChunk(NewChunk(typ, []byte(message)))
	return p.AsBytes(), nil
}

// Decode returns the payload of the first chunk with the given type code as
// text.
func Decode(raw []byte, chunkType string) (string, error) {
	typ, err := ChunkTypeFromString(chunkType)
	if err != nil {
		return "", err
	}
	p, err := FromBytes(raw)
	if err != nil {
		return "", err
	}
	c := p.ChunkByType(typ)
	if c == nil {
		return "", errors.Wrapf(ErrChunkNotFound, "type %s", typ)
	}
	return c.DataAsText()
}

// Remove strips the first chunk with the given type code and returns the
// reserialized file along with the removed chunk.
func Remove(raw []byte, chunkType string) ([]byte, Chunk, error) {
	typ, err := ChunkTypeFromString(chunkType)
	if err != nil {
		return nil, Chunk{}, err
	}
	p, err := FromBytes(raw)
	if err != nil {
		return nil, Chunk{}, err
	}
	removed, err := p.RemoveFirstChunk(typ)
	if err != nil {
		return nil, Chunk{}, err
	}
	return p.AsBytes(), removed, nil
}

// ListChunks renders one line per chunk, type code and declared data length,
// in file order. Read-only and deterministic.
func ListChunks(raw []byte) (string, error) {
	p, err := FromBytes(raw)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, c := range p.Chunks() {
		fmt.Fprintf(&b, "%s %d\n", c.Type(), c.Length())
	}
	return b.String(), nil
}

// FindHidden returns the chunks that look like hidden payloads: ancillary
// (not needed for rendering) with non-empty utf-8 data. Critical chunks are
// skipped; IDAT bytes regularly decode as utf-8 by accident.
func FindHidden(raw []byte) ([]Chunk, error) {
	p, err := FromBytes(raw)
	if err != nil {
		return nil, err
	}
	var found []Chunk
	for _, c := range p.Chunks() {
		if c.Type().IsCritical() || c.Length() == 0 {
			continue
		}
		if _, err := c.DataAsText(); err == nil {
			found = append(found, c)
		}
	}
	return found, nil
}

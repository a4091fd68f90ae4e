package png

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// minimalPng is signature + IHDR + IEND, the smallest file shape the tool
// meets in practice. The pixel fields describe a 1x1 rgba image.
func minimalPng(t *testing.T) []byte {
	t.Helper()
	ihdr := []byte{0, 0, 0, 1, 0, 0, 0, 1, 8, 6, 0, 0, 0}
	return FromChunks([]Chunk{
		NewChunk(mustType(t, "IHDR"), ihdr),
		NewChunk(mustType(t, "IEND"), nil),
	}).AsBytes()
}

func TestEncodeDecode(t *testing.T) {
	raw := minimalPng(t)
	out, err := Encode(raw, "ruSt", "hello")
	require.NoError(t, err)

	message, err := Decode(out, "ruSt")
	require.NoError(t, err)
	require.Equal(t, "hello", message)
}

func TestEncodeLeavesExistingBytesUntouched(t *testing.T) {
	raw := minimalPng(t)
	out, err := Encode(raw, "ruSt", "hello")
	require.NoError(t, err)
	require.Equal(t, raw, out[:len(raw)])
}

func TestEncodeRejectsIllegalType(t *testing.T) {
	for _, typ := range []string{"ru1t", "rust5", "ru", "rüst"} {
		_, err := Encode(minimalPng(t), typ, "hello")
		require.True(t, errors.Is(err, ErrInvalidChunkType), "type %q", typ)
	}
}

func TestEncodeDoesNotDeduplicate(t *testing.T) {
	raw := minimalPng(t)
	out, err := Encode(raw, "ruSt", "one")
	require.NoError(t, err)
	out, err = Encode(out, "ruSt", "two")
	require.NoError(t, err)

	p, err := FromBytes(out)
	require.NoError(t, err)
	require.Len(t, p.Chunks(), 4)

	// decode sees the first one
	message, err := Decode(out, "ruSt")
	require.NoError(t, err)
	require.Equal(t, "one", message)
}

func TestDecodeMissingChunk(t *testing.T) {
	_, err := Decode(minimalPng(t), "miSS")
	require.True(t, errors.Is(err, ErrChunkNotFound))
}

func TestDecodeBinaryPayload(t *testing.T) {
	p, err := FromBytes(minimalPng(t))
	require.NoError(t, err)
	p.AppendChunk(NewChunk(mustType(t, "ruSt"), []byte{0xde, 0xad, 0xbe, 0xef}))

	_, err = Decode(p.AsBytes(), "ruSt")
	require.True(t, errors.Is(err, ErrInvalidUTF8))
}

func TestRemoveRestoresOriginalBytes(t *testing.T) {
	raw := minimalPng(t)
	encoded, err := Encode(raw, "ruSt", "hello")
	require.NoError(t, err)

	out, removed, err := Remove(encoded, "ruSt")
	require.NoError(t, err)
	require.Equal(t, "ruSt", removed.Type().String())
	require.Equal(t, raw, out)

	_, err = Decode(out, "ruSt")
	require.True(t, errors.Is(err, ErrChunkNotFound))
}

func TestRemoveMissingChunk(t *testing.T) {
	_, _, err := Remove(minimalPng(t), "ruSt")
	require.True(t, errors.Is(err, ErrChunkNotFound))
}

func TestRemoveReturnsPayload(t *testing.T) {
	encoded, err := Encode(minimalPng(t), "ruSt", "hello")
	require.NoError(t, err)
	_, removed, err := Remove(encoded, "ruSt")
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), removed.Data())
}

func TestListChunks(t *testing.T) {
	encoded, err := Encode(minimalPng(t), "ruSt", "hello")
	require.NoError(t, err)
	listing, err := ListChunks(encoded)
	require.NoError(t, err)
	require.Equal(t, "IHDR 13\nIEND 0\nruSt 5\n", listing)
}

func TestListChunksIsIdempotentAndReadOnly(t *testing.T) {
	raw := minimalPng(t)
	snapshot := make([]byte, len(raw))
	copy(snapshot, raw)

	first, err := ListChunks(raw)
	require.NoError(t, err)
	second, err := ListChunks(raw)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, snapshot, raw)
}

func TestListChunksMalformedInput(t *testing.T) {
	_, err := ListChunks([]byte("not a png"))
	require.True(t, errors.Is(err, ErrInvalidHeader))
}

func TestFindHidden(t *testing.T) {
	encoded, err := Encode(minimalPng(t), "ruSt", "hello")
	require.NoError(t, err)

	found, err := FindHidden(encoded)
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "ruSt", found[0].Type().String())
}

func TestFindHiddenIgnoresCriticalAndEmptyChunks(t *testing.T) {
	// IHDR data happens to be valid utf-8 but is critical; IEND is empty
	found, err := FindHidden(minimalPng(t))
	require.NoError(t, err)
	require.Empty(t, found)
}

func TestFindHiddenIgnoresBinaryAncillaryChunks(t *testing.T) {
	p, err := FromBytes(minimalPng(t))
	require.NoError(t, err)
	p.AppendChunk(NewChunk(mustType(t, "ruSt"), []byte{0xff, 0x00, 0xff}))

	found, err := FindHidden(p.AsBytes())
	require.NoError(t, err)
	require.Empty(t, found)
}

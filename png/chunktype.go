package png

import "github.com/pkg/errors"

// ChunkType is the 4 byte type code that precedes every chunk's data.
// Property bits live in bit 5 of each byte, i.e. the case of the ascii
// letter (http://www.libpng.org/pub/png/spec/1.2/PNG-Structure.html, 3.3).
type ChunkType [4]byte

// ChunkTypeFromBytes accepts any 4 bytes verbatim. Files in the wild can
// carry type codes that break the naming rules and still need to round-trip,
// so legality is a separate query (IsValid) rather than a constructor error.
func ChunkTypeFromBytes(b [4]byte) ChunkType {
	return ChunkType(b)
}

// ChunkTypeFromString converts a user-supplied type code, rejecting anything
// that is not exactly 4 ascii letters.
func ChunkTypeFromString(s string) (ChunkType, error) {
	if len(s) != 4 {
		return ChunkType{}, errors.Wrapf(ErrInvalidChunkType, "got %q (%d bytes)", s, len(s))
	}
	var t ChunkType
	for i := 0; i < 4; i++ {
		c := s[i]
		if !isLetter(c) {
			return ChunkType{}, errors.Wrapf(ErrInvalidChunkType, "got %q (byte %d is not a letter)", s, i)
		}
		t[i] = c
	}
	return t, nil
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func (t ChunkType) Bytes() [4]byte {
	return [4]byte(t)
}

func (t ChunkType) String() string {
	return string(t[:])
}

// IsValid reports whether the reserved bit (byte 2) is zero, which is what
// the png spec requires of a structurally valid type code.
func (t ChunkType) IsValid() bool {
	return t[2]&0x20 == 0
}

// IsCritical reports whether the chunk is required for rendering
// (uppercase first byte). The inverse is an ancillary chunk.
func (t ChunkType) IsCritical() bool {
	return t[0]&0x20 == 0
}

func (t ChunkType) IsPublic() bool {
	return t[1]&0x20 == 0
}

func (t ChunkType) IsPrivate() bool {
	return !t.IsPublic()
}

func (t ChunkType) IsSafeToCopy() bool {
	return t[3]&0x20 != 0
}

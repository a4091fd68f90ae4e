package png

import "github.com/pkg/errors"

// Error kinds surfaced by the codec. Wrapped with context where they occur;
// match with errors.Is.
var (
	ErrInvalidHeader      = errors.New("invalid png header")
	ErrInvalidChunkLength = errors.New("declared chunk length exceeds remaining bytes")
	ErrUnexpectedEOF      = errors.New("unexpected end of chunk data")
	ErrInvalidCRC         = errors.New("chunk crc mismatch")
	ErrInvalidChunkType   = errors.New("chunk type must be exactly 4 ascii letters")
	ErrInvalidUTF8        = errors.New("chunk data is not valid utf-8")
	ErrChunkNotFound      = errors.New("no chunk with the requested type")
)

package pdxsave

import (
	"os"

	"golang.org/x/text/encoding/charmap"
)

// ReadFile reads a save file and decodes it from Latin-1 (ISO 8859-1) to
// UTF-8. Paradox saves of this era always use Latin-1; every byte maps
// independently to one character, so decoding can never fail. The parser
// itself accepts any buffer where the structural bytes ({, }, =, ", #)
// are ASCII, so callers with already-decoded text can skip this and call
// Parse directly.
func ReadFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeLatin1(raw)
}

// DecodeLatin1 converts Latin-1 bytes to UTF-8.
func DecodeLatin1(raw []byte) ([]byte, error) {
	return charmap.ISO8859_1.NewDecoder().Bytes(raw)
}

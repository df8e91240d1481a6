package text

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadTranscript reads a UTF-8 transcript file and returns its normalized
// content. A leading byte order mark is dropped. Whitespace-only files yield ErrEmptyText.
func ReadTranscript(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	data = bytes.TrimPrefix(data, utf8BOM)

	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: invalid UTF-8", path)
	}

	return Normalize(string(data))
}

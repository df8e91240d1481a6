package text

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	// "한국어" spelled with conjoining jamo (NFD) and precomposed syllables (NFC).
	const decomposed = "\u1112\u1161\u11ab\u1100\u116e\u11a8\u110b\u1165"
	const composed = "\ud55c\uad6d\uc5b4"

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "passthrough clean transcript", input: "안녕하세요", want: "안녕하세요"},
		{name: "trims edges", input: " \t안녕하세요.\n\n", want: "안녕하세요."},
		{name: "normalizes CRLF", input: "첫 줄\r\n둘째 줄", want: "첫 줄\n둘째 줄"},
		{name: "normalizes bare CR", input: "첫 줄\r둘째 줄", want: "첫 줄\n둘째 줄"},
		{name: "composes decomposed hangul", input: decomposed, want: composed},
		{name: "keeps internal spacing", input: "a   b", want: "a   b"},
		{name: "rejects empty", input: "", wantErr: ErrEmptyText},
		{name: "rejects whitespace only", input: " \r\n\t ", wantErr: ErrEmptyText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Normalize(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

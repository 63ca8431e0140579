package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextFromContentStream(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		want   string
	}{
		{
			name:   "Tj operator",
			stream: "BT\n(Hello) Tj\nET",
			want:   "Hello",
		},
		{
			name:   "TJ array with kerning",
			stream: "[(Hel) -20 (lo) 4 ( world)] TJ",
			want:   "Hello world",
		},
		{
			name:   "Td positioning adds a space",
			stream: "(Hello) Tj\n10 0 Td\n(world) Tj",
			want:   "Hello world",
		},
		{
			name:   "quote operator starts a new line",
			stream: "(first) Tj\n(second) '",
			want:   "first second",
		},
		{
			name:   "non-text operators ignored",
			stream: "q\n1 0 0 1 50 700 cm\nQ",
			want:   "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, textFromContentStream([]byte(tc.stream)))
		})
	}
}

func TestUnescapePDFString(t *testing.T) {
	assert.Equal(t, "a(b)c", unescapePDFString([]byte(`a\(b\)c`)))
	assert.Equal(t, "tab\there", unescapePDFString([]byte(`tab\there`)))
	assert.Equal(t, " ", unescapePDFString([]byte(`\040`)))
	assert.Equal(t, `back\slash`, unescapePDFString([]byte(`back\\slash`)))
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", collapseWhitespace("  a \n\n b\t\tc  "))
	assert.Equal(t, "", collapseWhitespace(" \n\t "))
}

package pdftext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"crlf", "a\r\nb\rc", "a\nb\nc"},
		{"tabs and runs of spaces", "1.01\tCable   de cobre", "1.01 Cable de cobre"},
		{"rule lines dropped", "CÓDIGO\n--------\n1.01", "CÓDIGO\n\n1.01"},
		{"blank runs collapse", "a\n\n\n\n\nb", "a\n\nb"},
		{"trailing spaces trimmed", "fila uno   \nfila dos", "fila uno\nfila dos"},
		{"outer whitespace trimmed", "\n\n  texto  \n\n", "texto"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
		ok   bool
	}{
		{"none", nil, "", false},
		{"single file", []string{"doc.pdf"}, "doc.pdf", true},
		{"first wins", []string{"a.pdf", "b.pdf"}, "a.pdf", true},
		{"blank", []string{"  "}, "", false},
		{"trimmed", []string{" doc.pdf\n"}, "doc.pdf", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromArgs(tt.args).Path()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestZeroValueHasNoFile(t *testing.T) {
	_, ok := StartupFile{}.Path()
	assert.False(t, ok)
}

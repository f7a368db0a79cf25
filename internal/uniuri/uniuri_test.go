package uniuri

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileName(t *testing.T) {
	seen := make(map[string]struct{})

	for range 100 {
		name := FileName()
		assert.Len(t, name, FileLen)
		assert.Equal(t, strings.ToLower(name), name)

		_, dup := seen[name]
		assert.False(t, dup)
		seen[name] = struct{}{}
	}
}

func TestNewLenChars(t *testing.T) {
	assert.Empty(t, NewLenChars(0, FileChars))
	assert.Regexp(t, "^[ab]{32}$", NewLenChars(32, []byte("ab")))
	assert.Panics(t, func() { NewLenChars(4, []byte("a")) })
}

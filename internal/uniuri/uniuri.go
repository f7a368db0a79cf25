// Package uniuri generates random names for stored files.
package uniuri

import (
	"crypto/rand"
)

const (
	// FileLen is the length of generated file names, lower case only.
	FileLen = 24

	maxChars = 256
)

// FileChars is safe on case-insensitive filesystems.
var FileChars = []byte("abcdefghijklmnopqrstuvwxyz0123456789") //nolint:gochecknoglobals

// FileName returns a random base name for an uploaded file.
func FileName() string {
	return NewLenChars(FileLen, FileChars)
}

// NewLenChars returns a random string of length characters drawn from chars.
// Bytes that would bias the distribution are rejected and redrawn.
func NewLenChars(length int, chars []byte) string {
	if length <= 0 {
		return ""
	}

	n := len(chars)
	if n < 2 || n > maxChars {
		panic("uniuri: wrong charset length for NewLenChars")
	}

	limit := maxChars - (maxChars % n)
	out := make([]byte, 0, length)
	buf := make([]byte, length+length/4+1)

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			panic("uniuri: error reading random bytes: " + err.Error())
		}

		for _, b := range buf {
			if int(b) >= limit {
				continue
			}

			out = append(out, chars[int(b)%n])
			if len(out) == length {
				break
			}
		}
	}

	return string(out)
}

package utils

import "crypto/rand"

// classCodeAlphabet deliberately leaves out 0/O/1/I so codes read
// unambiguously off a whiteboard.
const classCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// ClassCodeLength is the number of characters in a class join code.
const ClassCodeLength = 6

// NewClassCode returns a random six character class code drawn from the
// unambiguous alphabet.
func NewClassCode() (string, error) {
	buf := make([]byte, ClassCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = classCodeAlphabet[int(b)%len(classCodeAlphabet)]
	}
	return string(buf), nil
}

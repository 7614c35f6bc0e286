package common

import "crypto/rand"

// GenerateRandByteArray returns size cryptographically random bytes.
// Panics only if the system randomness source is broken.
func GenerateRandByteArray(size int) []byte {
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return buf
}

// WipeByteArray zeroes the buffer in place. Safe to call with nil.
func WipeByteArray(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}

package common

import "crypto/rand"

const groupIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// MakeGroupID returns a new client-generated group identifier:
// GroupIDLength alphanumeric characters from a cryptographically secure
// source. No collision detection is performed; at this length the collision
// probability is treated as negligible.
func MakeGroupID() (string, error) {
	buf := make([]byte, GroupIDLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	id := make([]byte, GroupIDLength)
	for i, b := range buf {
		id[i] = groupIDAlphabet[int(b)%len(groupIDAlphabet)]
	}
	return string(id), nil
}

// WipeByteArray zeroes the buffer in place. Safe to call with nil.
func WipeByteArray(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}

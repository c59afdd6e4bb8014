package utils

import (
	"crypto/rand"
	"math/big"
)

const sessionPasswordAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateSessionPassword returns the 6-char lowercase join code for a table
// session. It only scopes join access per session, so collisions across
// sessions are fine.
func GenerateSessionPassword() string {
	buf := make([]byte, 6)
	max := big.NewInt(int64(len(sessionPasswordAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the platform source is broken
			panic(err)
		}
		buf[i] = sessionPasswordAlphabet[n.Int64()]
	}
	return string(buf)
}

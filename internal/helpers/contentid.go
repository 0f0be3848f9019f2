package helpers

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// ContentIDLength is the number of hex digits kept from the digest.
const ContentIDLength = 8

// ContentID returns a short, stable identifier for a block of expression
// source. It is used to name inline and streamed batches in source URLs.
func ContentID(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])[:ContentIDLength]
}

// ContentIDReader is ContentID over everything remaining in r.
func ContentIDReader(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil))[:ContentIDLength], nil
}

// Package codes creates single-use redemption codes and the digests stored in
// their place.
package codes

import (
	"crypto/rand"
	"encoding/base32"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

const codeBytes = 16

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Generate returns a random 128-bit code in unpadded base32.
func Generate() (string, error) {
	b := make([]byte, codeBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("codes.Generate: %w", err)
	}

	return encoding.EncodeToString(b), nil
}

// Hash normalises a scanned code and returns its hex BLAKE2b-256 digest.
func Hash(code string) string {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	sum := blake2b.Sum256([]byte(normalized))

	return hex.EncodeToString(sum[:])
}

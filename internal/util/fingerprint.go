package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Fingerprint computes a stable hash identifying an unguarded-write finding,
// used for baseline suppression across runs.
func Fingerprint(contract, function string, line int, writes string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%d|%s", contract, function, line, writes)
	return hex.EncodeToString(h.Sum(nil))
}

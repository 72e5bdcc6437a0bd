package common

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// ContentHash computes SHA256 hash of content and returns hex string.
func ContentHash(data []byte) string {
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}

// FlattenID turns a corpus relative path into a flat manifest identifier.
// Example: "batch1/report.hwp" -> "batch1__report.hwp"
func FlattenID(relpath string) string {
	return strings.ReplaceAll(relpath, "/", "__")
}

// Package contentid derives stable share identifiers from catalog links.
package contentid

import (
	"crypto/md5"
	"encoding/hex"
)

// Length is the number of hex characters in a content id.
const Length = 10

// ID returns the content address for a link: the first 10 lowercase hex
// characters of the md5 digest of its UTF-8 bytes. It is a pure function of
// the link, so an entry keeps its id across feed reloads and reordering.
// The truncated 40-bit space admits collisions; they are not detected.
func ID(link string) string {
	sum := md5.Sum([]byte(link))
	return hex.EncodeToString(sum[:])[:Length]
}

// Valid reports whether s has the shape of a content id. It deliberately
// says nothing about whether the id resolves to an entry.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

package dedup

import (
	"crypto/sha1"
	"encoding/hex"
)

// Fingerprint derives the stable row identifier for a posting: the first 12
// hex characters of the SHA-1 of "url|title". Identical content yields the
// same identifier regardless of which source produced it.
func Fingerprint(url, title string) string {
	sum := sha1.Sum([]byte(url + "|" + title))
	return hex.EncodeToString(sum[:])[:12]
}

// Deduper drops postings whose fingerprint was already seen. Scope is a
// single run; nothing is remembered across runs.
type Deduper struct {
	seen map[string]struct{}
}

func NewDeduper() *Deduper {
	return &Deduper{seen: make(map[string]struct{})}
}

// Add records the fingerprint and reports whether it was new. The first
// occurrence wins; every later occurrence returns false.
func (d *Deduper) Add(id string) bool {
	if _, ok := d.seen[id]; ok {
		return false
	}
	d.seen[id] = struct{}{}
	return true
}

package doctype

import (
	"bytes"
	"image"
	"sync"

	"github.com/corona10/goimagehash"
)

// defaultDedupThreshold is the Hamming distance between two dHash values
// below which uploads are considered the same picture.
const defaultDedupThreshold = 10

// maxHashPixels bounds the declared size of images that are fully decoded
// for hashing. Larger uploads are never reported as duplicates.
const maxHashPixels = 40_000_000

type hashEntry struct {
	index int
	hash  *goimagehash.ImageHash
}

// dedupFilter remembers the perceptual hashes of one batch.
// It is safe for concurrent use.
type dedupFilter struct {
	threshold int

	mu      sync.Mutex
	entries []hashEntry
}

// hashable reports whether an image with this header may be decoded for
// hashing.
func hashable(s ImageShape) bool {
	return s.OK() && int64(s.Width)*int64(s.Height) <= maxHashPixels
}

// hashImage decodes data and computes its difference hash.
// Returns nil when the upload cannot be decoded or hashed.
func hashImage(data []byte) *goimagehash.ImageHash {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	hash, err := goimagehash.DifferenceHash(img)
	if err != nil {
		return nil
	}
	return hash
}

// add records the hash of the upload at batch index i. Nil hashes are ignored.
func (d *dedupFilter) add(i int, hash *goimagehash.ImageHash) {
	if hash == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries = append(d.entries, hashEntry{index: i, hash: hash})
}

// earliestMatch returns the lowest batch index below self whose hash is
// within the threshold, or -1. Callers hold d.mu.
func (d *dedupFilter) earliestMatch(self int, hash *goimagehash.ImageHash) int {
	best := -1
	for _, e := range d.entries {
		if e.index >= self || (best >= 0 && e.index >= best) {
			continue
		}
		dist, err := hash.Distance(e.hash)
		if err == nil && dist < d.threshold {
			best = e.index
		}
	}
	return best
}

// resolve maps every batch index to the earliest upload it duplicates, or -1.
// It runs after all workers finish so the answer does not depend on scheduling.
func (d *dedupFilter) resolve(n int) []int {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]int, n)
	for i := range out {
		out[i] = -1
	}
	for _, e := range d.entries {
		if e.index < n {
			out[e.index] = d.earliestMatch(e.index, e.hash)
		}
	}
	return out
}

// Package prompts rotates journal prompts, steering away from recently
// issued ones. The recency memory lives in process only.
package prompts

import "math/rand"

// maxRecent caps the exclusion window regardless of pool size.
const maxRecent = 10

// Rotation selects prompts from a fixed pool, excluding the last k
// issued ones where k = min(10, pool/3). A bounded ring buffer holds
// the recency window; state resets with the process.
type Rotation struct {
	pool   []string
	recent []string
	head   int
	filled int
	rng    *rand.Rand
}

// NewRotation returns a Rotation over pool, seeded from the source the
// caller provides (pass rand.NewSource(time.Now().UnixNano()) outside
// tests).
func NewRotation(pool []string, src rand.Source) *Rotation {
	k := len(pool) / 3
	if k > maxRecent {
		k = maxRecent
	}
	return &Rotation{
		pool:   pool,
		recent: make([]string, k),
		rng:    rand.New(src),
	}
}

// Next returns a prompt, avoiding the recency window. When exclusion
// would empty the candidate set, the full pool is used instead.
func (r *Rotation) Next() string {
	if len(r.pool) == 0 {
		return ""
	}

	candidates := make([]string, 0, len(r.pool))
	for _, p := range r.pool {
		if !r.isRecent(p) {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		candidates = r.pool
	}

	pick := candidates[r.rng.Intn(len(candidates))]
	r.remember(pick)
	return pick
}

func (r *Rotation) isRecent(p string) bool {
	n := r.filled
	if n > len(r.recent) {
		n = len(r.recent)
	}
	for i := 0; i < n; i++ {
		if r.recent[i] == p {
			return true
		}
	}
	return false
}

func (r *Rotation) remember(p string) {
	if len(r.recent) == 0 {
		return
	}
	r.recent[r.head] = p
	r.head = (r.head + 1) % len(r.recent)
	if r.filled < len(r.recent) {
		r.filled++
	}
}

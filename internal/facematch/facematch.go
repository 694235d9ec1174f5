// Package facematch implements descriptor matching against the stored
// embedding corpus. It is pure computation; persistence and transports live
// elsewhere.
package facematch

import (
	"math"
	"sort"

	"github.com/facewatch/facewatch/internal/db/models"
)

// Candidate is one person matched by a probe descriptor
type Candidate struct {
	PersonID uint
	// Distance is the smallest Euclidean distance between the probe and any
	// of the person's stored embeddings.
	Distance float64
}

// Result holds every person with at least one stored embedding within the
// threshold of the probe, ordered by ascending distance.
type Result struct {
	Candidates []Candidate
}

// Unique returns true when exactly one person matched
func (r Result) Unique() bool {
	return len(r.Candidates) == 1
}

// Ambiguous returns true when two or more people matched
func (r Result) Ambiguous() bool {
	return len(r.Candidates) > 1
}

// Empty returns true when nobody matched
func (r Result) Empty() bool {
	return len(r.Candidates) == 0
}

// Best returns the closest candidate. Valid only when the result is not empty.
func (r Result) Best() Candidate {
	return r.Candidates[0]
}

// PersonIDs returns the matched person IDs in ascending-distance order
func (r Result) PersonIDs() []uint {
	ids := make([]uint, len(r.Candidates))
	for i, c := range r.Candidates {
		ids[i] = c.PersonID
	}
	return ids
}

// Match compares the probe against every embedding in the corpus and
// collects the people owning at least one embedding closer than threshold.
func Match(corpus map[uint][]models.Vector, probe models.Vector, threshold float64) Result {
	var candidates []Candidate

	for personID, vectors := range corpus {
		best := math.Inf(1)
		for _, stored := range vectors {
			if d := probe.DistanceTo(stored); d < best {
				best = d
			}
		}
		if best < threshold {
			candidates = append(candidates, Candidate{PersonID: personID, Distance: best})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Distance != candidates[j].Distance {
			return candidates[i].Distance < candidates[j].Distance
		}
		return candidates[i].PersonID < candidates[j].PersonID
	})

	return Result{Candidates: candidates}
}

// NearestIndex returns the index of the stored vector closest to the probe,
// or -1 for an empty slice. Used to pick the eviction victim when a person
// is at the embedding cap.
func NearestIndex(vectors []models.Vector, probe models.Vector) int {
	nearest := -1
	best := math.Inf(1)
	for i, v := range vectors {
		if d := probe.DistanceTo(v); d < best {
			best = d
			nearest = i
		}
	}
	return nearest
}

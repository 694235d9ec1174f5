package facematch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/facewatch/facewatch/internal/db/models"
)

// vec builds a short vector; Match works on any dimension as long as
// probe and corpus agree.
func vec(values ...float64) models.Vector {
	return models.Vector(values)
}

func TestMatchEmptyCorpus(t *testing.T) {
	result := Match(nil, vec(1, 2, 3), 0.6)
	assert.True(t, result.Empty())
	assert.False(t, result.Unique())
	assert.False(t, result.Ambiguous())
	assert.Empty(t, result.PersonIDs())
}

func TestMatchUnique(t *testing.T) {
	corpus := map[uint][]models.Vector{
		1: {vec(0, 0, 0), vec(10, 10, 10)},
		2: {vec(5, 5, 5)},
	}

	result := Match(corpus, vec(0.1, 0, 0), 0.6)
	assert.True(t, result.Unique())
	assert.EqualValues(t, 1, result.Best().PersonID)
	assert.InDelta(t, 0.1, result.Best().Distance, 1e-9)
}

func TestMatchAmbiguous(t *testing.T) {
	corpus := map[uint][]models.Vector{
		1: {vec(0, 0, 0)},
		2: {vec(0.2, 0, 0)},
		3: {vec(50, 50, 50)},
	}

	result := Match(corpus, vec(0.05, 0, 0), 0.6)
	assert.True(t, result.Ambiguous())
	assert.Len(t, result.Candidates, 2)

	// Ordered by ascending distance
	assert.EqualValues(t, 1, result.Candidates[0].PersonID)
	assert.EqualValues(t, 2, result.Candidates[1].PersonID)
	assert.Equal(t, []uint{1, 2}, result.PersonIDs())
}

func TestMatchThresholdIsExclusive(t *testing.T) {
	corpus := map[uint][]models.Vector{
		1: {vec(0.6, 0, 0)},
	}

	// Distance exactly at the threshold does not match
	result := Match(corpus, vec(0, 0, 0), 0.6)
	assert.True(t, result.Empty())

	result = Match(corpus, vec(0.001, 0, 0), 0.6)
	assert.True(t, result.Unique())
}

func TestMatchUsesBestDistancePerPerson(t *testing.T) {
	corpus := map[uint][]models.Vector{
		1: {vec(0.5, 0, 0), vec(0.1, 0, 0), vec(0.3, 0, 0)},
	}

	result := Match(corpus, vec(0, 0, 0), 0.6)
	assert.True(t, result.Unique())
	assert.InDelta(t, 0.1, result.Best().Distance, 1e-9)
}

func TestNearestIndex(t *testing.T) {
	vectors := []models.Vector{
		vec(1, 0, 0),
		vec(0.1, 0, 0),
		vec(2, 0, 0),
	}

	assert.Equal(t, 1, NearestIndex(vectors, vec(0, 0, 0)))
	assert.Equal(t, 2, NearestIndex(vectors, vec(2.1, 0, 0)))
	assert.Equal(t, -1, NearestIndex(nil, vec(0, 0, 0)))
}

package services

import (
	"math/rand/v2"
	"testing"

	memoryModels "github.com/sisoputnfrba/simulador-paginacion/memoria/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(t *testing.T, numPages int, seed uint64) *WorkloadGenerator {
	t.Helper()
	generator, err := NewWorkloadGenerator(1, numPages, rand.New(rand.NewPCG(seed, seed)))
	require.NoError(t, err)
	return generator
}

func TestNewWorkloadGenerator_Errors(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))

	_, err := NewWorkloadGenerator(1, 0, rng)
	assert.ErrorIs(t, err, memoryModels.ErrInvalidProcess)

	_, err = NewWorkloadGenerator(memoryModels.FreeFrame, 4, rng)
	assert.ErrorIs(t, err, memoryModels.ErrInvalidProcess)

	_, err = NewWorkloadGenerator(1, 4, nil)
	assert.Error(t, err)
}

func TestWeights_UniformWithoutHistory(t *testing.T) {
	generator := newTestGenerator(t, 3, 1)

	for _, weight := range generator.Weights() {
		assert.InDelta(t, 1.0/3, weight, 1e-12)
	}
}

func TestWeights_RecentPageHalvesAndNeighborsDouble(t *testing.T) {
	generator := newTestGenerator(t, 3, 1)
	generator.process.RecentPages.Push(1)

	weights := generator.Weights()
	assert.InDelta(t, 2/4.5, weights[0], 1e-12)
	assert.InDelta(t, 0.5/4.5, weights[1], 1e-12)
	assert.InDelta(t, 2/4.5, weights[2], 1e-12)
	assert.Greater(t, weights[0], 1.0/3)
	assert.Greater(t, weights[2], 1.0/3)
}

func TestWeights_EdgePagesOnlyTouchInRangeNeighbors(t *testing.T) {
	generator := newTestGenerator(t, 3, 1)
	generator.process.RecentPages.Push(0)

	raw := generator.weights()
	assert.Equal(t, []float64{0.5, 2, 1}, raw)
}

func TestWeights_RepeatedPagesCompound(t *testing.T) {
	generator := newTestGenerator(t, 3, 1)
	generator.process.RecentPages.Push(1)
	generator.process.RecentPages.Push(1)

	assert.Equal(t, []float64{4, 0.25, 4}, generator.weights())
}

func TestNextPage_SinglePage(t *testing.T) {
	generator := newTestGenerator(t, 1, 9)

	for range 20 {
		assert.Equal(t, 0, generator.NextPage())
	}
	assert.Equal(t, []float64{1}, generator.Weights())
}

func TestNextPage_WindowKeepsLastFive(t *testing.T) {
	generator := newTestGenerator(t, 64, 5)

	drawn := make([]int, 0, 12)
	for range 12 {
		page := generator.NextPage()
		assert.GreaterOrEqual(t, page, 0)
		assert.Less(t, page, 64)
		drawn = append(drawn, page)
	}

	assert.Equal(t, drawn[len(drawn)-5:], generator.Window())
}

func TestNextPage_ReproducibleAndResettable(t *testing.T) {
	draw := func(generator *WorkloadGenerator) []int {
		pages := make([]int, 0, 30)
		for range 30 {
			pages = append(pages, generator.NextPage())
		}
		return pages
	}

	first := draw(newTestGenerator(t, 16, 77))
	second := draw(newTestGenerator(t, 16, 77))
	assert.Equal(t, first, second)

	generator := newTestGenerator(t, 16, 77)
	draw(generator)
	generator.Reset()
	assert.Empty(t, generator.Window())
	for _, weight := range generator.Weights() {
		assert.InDelta(t, 1.0/16, weight, 1e-12)
	}
}

func TestWeightedIndex_FollowsDistribution(t *testing.T) {
	rng := rand.New(rand.NewPCG(2024, 7))
	weights := []float64{2, 0.5, 2}

	const draws = 30000
	counts := make([]int, len(weights))
	for range draws {
		counts[weightedIndex(rng, weights)]++
	}

	assert.InDelta(t, 2/4.5, float64(counts[0])/draws, 0.02)
	assert.InDelta(t, 0.5/4.5, float64(counts[1])/draws, 0.02)
	assert.InDelta(t, 2/4.5, float64(counts[2])/draws, 0.02)
}

func TestWeightedIndex_SkipsZeroWeights(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for range 100 {
		assert.Equal(t, 1, weightedIndex(rng, []float64{0, 3, 0}))
	}

	index := weightedIndex(rng, []float64{0, 0})
	assert.Contains(t, []int{0, 1}, index)
}

package pgsql

import (
	"fmt"
	"testing"
	"time"

	"github.com/ratesworks/fx_rates_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkSlice(t *testing.T) {
	dates := make([]time.Time, 1200)
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range dates {
		dates[i] = base.AddDate(0, 0, i)
	}

	chunks := chunkSlice(dates, 500)

	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 500)
	assert.Len(t, chunks[1], 500)
	assert.Len(t, chunks[2], 200)
	assert.Equal(t, dates[0], chunks[0][0])
	assert.Equal(t, dates[1199], chunks[2][199])
}

func TestChunkSlice_SmallInput(t *testing.T) {
	dates := []time.Time{time.Now()}
	chunks := chunkSlice(dates, 498)
	require.Len(t, chunks, 1)
	assert.Len(t, chunks[0], 1)
}

func TestChunkSlice_Empty(t *testing.T) {
	assert.Empty(t, chunkSlice[time.Time](nil, 498))
}

// A large pair list must be split so that no single range query carries
// more placeholders than the ceiling allows: two per pair plus the two
// range bounds.
func TestPairChunksStayUnderParamCeiling(t *testing.T) {
	pairs := make([]domain.PairKey, 600)
	for i := range pairs {
		pairs[i] = domain.PairKey{Base: "EUR", Quote: fmt.Sprintf("C%02d", i%100)}
	}

	chunks := chunkSlice(pairs, pairsPerQuery)

	require.Len(t, chunks, 3)
	total := 0
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk)*2+2, maxQueryParams)
		total += len(chunk)
	}
	assert.Equal(t, len(pairs), total)
}

// Same ceiling for the three-column pair source keys.
func TestKeyChunksStayUnderParamCeiling(t *testing.T) {
	keys := make([]domain.PairSourceKey, 400)
	for i := range keys {
		keys[i] = domain.PairSourceKey{Base: "EUR", Quote: "USD", Priority: i + 1}
	}

	chunks := chunkSlice(keys, keysPerQuery)

	require.Len(t, chunks, 3)
	total := 0
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk)*3, maxQueryParams)
		total += len(chunk)
	}
	assert.Equal(t, len(keys), total)
}

package storage

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openStore(t)

	first := uuid.New()
	_, err := store.SaveScore(first, "ada", 100, 11)
	require.NoError(t, err)
	_, err = store.SaveScore(uuid.New(), "bob", 50, 6)
	require.NoError(t, err)
	_, err = store.SaveScore(uuid.New(), "", 200, 21)
	require.NoError(t, err)

	scores, err := store.TopScores(10)
	require.NoError(t, err)
	require.Len(t, scores, 3)

	// Should be sorted descending
	assert.Equal(t, 200, scores[0].Score)
	assert.Equal(t, "anonymous", scores[0].Player)
	assert.Equal(t, 100, scores[1].Score)
	assert.Equal(t, first, scores[1].SessionID)
	assert.Equal(t, 11, scores[1].Length)
	assert.Equal(t, 50, scores[2].Score)
}

func TestStoresAreIsolated(t *testing.T) {
	a := openStore(t)
	b := openStore(t)

	_, err := a.SaveScore(uuid.New(), "ada", 30, 4)
	require.NoError(t, err)

	scores, err := b.TopScores(10)
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestStoreTopScoresLimitAndTies(t *testing.T) {
	store := openStore(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	early := uuid.New()
	_, err := store.SaveScore(early, "early", 40, 5)
	require.NoError(t, err)
	for i := range 5 {
		_, err := store.SaveScore(uuid.New(), "p", 10*i, i+1)
		require.NoError(t, err)
	}
	_, err = store.SaveScore(uuid.New(), "late", 40, 5)
	require.NoError(t, err)

	scores, err := store.TopScores(3)
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, early, scores[0].SessionID, "ties go to the earlier session")
	assert.Equal(t, "late", scores[1].Player)
	assert.Equal(t, 30, scores[2].Score)
	assert.True(t, scores[0].CreatedAt.Equal(base.Add(time.Minute)))

	all, err := store.TopScores(0)
	require.NoError(t, err)
	assert.Len(t, all, 7, "non-positive limit falls back to 10")
}

func TestStoreSaveIsIdempotentPerSession(t *testing.T) {
	store := openStore(t)
	id := uuid.New()

	first, err := store.SaveScore(id, "ada", 70, 8)
	require.NoError(t, err)
	second, err := store.SaveScore(id, "ada", 90, 10)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	scores, err := store.TopScores(10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 70, scores[0].Score)
}

func TestStoreHighScoreAndStats(t *testing.T) {
	store := openStore(t)

	high, err := store.HighScore()
	require.NoError(t, err)
	assert.Zero(t, high)

	stats, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)

	for _, s := range []struct{ score, length int }{{10, 2}, {50, 6}, {30, 4}} {
		_, err := store.SaveScore(uuid.New(), "p", s.score, s.length)
		require.NoError(t, err)
	}

	high, err = store.HighScore()
	require.NoError(t, err)
	assert.Equal(t, 50, high)

	stats, err = store.Stats()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Games)
	assert.Equal(t, 50, stats.BestScore)
	assert.InDelta(t, 30.0, stats.AverageScore, 1e-9)
	assert.Equal(t, 6, stats.LongestSnake)
}

func TestStoreConcurrentSaves(t *testing.T) {
	store := openStore(t)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.SaveScore(uuid.New(), "ssh", i*10, i+1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stats, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, 20, stats.Games)
	assert.Equal(t, 190, stats.BestScore)
}

package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *CatalogRepo {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "nested", "catalog.db")
	db, err := Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewCatalogRepo(db)
}

func TestCatalogRepoEmpty(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	levels, err := repo.ListLevels(ctx)
	require.NoError(t, err)
	assert.Empty(t, levels)

	quests, err := repo.ListQuests(ctx)
	require.NoError(t, err)
	assert.Empty(t, quests)
}

func TestCatalogRepoReplaceRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	levels := []Level{
		{Name: "Novice", Icon: "shield", Threshold: 0, Achievement: "start"},
		{Name: "Apprentice", Icon: "sword", Threshold: 1000, Achievement: "dummy"},
	}
	quests := []Quest{
		{ID: 7, Title: "Second by id, first by order", Feats: []Feat{{ID: "7.2", Title: "b"}, {ID: "7.1", Title: "a"}}},
		{ID: 3, Title: "Later", Description: "desc", Feats: []Feat{{ID: "3.1", Title: "c"}}},
	}
	require.NoError(t, repo.Replace(ctx, levels, quests))

	gotLevels, err := repo.ListLevels(ctx)
	require.NoError(t, err)
	require.Len(t, gotLevels, 2)
	assert.Equal(t, "Apprentice", gotLevels[1].Name)
	assert.Equal(t, 1000, gotLevels[1].Threshold)

	got, err := repo.ListQuests(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(7), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
	assert.Equal(t, "desc", got[1].Description)
	require.Len(t, got[0].Feats, 2)
	assert.Equal(t, "7.2", got[0].Feats[0].ID)
	assert.Equal(t, "7.1", got[0].Feats[1].ID)
}

func TestCatalogRepoReplaceOverwrites(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Replace(ctx,
		[]Level{{Name: "A"}},
		[]Quest{{ID: 1, Title: "old", Feats: []Feat{{ID: "1.1", Title: "x"}}}},
	))
	require.NoError(t, repo.Replace(ctx,
		[]Level{{Name: "B"}},
		[]Quest{{ID: 2, Title: "new", Feats: []Feat{{ID: "2.1", Title: "y"}}}},
	))

	quests, err := repo.ListQuests(ctx)
	require.NoError(t, err)
	require.Len(t, quests, 1)
	assert.Equal(t, "new", quests[0].Title)
	require.Len(t, quests[0].Feats, 1)
	assert.Equal(t, "2.1", quests[0].Feats[0].ID)
}

func TestCatalogRepoReplaceRollsBack(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Replace(ctx,
		[]Level{{Name: "A"}},
		[]Quest{{ID: 1, Title: "kept", Feats: []Feat{{ID: "1.1", Title: "x"}}}},
	))

	// Duplicate quest ids violate the primary key.
	err := repo.Replace(ctx,
		[]Level{{Name: "B"}},
		[]Quest{{ID: 5, Title: "a"}, {ID: 5, Title: "b"}},
	)
	require.Error(t, err)

	quests, err := repo.ListQuests(ctx)
	require.NoError(t, err)
	require.Len(t, quests, 1)
	assert.Equal(t, "kept", quests[0].Title)
}

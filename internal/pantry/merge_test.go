package pantry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doc4437/pantri/internal/domain"
)

func resolveAll(res Resolution) ConflictResolver {
	return func(Conflict) (Resolution, error) { return res, nil }
}

func TestMergeReplace(t *testing.T) {
	existing := []domain.Item{{ID: "old", Name: "Eggs", UpdatedAt: 100}}
	incoming := []domain.Item{{ID: "imp", Name: "eggs", UpdatedAt: 50}}

	merged, err := MergeItems(existing, incoming, resolveAll(Replace), testIDs(), testNow)
	require.NoError(t, err)

	require.Len(t, merged, 1)
	assert.Equal(t, "eggs", merged[0].Name)
	assert.NotEqual(t, "old", merged[0].ID, "replacement gets a fresh id")
	assert.NotEqual(t, "imp", merged[0].ID)
	assert.Equal(t, testNow, merged[0].UpdatedAt)
}

func TestMergeKeepBoth(t *testing.T) {
	existing := []domain.Item{{ID: "old", Name: "Eggs", UpdatedAt: 100}}
	incoming := []domain.Item{{ID: "imp", Name: "eggs", UpdatedAt: 50}}

	merged, err := MergeItems(existing, incoming, resolveAll(KeepBoth), testIDs(), testNow)
	require.NoError(t, err)

	require.Len(t, merged, 2)
	assert.Equal(t, "old", merged[0].ID)
	assert.Equal(t, "eggs (imported)", merged[1].Name)
	assert.NotEqual(t, "imp", merged[1].ID)
}

func TestMergeKeepExisting(t *testing.T) {
	existing := []domain.Item{{ID: "old", Name: "Eggs", UpdatedAt: 100}}
	incoming := []domain.Item{{ID: "imp", Name: "eggs", UpdatedAt: 50}}

	merged, err := MergeItems(existing, incoming, resolveAll(KeepExisting), testIDs(), testNow)
	require.NoError(t, err)

	require.Len(t, merged, 1)
	assert.Equal(t, "old", merged[0].ID)
	assert.Equal(t, "Eggs", merged[0].Name)
}

func TestMergeUnmatchedIncomingAppended(t *testing.T) {
	existing := []domain.Item{{ID: "e1", Name: "rice", UpdatedAt: 100}}
	incoming := []domain.Item{
		{ID: "a", Name: "beans", UpdatedAt: 1},
		{ID: "b", Name: "lentils", UpdatedAt: 2},
	}

	merged, err := MergeItems(existing, incoming, resolveAll(KeepExisting), testIDs(), testNow)
	require.NoError(t, err)

	require.Len(t, merged, 3)
	assert.Equal(t, "rice", merged[0].Name)
	assert.Equal(t, "beans", merged[1].Name)
	assert.Equal(t, "lentils", merged[2].Name)
	assert.NotEqual(t, "a", merged[1].ID)
	assert.Equal(t, testNow, merged[1].UpdatedAt)
}

func TestMergeKeepBothInsertionStaysAdjacent(t *testing.T) {
	existing := []domain.Item{
		{ID: "e1", Name: "eggs", UpdatedAt: 100},
		{ID: "e2", Name: "rice", UpdatedAt: 200},
	}
	incoming := []domain.Item{{ID: "imp", Name: "EGGS", UpdatedAt: 1}}

	merged, err := MergeItems(existing, incoming, resolveAll(KeepBoth), testIDs(), testNow)
	require.NoError(t, err)

	require.Len(t, merged, 3)
	assert.Equal(t, "e1", merged[0].ID)
	assert.Equal(t, "EGGS (imported)", merged[1].Name, "inserted right after the item it collided with")
	assert.Equal(t, "e2", merged[2].ID)
}

func TestMergeMatchIsCaseAndSpaceInsensitive(t *testing.T) {
	existing := []domain.Item{{ID: "e1", Name: "Olive Oil", UpdatedAt: 100}}
	incoming := []domain.Item{{ID: "imp", Name: "  olive oil ", UpdatedAt: 1}}

	conflicts := 0
	resolve := func(c Conflict) (Resolution, error) {
		conflicts++
		assert.Equal(t, "e1", c.Existing.ID)
		return KeepExisting, nil
	}

	_, err := MergeItems(existing, incoming, resolve, testIDs(), testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, conflicts)
}

func TestMergeDuplicateIncomingNamesLastWins(t *testing.T) {
	incoming := []domain.Item{
		{ID: "a", Name: "tea", Notes: domain.String("green"), UpdatedAt: 1},
		{ID: "b", Name: "Tea", Notes: domain.String("black"), UpdatedAt: 2},
	}

	merged, err := MergeItems(nil, incoming, resolveAll(KeepExisting), testIDs(), testNow)
	require.NoError(t, err)

	require.Len(t, merged, 1)
	assert.Equal(t, "black", *merged[0].Notes)
}

func TestMergeResolverErrorAborts(t *testing.T) {
	existing := []domain.Item{{ID: "e1", Name: "eggs", UpdatedAt: 100}}
	incoming := []domain.Item{{ID: "imp", Name: "eggs", UpdatedAt: 1}}

	boom := errors.New("user cancelled")
	_, err := MergeItems(existing, incoming, func(Conflict) (Resolution, error) {
		return 0, boom
	}, testIDs(), testNow)

	assert.ErrorIs(t, err, boom)
}

func TestMergeConflictConsumedOncePerName(t *testing.T) {
	// Two existing items normalize to the same name; only the first one
	// sees the conflict.
	existing := []domain.Item{
		{ID: "e1", Name: "eggs", UpdatedAt: 100},
		{ID: "e2", Name: "Eggs", UpdatedAt: 200},
	}
	incoming := []domain.Item{{ID: "imp", Name: "eggs", UpdatedAt: 1}}

	conflicts := 0
	merged, err := MergeItems(existing, incoming, func(Conflict) (Resolution, error) {
		conflicts++
		return Replace, nil
	}, testIDs(), testNow)
	require.NoError(t, err)

	assert.Equal(t, 1, conflicts)
	require.Len(t, merged, 2)
	assert.Equal(t, "eggs", merged[0].Name)
	assert.Equal(t, "e2", merged[1].ID, "second same-name existing item is untouched")
}

package migration

import (
	"testing"

	"crickstore/internal/services/woocommerce"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderCategoriesParentBeforeChild(t *testing.T) {
	// Child listed before its parent must still come out parent-first.
	input := []woocommerce.Category{
		{ID: 2, Parent: 1, Name: "English Willow"},
		{ID: 1, Parent: 0, Name: "Bats"},
	}

	ordered := OrderCategories(input)

	require.Len(t, ordered, 2)
	assert.Equal(t, "Bats", ordered[0].Name)
	assert.Equal(t, "English Willow", ordered[1].Name)
}

func TestOrderCategoriesDeepHierarchy(t *testing.T) {
	input := []woocommerce.Category{
		{ID: 5, Parent: 3, Name: "Kashmir Willow Junior"},
		{ID: 3, Parent: 1, Name: "Kashmir Willow"},
		{ID: 4, Parent: 1, Name: "English Willow"},
		{ID: 1, Parent: 0, Name: "Bats"},
		{ID: 2, Parent: 0, Name: "Balls"},
	}

	ordered := OrderCategories(input)
	require.Len(t, ordered, 5)

	position := make(map[int64]int)
	for i, cat := range ordered {
		position[cat.ID] = i
	}

	for _, cat := range input {
		if cat.Parent != 0 {
			assert.Less(t, position[cat.Parent], position[cat.ID],
				"parent of %s must be placed first", cat.Name)
		}
	}
}

func TestOrderCategoriesMissingParentKeepsRecord(t *testing.T) {
	input := []woocommerce.Category{
		{ID: 1, Parent: 0, Name: "Bats"},
		{ID: 7, Parent: 99, Name: "Orphan"},
	}

	ordered := OrderCategories(input)

	require.Len(t, ordered, 2, "no record may be dropped")
	assert.Equal(t, "Orphan", ordered[1].Name)
}

func TestOrderCategoriesCycleTerminates(t *testing.T) {
	input := []woocommerce.Category{
		{ID: 1, Parent: 2, Name: "A"},
		{ID: 2, Parent: 1, Name: "B"},
		{ID: 3, Parent: 0, Name: "Root"},
	}

	ordered := OrderCategories(input)

	require.Len(t, ordered, 3)
	assert.Equal(t, "Root", ordered[0].Name)
	// Cyclic records are appended verbatim in original order.
	assert.Equal(t, "A", ordered[1].Name)
	assert.Equal(t, "B", ordered[2].Name)
}

func TestOrderCategoriesEmpty(t *testing.T) {
	assert.Empty(t, OrderCategories(nil))
}

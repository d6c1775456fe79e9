package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(id int64) *int64 { return &id }

// ============================================================================
// BuildNavigationTree Tests
// ============================================================================

func TestBuildNavigationTree_OrdersBySortOrder(t *testing.T) {
	categories := []Category{
		{ID: 1, Name: "Кучета", ParentID: nil, Visible: true, SortOrder: 2},
		{ID: 2, Name: "Котки", ParentID: nil, Visible: true, SortOrder: 1},
		{ID: 3, Name: "Храна за кучета", ParentID: ptr(1), Visible: true, SortOrder: 1},
		{ID: 4, Name: "Скрита", ParentID: ptr(1), Visible: false, SortOrder: 2},
	}

	tree := BuildNavigationTree(categories)

	require.Len(t, tree, 2)
	assert.Equal(t, "Котки", tree[0].Name)
	assert.Empty(t, tree[0].Children)
	assert.Equal(t, "Кучета", tree[1].Name)
	require.Len(t, tree[1].Children, 1)
	assert.Equal(t, "Храна за кучета", tree[1].Children[0].Name)
}

func TestBuildNavigationTree_ExcludesInvisibleRoots(t *testing.T) {
	categories := []Category{
		{ID: 1, Name: "Видима", Visible: true, SortOrder: 1},
		{ID: 2, Name: "Скрита", Visible: false, SortOrder: 2},
	}

	tree := BuildNavigationTree(categories)

	require.Len(t, tree, 1)
	assert.Equal(t, "Видима", tree[0].Name)
}

func TestBuildNavigationTree_DropsOrphanedChildren(t *testing.T) {
	categories := []Category{
		{ID: 1, Name: "Видима", Visible: true, SortOrder: 1},
		{ID: 2, Name: "Скрит родител", Visible: false, SortOrder: 2},
		{ID: 3, Name: "Осиротяло дете", ParentID: ptr(2), Visible: true, SortOrder: 1},
		{ID: 4, Name: "Без родител", ParentID: ptr(99), Visible: true, SortOrder: 1},
	}

	tree := BuildNavigationTree(categories)

	require.Len(t, tree, 1)
	assert.Empty(t, tree[0].Children)
}

func TestBuildNavigationTree_TieBreaksOnID(t *testing.T) {
	categories := []Category{
		{ID: 5, Name: "Б", Visible: true, SortOrder: 1},
		{ID: 2, Name: "А", Visible: true, SortOrder: 1},
	}

	tree := BuildNavigationTree(categories)

	require.Len(t, tree, 2)
	assert.Equal(t, int64(2), tree[0].ID)
	assert.Equal(t, int64(5), tree[1].ID)
}

func TestBuildNavigationTree_Empty(t *testing.T) {
	tree := BuildNavigationTree(nil)
	assert.Empty(t, tree)
}

func TestBuildNavigationTree_ChildrenSorted(t *testing.T) {
	categories := []Category{
		{ID: 1, Name: "Кучета", Visible: true, SortOrder: 1},
		{ID: 2, Name: "Играчки", ParentID: ptr(1), Visible: true, SortOrder: 3},
		{ID: 3, Name: "Храна", ParentID: ptr(1), Visible: true, SortOrder: 1},
		{ID: 4, Name: "Аксесоари", ParentID: ptr(1), Visible: true, SortOrder: 2},
	}

	tree := BuildNavigationTree(categories)

	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 3)
	assert.Equal(t, "Храна", tree[0].Children[0].Name)
	assert.Equal(t, "Аксесоари", tree[0].Children[1].Name)
	assert.Equal(t, "Играчки", tree[0].Children[2].Name)
}

// ============================================================================
// CategoryGroup Tests
// ============================================================================

func TestCategoryGroup_ExpandsToChildren(t *testing.T) {
	categories := []Category{
		{ID: 1, Visible: true},
		{ID: 2, ParentID: ptr(1), Visible: true},
		{ID: 3, ParentID: ptr(1), Visible: true},
		{ID: 4, ParentID: ptr(9), Visible: true},
	}

	ids := CategoryGroup(categories, 1)

	assert.Equal(t, []int64{1, 2, 3}, ids)
}

func TestCategoryGroup_LeafCategory(t *testing.T) {
	categories := []Category{
		{ID: 1, Visible: true},
		{ID: 2, ParentID: ptr(1), Visible: true},
	}

	ids := CategoryGroup(categories, 2)

	assert.Equal(t, []int64{2}, ids)
}

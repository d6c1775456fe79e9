package domain

import (
	"sort"
	"time"
)

// Category represents a navigation category. ParentID is nil for top-level
// categories. Href overrides the default catalog link for non-catalog nav
// entries (e.g. a promotions page).
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	ParentID  *int64    `json:"parent_id,omitempty"`
	Visible   bool      `json:"visible"`
	SortOrder int       `json:"sort_order"`
	Href      string    `json:"href,omitempty"`
	Icon      string    `json:"icon,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NavigationNode is a top-level category annotated with its visible children,
// as rendered in the primary navigation.
type NavigationNode struct {
	Category
	Children []Category `json:"children"`
}

// BuildNavigationTree flattens a category list into the two-level navigation
// tree: visible top-level categories ordered by sort_order, each carrying its
// visible direct children ordered the same way. Children of invisible or
// missing parents are dropped. Equal sort_order ties break on id ascending so
// the tree is reproducible across refetches.
func BuildNavigationTree(categories []Category) []NavigationNode {
	var roots []Category
	childrenByParent := make(map[int64][]Category)

	for _, c := range categories {
		if !c.Visible {
			continue
		}
		if c.ParentID == nil {
			roots = append(roots, c)
		} else {
			childrenByParent[*c.ParentID] = append(childrenByParent[*c.ParentID], c)
		}
	}

	sortCategories(roots)

	tree := make([]NavigationNode, 0, len(roots))
	for _, root := range roots {
		children := childrenByParent[root.ID]
		sortCategories(children)
		if children == nil {
			children = []Category{}
		}
		tree = append(tree, NavigationNode{Category: root, Children: children})
	}

	return tree
}

func sortCategories(cs []Category) {
	sort.SliceStable(cs, func(i, j int) bool {
		if cs[i].SortOrder != cs[j].SortOrder {
			return cs[i].SortOrder < cs[j].SortOrder
		}
		return cs[i].ID < cs[j].ID
	})
}

// CategoryGroup returns the ids covered by a category when filtering: a
// top-level category expands to itself plus all its direct children.
func CategoryGroup(categories []Category, categoryID int64) []int64 {
	ids := []int64{categoryID}
	for _, c := range categories {
		if c.ParentID != nil && *c.ParentID == categoryID {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

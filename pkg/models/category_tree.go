package models

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryTree is the hierarchy of all categories.
//
// Categories are stored flat with a parent reference. The tree keeps every
// category keyed by its ID together with an index of the children of
// each category, so that traversals do not need to query the database.
type CategoryTree struct {
	nodes    map[uuid.UUID]Category
	children map[uuid.UUID][]uuid.UUID
}

// NewCategoryTree builds the tree for a flat list of categories.
//
// Categories referencing a parent that is not in the list are treated as roots.
func NewCategoryTree(categories []Category) CategoryTree {
	t := CategoryTree{
		nodes:    make(map[uuid.UUID]Category, len(categories)),
		children: make(map[uuid.UUID][]uuid.UUID),
	}

	for _, c := range categories {
		t.nodes[c.ID] = c
	}

	for _, c := range categories {
		if c.ParentID == nil {
			continue
		}

		if _, ok := t.nodes[*c.ParentID]; !ok {
			continue
		}

		t.children[*c.ParentID] = append(t.children[*c.ParentID], c.ID)
	}

	for id := range t.children {
		ids := t.children[id]
		sort.Slice(ids, func(i, j int) bool {
			return t.nodes[ids[i]].Name < t.nodes[ids[j]].Name
		})
	}

	return t
}

// LoadCategoryTree reads all categories and builds the tree.
func LoadCategoryTree(db *gorm.DB) (CategoryTree, error) {
	var categories []Category
	err := db.Find(&categories).Error
	if err != nil {
		return CategoryTree{}, fmt.Errorf("loading categories: %w", err)
	}

	return NewCategoryTree(categories), nil
}

// Get returns the category with the ID.
func (t CategoryTree) Get(id uuid.UUID) (Category, bool) {
	c, ok := t.nodes[id]
	return c, ok
}

// Len is the number of categories in the tree.
func (t CategoryTree) Len() int {
	return len(t.nodes)
}

// Roots returns all categories without a parent, sorted by name.
func (t CategoryTree) Roots() []Category {
	roots := make([]Category, 0)
	for _, c := range t.nodes {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}

		if _, ok := t.nodes[*c.ParentID]; !ok {
			roots = append(roots, c)
		}
	}

	sort.Slice(roots, func(i, j int) bool {
		return roots[i].Name < roots[j].Name
	})

	return roots
}

// Children returns the direct children of a category, sorted by name.
func (t CategoryTree) Children(id uuid.UUID) []Category {
	children := make([]Category, 0, len(t.children[id]))
	for _, childID := range t.children[id] {
		children = append(children, t.nodes[childID])
	}
	return children
}

// Descendants returns all categories below the category in depth-first order.
// The category itself is not included.
func (t CategoryTree) Descendants(id uuid.UUID) []Category {
	descendants := make([]Category, 0)
	visited := map[uuid.UUID]bool{id: true}

	stack := append([]uuid.UUID(nil), t.children[id]...)
	for len(stack) > 0 {
		current := stack[0]
		stack = stack[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		descendants = append(descendants, t.nodes[current])
		stack = append(append([]uuid.UUID(nil), t.children[current]...), stack...)
	}

	return descendants
}

// Subtree returns the IDs of the category and all of its descendants.
func (t CategoryTree) Subtree(id uuid.UUID) []uuid.UUID {
	ids := []uuid.UUID{id}
	for _, d := range t.Descendants(id) {
		ids = append(ids, d.ID)
	}
	return ids
}

// Ancestors returns the parent chain of a category, starting with the
// direct parent and ending with the root.
func (t CategoryTree) Ancestors(id uuid.UUID) []Category {
	ancestors := make([]Category, 0)
	visited := map[uuid.UUID]bool{id: true}

	current, ok := t.nodes[id]
	for ok && current.ParentID != nil && !visited[*current.ParentID] {
		parentID := *current.ParentID
		visited[parentID] = true

		current, ok = t.nodes[parentID]
		if ok {
			ancestors = append(ancestors, current)
		}
	}

	return ancestors
}

// WouldCycle reports if setting parentID as the parent of the category with
// the given ID creates a cycle.
func (t CategoryTree) WouldCycle(id, parentID uuid.UUID) bool {
	if id == parentID {
		return true
	}

	for _, d := range t.Descendants(id) {
		if d.ID == parentID {
			return true
		}
	}

	return false
}

package models

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a named classification for transactions.
//
// Categories form a tree through ParentID. The tree is stored flat, see
// CategoryTree for traversal.
type Category struct {
	DefaultModel
	Name        string     `json:"name" gorm:"size:100;not null;uniqueIndex" example:"Groceries"`                          // Name of the category, unique
	Description string     `json:"description" example:"Food and household supplies" default:""`                          // Description of the category
	ParentID    *uuid.UUID `json:"parentId" gorm:"type:char(36);index" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the parent category
	Parent      *Category  `json:"-"`
}

// BeforeSave trims whitespace and verifies that the category is valid.
func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Description = strings.TrimSpace(c.Description)
	c.ParentID = nilIfZero(c.ParentID)

	if c.Name == "" {
		return ErrNameEmpty
	}

	if c.ParentID != nil && *c.ParentID == c.ID {
		return ErrCategoryCycle
	}

	return nil
}

func (Category) Export(db *gorm.DB) (json.RawMessage, error) {
	return export[Category](db)
}

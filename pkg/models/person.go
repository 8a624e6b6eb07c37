package models

import (
	"encoding/json"
	"strings"

	"gorm.io/gorm"
)

// Person is someone who pays for expenses or earns income.
type Person struct {
	DefaultModel
	Name        string `json:"name" gorm:"size:100;not null;uniqueIndex" example:"Alice"` // Name of the person, unique
	Description string `json:"description" example:"Pays the rent" default:""`            // Description of the person
}

func (Person) TableName() string {
	return "persons"
}

// BeforeSave trims whitespace and verifies that the name is set.
func (p *Person) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)

	if p.Name == "" {
		return ErrNameEmpty
	}

	return nil
}

func (Person) Export(db *gorm.DB) (json.RawMessage, error) {
	return export[Person](db)
}

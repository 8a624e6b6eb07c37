package models

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// Model is a resource that can be exported.
type Model interface {
	Export(db *gorm.DB) (json.RawMessage, error) // All instances of this model for export.
}

// The "Registry" is a slice of all models available
//
// It is maintained so that operations that affect all models do not need to explicitly iterate over every single model,
// increasing the risk of forgetting something when adding a new model
var Registry = []Model{
	Category{},
	IncomeDetail{},
	Person{},
	Transaction{},
}

func export[T any](db *gorm.DB) (json.RawMessage, error) {
	var resources []T

	err := db.Find(&resources).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(resources)
	if err != nil {
		return nil, fmt.Errorf("marshaling export data: %w", err)
	}

	return j, nil
}

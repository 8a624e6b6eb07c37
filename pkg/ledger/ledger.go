// Package ledger implements writes to the account book: transactions with
// upsert-by-name resolution of categories and persons, and the management
// of categories and persons themselves.
package ledger

import (
	"context"
	"strings"

	"github.com/OuterCloud/family-account-book/pkg/events"
	"github.com/OuterCloud/family-account-book/pkg/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// DateLayout is the layout used to compare transaction dates by day.
const DateLayout = "2006-01-02"

// Service implements all ledger operations on a database.
type Service struct {
	db        *gorm.DB
	publisher events.Publisher
}

// New returns a Service for the database. If publisher is nil, events are discarded.
func New(db *gorm.DB, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}

	return &Service{
		db:        db,
		publisher: publisher,
	}
}

// transaction runs fn in a database transaction.
func (s *Service) transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return models.TranslateError(s.db.WithContext(ctx).Transaction(fn))
}

// publish sends an event for a successful write. Failing to publish
// never fails the write, the error is only logged.
func (s *Service) publish(ctx context.Context, kind events.Kind, resource events.Resource, id uuid.UUID) {
	err := s.publisher.Publish(ctx, events.New(kind, resource, id))
	if err != nil {
		log.Error().Err(err).Str("resource", string(resource)).Str("id", id.String()).Msg("publishing event failed")
	}
}

// FindOrCreateCategory returns the ID of the category with the name,
// creating it with an empty description if it does not exist.
//
// It must be called with the database transaction of the write that
// references the category.
func (s *Service) FindOrCreateCategory(tx *gorm.DB, name string) (uuid.UUID, error) {
	name = strings.TrimSpace(name)

	var category models.Category
	err := tx.Where("name = ?", name).Limit(1).Find(&category).Error
	if err != nil {
		return uuid.Nil, err
	}

	if category.ID != uuid.Nil {
		return category.ID, nil
	}

	category = models.Category{Name: name}
	err = tx.Create(&category).Error
	if err != nil {
		return uuid.Nil, err
	}

	return category.ID, nil
}

// FindOrCreatePerson returns the ID of the person with the name, creating
// the person if it does not exist.
//
// It must be called with the database transaction of the write that
// references the person.
func (s *Service) FindOrCreatePerson(tx *gorm.DB, name string) (uuid.UUID, error) {
	name = strings.TrimSpace(name)

	var person models.Person
	err := tx.Where("name = ?", name).Limit(1).Find(&person).Error
	if err != nil {
		return uuid.Nil, err
	}

	if person.ID != uuid.Nil {
		return person.ID, nil
	}

	person = models.Person{Name: name}
	err = tx.Create(&person).Error
	if err != nil {
		return uuid.Nil, err
	}

	return person.ID, nil
}

// findByID loads the resource with the ID. The boolean is false if it
// does not exist.
func findByID[T any](db *gorm.DB, id uuid.UUID) (T, bool, error) {
	var resource T
	result := db.Where("id = ?", id).Limit(1).Find(&resource)
	if result.Error != nil {
		return resource, false, result.Error
	}

	return resource, result.RowsAffected > 0, nil
}

// referenced reports if at least one transaction references the resource
// in the column.
func referenced(tx *gorm.DB, column string, id uuid.UUID) (bool, error) {
	var count int64
	err := tx.Model(&models.Transaction{}).Where(column+" = ?", id).Count(&count).Error
	return count > 0, err
}

package ledger

import (
	"context"

	"github.com/OuterCloud/family-account-book/pkg/events"
	"github.com/OuterCloud/family-account-book/pkg/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PersonCreate contains the data for a new person.
type PersonCreate struct {
	Name        string `json:"name" example:"Alice"`
	Description string `json:"description" example:"Pays the rent"`
}

// PersonPatch contains the fields to update on a person. Nil fields are left
// untouched.
type PersonPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ListPersons returns all persons ordered by name.
func (s *Service) ListPersons(ctx context.Context) ([]models.Person, error) {
	persons := make([]models.Person, 0)
	err := s.db.WithContext(ctx).Order("name ASC").Find(&persons).Error
	return persons, err
}

// GetPerson returns the person with the ID.
func (s *Service) GetPerson(ctx context.Context, id uuid.UUID) (models.Person, bool, error) {
	return findByID[models.Person](s.db.WithContext(ctx), id)
}

// CreatePerson creates a person.
func (s *Service) CreatePerson(ctx context.Context, in PersonCreate) (models.Person, error) {
	person := models.Person{
		Name:        in.Name,
		Description: in.Description,
	}

	err := s.db.WithContext(ctx).Create(&person).Error
	if err != nil {
		return models.Person{}, err
	}

	s.publish(ctx, events.KindCreated, events.ResourcePerson, person.ID)
	return person, nil
}

// UpdatePerson applies the patch to the person.
func (s *Service) UpdatePerson(ctx context.Context, id uuid.UUID, patch PersonPatch) (models.Person, bool, error) {
	var person models.Person
	var found bool

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var err error
		person, found, err = findByID[models.Person](tx, id)
		if err != nil || !found {
			return err
		}

		if patch.Name != nil {
			person.Name = *patch.Name
		}

		if patch.Description != nil {
			person.Description = *patch.Description
		}

		return tx.Save(&person).Error
	})
	if err != nil || !found {
		return models.Person{}, false, err
	}

	s.publish(ctx, events.KindUpdated, events.ResourcePerson, person.ID)
	return person, true, nil
}

// DeletePerson deletes the person. It returns false if the person does not
// exist or is referenced by a transaction.
func (s *Service) DeletePerson(ctx context.Context, id uuid.UUID) (bool, error) {
	var deleted bool

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		inUse, err := referenced(tx, "person_id", id)
		if err != nil || inUse {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Person{})
		deleted = result.RowsAffected > 0
		return result.Error
	})
	if err != nil || !deleted {
		return false, err
	}

	s.publish(ctx, events.KindDeleted, events.ResourcePerson, id)
	return true, nil
}

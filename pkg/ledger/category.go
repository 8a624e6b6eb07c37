package ledger

import (
	"context"

	"github.com/OuterCloud/family-account-book/pkg/events"
	"github.com/OuterCloud/family-account-book/pkg/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CategoryCreate contains the data for a new category.
type CategoryCreate struct {
	Name        string     `json:"name" example:"Groceries"`
	Description string     `json:"description" example:"Food and household supplies"`
	ParentID    *uuid.UUID `json:"parentId"`
}

// CategoryPatch contains the fields to update on a category. Nil fields are
// left untouched. A ParentID pointing to the Nil UUID removes the parent.
type CategoryPatch struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	ParentID    *uuid.UUID `json:"parentId"`
}

// ListCategories returns all categories ordered by name.
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

// GetCategory returns the category with the ID.
func (s *Service) GetCategory(ctx context.Context, id uuid.UUID) (models.Category, bool, error) {
	return findByID[models.Category](s.db.WithContext(ctx), id)
}

// CreateCategory creates a category.
func (s *Service) CreateCategory(ctx context.Context, in CategoryCreate) (models.Category, error) {
	category := models.Category{
		Name:        in.Name,
		Description: in.Description,
		ParentID:    in.ParentID,
	}

	err := s.db.WithContext(ctx).Create(&category).Error
	if err != nil {
		return models.Category{}, err
	}

	s.publish(ctx, events.KindCreated, events.ResourceCategory, category.ID)
	return category, nil
}

// UpdateCategory applies the patch to the category. Setting a parent that
// is the category itself or one of its descendants fails with
// models.ErrCategoryCycle.
func (s *Service) UpdateCategory(ctx context.Context, id uuid.UUID, patch CategoryPatch) (models.Category, bool, error) {
	var category models.Category
	var found bool

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var err error
		category, found, err = findByID[models.Category](tx, id)
		if err != nil || !found {
			return err
		}

		if patch.Name != nil {
			category.Name = *patch.Name
		}

		if patch.Description != nil {
			category.Description = *patch.Description
		}

		if patch.ParentID != nil {
			if *patch.ParentID == uuid.Nil {
				category.ParentID = nil
			} else {
				tree, err := models.LoadCategoryTree(tx)
				if err != nil {
					return err
				}

				if tree.WouldCycle(category.ID, *patch.ParentID) {
					return models.ErrCategoryCycle
				}

				parentID := *patch.ParentID
				category.ParentID = &parentID
			}
		}

		return tx.Omit(clause.Associations).Save(&category).Error
	})
	if err != nil || !found {
		return models.Category{}, false, err
	}

	s.publish(ctx, events.KindUpdated, events.ResourceCategory, category.ID)
	return category, true, nil
}

// DeleteCategory deletes the category. It returns false if the category does
// not exist, is referenced by a transaction or has child categories.
func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) (bool, error) {
	var deleted bool

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		inUse, err := referenced(tx, "category_id", id)
		if err != nil || inUse {
			return err
		}

		var children int64
		err = tx.Model(&models.Category{}).Where("parent_id = ?", id).Count(&children).Error
		if err != nil || children > 0 {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Category{})
		deleted = result.RowsAffected > 0
		return result.Error
	})
	if err != nil || !deleted {
		return false, err
	}

	s.publish(ctx, events.KindDeleted, events.ResourceCategory, id)
	return true, nil
}

package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/OuterCloud/family-account-book/pkg/events"
	"github.com/OuterCloud/family-account-book/pkg/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Deduction is an itemized deduction from an income.
type Deduction struct {
	ItemName string          `json:"itemName" example:"Income tax"`
	Amount   decimal.Decimal `json:"amount" example:"312.5"`
}

// TransactionCreate contains the data for a new transaction.
type TransactionCreate struct {
	Date         time.Time       `json:"date" example:"2023-10-05T00:00:00Z"`
	Amount       decimal.Decimal `json:"amount" example:"100"`
	Description  string          `json:"description" example:"Dinner"`
	CategoryName string          `json:"categoryName" example:"餐饮"` // Created if it does not exist. Empty for uncategorized transactions
	PersonName   string          `json:"personName" example:"Alice"` // Created if it does not exist
	Deductions   []Deduction     `json:"deductions"`                 // Only for income
}

// TransactionPatch contains the fields to update on a transaction. Nil
// fields are left untouched.
type TransactionPatch struct {
	Date         *time.Time              `json:"date"`
	Amount       *decimal.Decimal        `json:"amount"`
	Type         *models.TransactionType `json:"type"`
	Description  *string                 `json:"description"`
	CategoryName *string                 `json:"categoryName"` // Empty names are ignored
	PersonName   *string                 `json:"personName"`   // Empty names are ignored
}

// CreateExpense records an expense.
func (s *Service) CreateExpense(ctx context.Context, in TransactionCreate) (models.Transaction, error) {
	return s.createTransaction(ctx, models.TransactionTypeExpense, in)
}

// CreateIncome records an income with its deductions.
func (s *Service) CreateIncome(ctx context.Context, in TransactionCreate) (models.Transaction, error) {
	return s.createTransaction(ctx, models.TransactionTypeIncome, in)
}

func (s *Service) createTransaction(ctx context.Context, transactionType models.TransactionType, in TransactionCreate) (models.Transaction, error) {
	details, err := incomeDetails(transactionType, in.Deductions)
	if err != nil {
		return models.Transaction{}, err
	}

	transaction := models.Transaction{
		Date:          in.Date,
		Amount:        in.Amount,
		Type:          transactionType,
		Description:   in.Description,
		IncomeDetails: details,
	}

	err = s.transaction(ctx, func(tx *gorm.DB) error {
		if err := s.resolveReferences(tx, &transaction, in.CategoryName, in.PersonName); err != nil {
			return err
		}

		return tx.Create(&transaction).Error
	})
	if err != nil {
		return models.Transaction{}, err
	}

	s.publish(ctx, events.KindCreated, events.ResourceTransaction, transaction.ID)
	return transaction, nil
}

// incomeDetails validates deductions and converts them to income details.
func incomeDetails(transactionType models.TransactionType, deductions []Deduction) ([]models.IncomeDetail, error) {
	if len(deductions) == 0 {
		return nil, nil
	}

	if transactionType != models.TransactionTypeIncome {
		return nil, models.ErrDeductionsOnExpense
	}

	details := make([]models.IncomeDetail, 0, len(deductions))
	for i, d := range deductions {
		if strings.TrimSpace(d.ItemName) == "" {
			return nil, fmt.Errorf("deduction %d: %w", i, models.ErrDeductionItemEmpty)
		}

		details = append(details, models.IncomeDetail{ItemName: d.ItemName, Amount: d.Amount})
	}

	return details, nil
}

// resolveReferences sets the category and person of the transaction by name.
// Empty names are ignored.
func (s *Service) resolveReferences(tx *gorm.DB, transaction *models.Transaction, categoryName, personName string) error {
	if strings.TrimSpace(categoryName) != "" {
		id, err := s.FindOrCreateCategory(tx, categoryName)
		if err != nil {
			return err
		}
		transaction.CategoryID = &id
	}

	if strings.TrimSpace(personName) != "" {
		id, err := s.FindOrCreatePerson(tx, personName)
		if err != nil {
			return err
		}
		transaction.PersonID = &id
	}

	return nil
}

// GetTransaction returns the transaction with its income details.
func (s *Service) GetTransaction(ctx context.Context, id uuid.UUID) (models.Transaction, bool, error) {
	return findByID[models.Transaction](s.db.WithContext(ctx).Preload("IncomeDetails"), id)
}

// UpdateTransaction applies the patch to the transaction. If the transaction
// does not exist, it returns false and no error.
func (s *Service) UpdateTransaction(ctx context.Context, id uuid.UUID, patch TransactionPatch) (models.Transaction, bool, error) {
	var transaction models.Transaction
	var found bool

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var err error
		transaction, found, err = findByID[models.Transaction](tx, id)
		if err != nil || !found {
			return err
		}

		if patch.Date != nil {
			transaction.Date = *patch.Date
		}

		if patch.Amount != nil {
			transaction.Amount = *patch.Amount
		}

		if patch.Description != nil {
			transaction.Description = *patch.Description
		}

		if patch.Type != nil {
			transaction.Type = *patch.Type
		}

		var categoryName, personName string
		if patch.CategoryName != nil {
			categoryName = *patch.CategoryName
		}
		if patch.PersonName != nil {
			personName = *patch.PersonName
		}

		if err := s.resolveReferences(tx, &transaction, categoryName, personName); err != nil {
			return err
		}

		err = tx.Omit(clause.Associations).Save(&transaction).Error
		if err != nil {
			return err
		}

		// Expenses do not have deductions
		if transaction.Type == models.TransactionTypeExpense {
			err = tx.Where("transaction_id = ?", transaction.ID).Delete(&models.IncomeDetail{}).Error
			if err != nil {
				return err
			}
		}

		return tx.Where("transaction_id = ?", transaction.ID).Find(&transaction.IncomeDetails).Error
	})
	if err != nil || !found {
		return models.Transaction{}, false, err
	}

	s.publish(ctx, events.KindUpdated, events.ResourceTransaction, transaction.ID)
	return transaction, true, nil
}

// DeleteTransaction deletes the transaction and its income details. It
// returns false if the transaction does not exist.
func (s *Service) DeleteTransaction(ctx context.Context, id uuid.UUID) (bool, error) {
	var deleted bool

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		err := tx.Where("transaction_id = ?", id).Delete(&models.IncomeDetail{}).Error
		if err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Transaction{})
		deleted = result.RowsAffected > 0
		return result.Error
	})
	if err != nil || !deleted {
		return false, err
	}

	s.publish(ctx, events.KindDeleted, events.ResourceTransaction, id)
	return true, nil
}

package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AmountScale is the number of decimal places stored for amounts.
const AmountScale = 8

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether the type is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction is a single dated income or expense.
type Transaction struct {
	DefaultModel
	Date          time.Time       `json:"date" gorm:"not null;index" example:"2023-10-05T00:00:00Z"` // Date of the transaction. Time is only used for sorting
	Amount        decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"14.03"`
	Type          TransactionType `json:"type" gorm:"type:varchar(20);not null;index" example:"expense"`
	Description   string          `json:"description" example:"Lunch" default:""`
	CategoryID    *uuid.UUID      `json:"categoryId" gorm:"type:char(36);index"` // Only expenses usually carry a category
	Category      *Category       `json:"-"`
	PersonID      *uuid.UUID      `json:"personId" gorm:"type:char(36);index"`
	Person        *Person         `json:"-"`
	IncomeDetails []IncomeDetail  `json:"incomeDetails" gorm:"constraint:OnDelete:CASCADE"`
}

// AfterFind enforces UTC for the transaction date.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return
}

// BeforeSave
//   - stores the Date with its wall clock time in UTC, defaulting it to now
//   - stores references to the Nil UUID as NULL
//   - trims whitespace from the description
//   - verifies the transaction type
func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	t.Description = strings.TrimSpace(t.Description)
	t.CategoryID = nilIfZero(t.CategoryID)
	t.PersonID = nilIfZero(t.PersonID)

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = wallClockUTC(t.Date)
	}

	if !t.Type.Valid() {
		return fmt.Errorf("%w, got '%s'", ErrTransactionTypeInvalid, t.Type)
	}

	if t.Type != TransactionTypeIncome && len(t.IncomeDetails) > 0 {
		return ErrDeductionsOnExpense
	}

	return
}

// wallClockUTC returns the time with the same calendar day and time of day
// in UTC. Months are bucketed on the day as it was written.
func wallClockUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// Deductions returns the sum of all income details of the transaction.
//
// IncomeDetails must be loaded.
func (t Transaction) Deductions() decimal.Decimal {
	sum := decimal.Zero
	for _, d := range t.IncomeDetails {
		sum = sum.Add(d.Amount)
	}
	return sum
}

// NetAmount is the amount minus all deductions.
func (t Transaction) NetAmount() decimal.Decimal {
	return t.Amount.Sub(t.Deductions())
}

func (Transaction) Export(db *gorm.DB) (json.RawMessage, error) {
	return export[Transaction](db)
}

package models

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IncomeDetail is a deduction itemized on an income transaction, e.g.
// income tax or social insurance contributions.
type IncomeDetail struct {
	DefaultModel
	TransactionID uuid.UUID       `json:"transactionId" gorm:"type:char(36);not null;index"`
	ItemName      string          `json:"itemName" gorm:"size:100;not null" example:"Income tax"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"312.50"`
}

func (d *IncomeDetail) BeforeSave(_ *gorm.DB) error {
	d.ItemName = strings.TrimSpace(d.ItemName)
	if d.ItemName == "" {
		return ErrDeductionItemEmpty
	}

	return nil
}

func (IncomeDetail) Export(db *gorm.DB) (json.RawMessage, error) {
	return export[IncomeDetail](db)
}

package analytics

import (
	"context"

	"github.com/OuterCloud/family-account-book/internal/types"
	"github.com/shopspring/decimal"
)

// Report summarizes a month.
type Report struct {
	Month       types.Month                `json:"month" example:"2023-10-01T00:00:00Z"`
	Expenses    map[string]decimal.Decimal `json:"expenses"`    // Expenses per category name, including the "total" key
	Percentages map[string]decimal.Decimal `json:"percentages"` // Share of every category in the total expenses
	Income      decimal.Decimal            `json:"income" example:"10000"`
	Deductions  decimal.Decimal            `json:"deductions" example:"1850"`
	NetIncome   decimal.Decimal            `json:"netIncome" example:"8150"`
	Balance     decimal.Decimal            `json:"balance" example:"7970"` // Net income minus total expenses
}

// MonthlyReport collects the aggregations for a month.
func (e *Engine) MonthlyReport(ctx context.Context, year, m int) (Report, error) {
	month, err := checkedMonth(year, m)
	if err != nil {
		return Report{}, err
	}

	aggregation, err := e.MonthlyAggregation(ctx, year, m)
	if err != nil {
		return Report{}, err
	}

	income, err := e.MonthlyIncome(ctx, year, m)
	if err != nil {
		return Report{}, err
	}

	deductions, err := e.MonthlyDeductions(ctx, year, m)
	if err != nil {
		return Report{}, err
	}

	percentages := make(map[string]decimal.Decimal, len(aggregation)-1)
	for name := range aggregation {
		if name == TotalKey {
			continue
		}
		percentages[name] = percentage(aggregation, name).Round(2)
	}

	netIncome := income.Sub(deductions)

	return Report{
		Month:       month,
		Expenses:    aggregation,
		Percentages: percentages,
		Income:      income,
		Deductions:  deductions,
		NetIncome:   netIncome,
		Balance:     netIncome.Sub(aggregation[TotalKey]),
	}, nil
}

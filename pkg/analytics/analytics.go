// Package analytics aggregates expenses and incomes for reports.
//
// All operations treat missing categories and empty results as zero values.
// Only database faults are returned as errors.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/OuterCloud/family-account-book/internal/types"
	"github.com/OuterCloud/family-account-book/pkg/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TotalKey is the key of the sum of all categories in a monthly aggregation.
const TotalKey = "total"

const dateLayout = "2006-01-02"

var ErrInvalidMonth = errors.New("the month must be between 1 and 12")

// Engine computes aggregations on the transactions in a database.
type Engine struct {
	db *gorm.DB
}

// New returns an Engine for the database.
func New(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// MonthAmount is the amount for a single month.
type MonthAmount struct {
	Year   int             `json:"year" example:"2023"`
	Month  int             `json:"month" example:"10"`
	Amount decimal.Decimal `json:"amount" example:"150"`
}

func checkedMonth(year, m int) (types.Month, error) {
	month, err := types.NewMonthChecked(year, m)
	if err != nil {
		return types.Month{}, fmt.Errorf("%w, got %d", ErrInvalidMonth, m)
	}
	return month, nil
}

// window restricts the query to transactions dated in [start, end).
func window(db *gorm.DB, start, end time.Time) *gorm.DB {
	return db.Where("transactions.date >= ? AND transactions.date < ?", start.Format(dateLayout), end.Format(dateLayout))
}

// sum returns the sum of the amount column of the query. No rows sum up to zero.
//
// SQLite sums decimals as floating point numbers, the result is rounded to
// the scale of the column.
func sum(query *gorm.DB, column string) (decimal.Decimal, error) {
	var result struct {
		Total decimal.NullDecimal
	}

	err := query.Select(fmt.Sprintf("SUM(%s) AS total", column)).Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}

	if !result.Total.Valid {
		return decimal.Zero, nil
	}

	return result.Total.Decimal.Round(models.AmountScale), nil
}

func (e *Engine) expenses(ctx context.Context) *gorm.DB {
	return e.db.WithContext(ctx).Model(&models.Transaction{}).Where("transactions.type = ?", models.TransactionTypeExpense)
}

// categoryByName returns the category with the exact name. The boolean is
// false if there is none.
func (e *Engine) categoryByName(ctx context.Context, name string) (models.Category, bool, error) {
	var category models.Category
	result := e.db.WithContext(ctx).Where("name = ?", name).Limit(1).Find(&category)
	return category, result.RowsAffected > 0, result.Error
}

// MonthlyAggregation sums the expenses of the month per category name.
//
// The result always contains TotalKey, the sum of all categories. Expenses
// without a category are neither part of a category nor of the total.
func (e *Engine) MonthlyAggregation(ctx context.Context, year, m int) (map[string]decimal.Decimal, error) {
	month, err := checkedMonth(year, m)
	if err != nil {
		return nil, err
	}

	start, end := month.Window()

	var groups []struct {
		CategoryID uuid.UUID
		Total      decimal.NullDecimal
	}

	err = window(e.expenses(ctx), start, end).
		Where("transactions.category_id IS NOT NULL").
		Select("transactions.category_id AS category_id, SUM(transactions.amount) AS total").
		Group("transactions.category_id").
		Scan(&groups).Error
	if err != nil {
		return nil, err
	}

	result := map[string]decimal.Decimal{TotalKey: decimal.Zero}
	if len(groups) == 0 {
		return result, nil
	}

	ids := make([]uuid.UUID, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.CategoryID)
	}

	var categories []models.Category
	err = e.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	total := decimal.Zero
	for _, g := range groups {
		name, ok := names[g.CategoryID]
		if !ok || !g.Total.Valid {
			continue
		}

		amount := g.Total.Decimal.Round(models.AmountScale)
		result[name] = result[name].Add(amount)
		total = total.Add(amount)
	}

	result[TotalKey] = total
	return result, nil
}

// CategorySumInRange sums the expenses of the category between start and
// end, both days included. The time of day is ignored.
func (e *Engine) CategorySumInRange(ctx context.Context, categoryName string, start, end time.Time) (decimal.Decimal, error) {
	category, ok, err := e.categoryByName(ctx, categoryName)
	if err != nil || !ok {
		return decimal.Zero, err
	}

	return e.sumInRange(ctx, []uuid.UUID{category.ID}, start, end)
}

// CategorySubtreeSumInRange sums the expenses of the category and all of its
// descendants between start and end, both days included.
func (e *Engine) CategorySubtreeSumInRange(ctx context.Context, categoryName string, start, end time.Time) (decimal.Decimal, error) {
	category, ok, err := e.categoryByName(ctx, categoryName)
	if err != nil || !ok {
		return decimal.Zero, err
	}

	tree, err := models.LoadCategoryTree(e.db.WithContext(ctx))
	if err != nil {
		return decimal.Zero, err
	}

	return e.sumInRange(ctx, tree.Subtree(category.ID), start, end)
}

func (e *Engine) sumInRange(ctx context.Context, categoryIDs []uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	until := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	query := window(e.expenses(ctx), from, until).Where("transactions.category_id IN ?", categoryIDs)
	return sum(query, "transactions.amount")
}

// PerMonthSeriesForCategory returns the expenses of the category for every
// month from the start month through the end month, in chronological order.
//
// For an unknown category or an end before the start, the series is empty.
func (e *Engine) PerMonthSeriesForCategory(ctx context.Context, categoryName string, startYear, startMonth, endYear, endMonth int) ([]MonthAmount, error) {
	first, err := checkedMonth(startYear, startMonth)
	if err != nil {
		return nil, err
	}

	last, err := checkedMonth(endYear, endMonth)
	if err != nil {
		return nil, err
	}

	series := make([]MonthAmount, 0, first.MonthsUntil(last))

	category, ok, err := e.categoryByName(ctx, categoryName)
	if err != nil || !ok {
		return series, err
	}

	for current := first; !current.After(last); current = current.AddDate(0, 1) {
		start, end := current.Window()

		amount, err := sum(window(e.expenses(ctx), start, end).Where("transactions.category_id = ?", category.ID), "transactions.amount")
		if err != nil {
			return nil, err
		}

		series = append(series, MonthAmount{
			Year:   current.Year(),
			Month:  int(current.Month()),
			Amount: amount,
		})
	}

	return series, nil
}

// CategoryPercentage is the share of the category in the expenses of the
// month, between 0 and 100.
func (e *Engine) CategoryPercentage(ctx context.Context, categoryName string, year, m int) (decimal.Decimal, error) {
	aggregation, err := e.MonthlyAggregation(ctx, year, m)
	if err != nil {
		return decimal.Zero, err
	}

	return percentage(aggregation, categoryName), nil
}

func percentage(aggregation map[string]decimal.Decimal, categoryName string) decimal.Decimal {
	total := aggregation[TotalKey]
	amount, ok := aggregation[categoryName]
	if !ok || total.IsZero() || categoryName == TotalKey {
		return decimal.Zero
	}

	return amount.Div(total).Mul(decimal.NewFromInt(100))
}

// MonthlyIncome sums the gross amount of all incomes in the month.
func (e *Engine) MonthlyIncome(ctx context.Context, year, m int) (decimal.Decimal, error) {
	month, err := checkedMonth(year, m)
	if err != nil {
		return decimal.Zero, err
	}

	start, end := month.Window()
	query := e.db.WithContext(ctx).Model(&models.Transaction{}).Where("transactions.type = ?", models.TransactionTypeIncome)
	return sum(window(query, start, end), "transactions.amount")
}

// MonthlyDeductions sums the deductions of all incomes in the month.
func (e *Engine) MonthlyDeductions(ctx context.Context, year, m int) (decimal.Decimal, error) {
	month, err := checkedMonth(year, m)
	if err != nil {
		return decimal.Zero, err
	}

	start, end := month.Window()
	query := e.db.WithContext(ctx).Model(&models.IncomeDetail{}).
		Joins("JOIN transactions ON transactions.id = income_details.transaction_id").
		Where("transactions.type = ?", models.TransactionTypeIncome)
	return sum(window(query, start, end), "income_details.amount")
}

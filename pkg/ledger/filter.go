package ledger

import (
	"context"
	"time"

	"github.com/OuterCloud/family-account-book/pkg/models"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"gorm.io/gorm"
)

// TransactionFilter selects transactions. Zero values do not filter.
type TransactionFilter struct {
	From         time.Time              // First day to include
	Until        time.Time              // Last day to include
	Type         models.TransactionType // Type of the transaction
	CategoryName string                 // Exact name of the category. Ignored if no category has the name
	PersonName   string                 // Exact name of the person. Ignored if no person has the name
	Description  string                 // Glob pattern for the description, "*" matches any string
	Offset       int
	Limit        int // Maximum number of transactions. 0 means no limit
}

// ListTransactions returns all transactions matching the filter, newest first.
func (s *Service) ListTransactions(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error) {
	db := s.db.WithContext(ctx)

	query := db.Preload("IncomeDetails").Order("transactions.date DESC, transactions.created_at DESC")

	if !filter.From.IsZero() {
		query = query.Where("transactions.date >= ?", filter.From.Format(DateLayout))
	}

	if !filter.Until.IsZero() {
		query = query.Where("transactions.date < ?", filter.Until.AddDate(0, 0, 1).Format(DateLayout))
	}

	if filter.Type != "" {
		query = query.Where("transactions.type = ?", filter.Type)
	}

	if filter.CategoryName != "" {
		id, err := idByName[models.Category](db, filter.CategoryName)
		if err != nil {
			return nil, err
		}

		if id != uuid.Nil {
			query = query.Where("transactions.category_id = ?", id)
		}
	}

	if filter.PersonName != "" {
		id, err := idByName[models.Person](db, filter.PersonName)
		if err != nil {
			return nil, err
		}

		if id != uuid.Nil {
			query = query.Where("transactions.person_id = ?", id)
		}
	}

	// Glob matching is done after loading, pagination must follow it
	if filter.Description == "" {
		if filter.Offset > 0 {
			query = query.Offset(filter.Offset)
		}
		if filter.Limit > 0 {
			query = query.Limit(filter.Limit)
		}
	}

	transactions := make([]models.Transaction, 0)
	err := query.Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	if filter.Description == "" {
		return transactions, nil
	}

	matching := make([]models.Transaction, 0)
	for _, t := range transactions {
		if glob.Glob(filter.Description, t.Description) {
			matching = append(matching, t)
		}
	}

	return paginate(matching, filter.Offset, filter.Limit), nil
}

func paginate[T any](s []T, offset, limit int) []T {
	if offset >= len(s) {
		return s[:0]
	}

	if offset > 0 {
		s = s[offset:]
	}

	if limit > 0 && limit < len(s) {
		s = s[:limit]
	}

	return s
}

// idByName returns the ID of the resource with the exact name, or the Nil
// UUID if there is none.
func idByName[T any](db *gorm.DB, name string) (uuid.UUID, error) {
	var ids []uuid.UUID
	err := db.Model(new(T)).Where("name = ?", name).Limit(1).Pluck("id", &ids).Error
	if err != nil || len(ids) == 0 {
		return uuid.Nil, err
	}

	return ids[0], nil
}

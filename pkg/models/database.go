package models

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/glebarez/go-sqlite"
	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ContextKey string

// ContextURL is the gin context key the API base URL is stored under.
const ContextURL ContextKey = "fab-backend-url"

// MySQL error numbers used for error translation.
const (
	mysqlDuplicateEntry         = 1062
	mysqlForeignKeyParentFailed = 1452
)

// Migrate migrates all models to the schema defined in the code.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(Person{}, Category{}, Transaction{}, IncomeDetail{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	for _, statement := range collationStatements(db.Dialector.Name()) {
		err = db.Exec(statement).Error
		if err != nil {
			return fmt.Errorf("error when setting the collation of name columns: %w", err)
		}
	}

	return nil
}

// collationStatements returns the statements that make unique names case
// sensitive. MySQL compares strings case insensitively with its default
// collation, SQLite does not.
func collationStatements(dialect string) []string {
	if dialect != "mysql" {
		return nil
	}

	statements := make([]string, 0, 2)
	for _, table := range []string{"categories", "persons"} {
		statements = append(statements, fmt.Sprintf("ALTER TABLE `%s` MODIFY `name` VARCHAR(100) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL", table))
	}

	return statements
}

// RegisterCallbacks registers the callbacks that translate database errors
// into the errors of this package.
func RegisterCallbacks(db *gorm.DB) error {
	callbacks := []struct {
		processor interface {
			Register(name string, fn func(*gorm.DB)) error
		}
		name string
		fn   func(*gorm.DB)
	}{
		{db.Callback().Query().After("*"), "account_book:after_query", queryCallback},
		{db.Callback().Query().After("*"), "account_book:after_query_general", generalCallback},
		{db.Callback().Create().After("*"), "account_book:after_create", createUpdateCallback},
		{db.Callback().Create().After("*"), "account_book:after_create_general", generalCallback},
		{db.Callback().Update().After("*"), "account_book:after_update", createUpdateCallback},
		{db.Callback().Update().After("*"), "account_book:after_update_general", generalCallback},
		{db.Callback().Delete().After("*"), "account_book:after_delete", createUpdateCallback},
		{db.Callback().Delete().After("*"), "account_book:after_delete_general", generalCallback},
		{db.Callback().Row().After("*"), "account_book:after_row_general", generalCallback},
		{db.Callback().Raw().After("*"), "account_book:after_raw_general", generalCallback},
	}

	for _, c := range callbacks {
		if err := c.processor.Register(c.name, c.fn); err != nil {
			return fmt.Errorf("registering callback %s: %w", c.name, err)
		}
	}

	return nil
}

var pluralSuffix = regexp.MustCompile("ies$")

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		// Use the table name as information about the type of resource
		name := strings.ReplaceAll(db.Statement.Table, "_", " ")
		name = pluralSuffix.ReplaceAllString(name, "y")
		name = strings.TrimSuffix(name, "s")

		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
	}
}

// createUpdateCallback inspects errors returned by the database for create,
// update and delete calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	msg := db.Error.Error()

	var mysqlErr *mysql.MySQLError
	isMySQL := errors.As(db.Error, &mysqlErr)

	switch {
	case strings.Contains(msg, "UNIQUE constraint failed: categories.name"),
		isMySQL && mysqlErr.Number == mysqlDuplicateEntry && strings.Contains(msg, "categories."):
		db.Error = ErrCategoryNameNotUnique

	case strings.Contains(msg, "UNIQUE constraint failed: persons.name"),
		isMySQL && mysqlErr.Number == mysqlDuplicateEntry && strings.Contains(msg, "persons."):
		db.Error = ErrPersonNameNotUnique

	case strings.Contains(msg, "FOREIGN KEY constraint failed"),
		isMySQL && mysqlErr.Number == mysqlForeignKeyParentFailed:
		db.Error = ErrReferenceNotFound
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	db.Error = translateError(db.Error, db.Statement.Table)
}

// TranslateError replaces database faults that happen outside of a statement,
// e.g. when beginning or committing a transaction, with ErrGeneral.
func TranslateError(err error) error {
	return translateError(err, "")
}

func translateError(err error, table string) error {
	if err == nil {
		return nil
	}

	var sqliteErr *sqlite.Error
	var mysqlErr *mysql.MySQLError

	// "sql: database is closed" is hard-coded in the sql module
	if err.Error() == "sql: database is closed" || errors.Is(err, sql.ErrConnDone) || errors.As(err, &sqliteErr) || errors.As(err, &mysqlErr) {
		log.Error().Str("table", table).Msgf("%T: %v", err, err.Error())
		return ErrGeneral
	}

	return err
}

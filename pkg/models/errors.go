package models

import (
	"errors"
)

var (
	ErrGeneral           = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound  = errors.New("there is no")
	ErrReferenceNotFound = errors.New("a resource referenced in your request does not exist")
)

// Validation errors
var (
	ErrNameEmpty              = errors.New("the name must not be empty")
	ErrCategoryNameNotUnique  = errors.New("the category name must be unique")
	ErrPersonNameNotUnique    = errors.New("the person name must be unique")
	ErrCategoryCycle          = errors.New("a category cannot be its own parent or the parent of one of its ancestors")
	ErrTransactionTypeInvalid = errors.New("the transaction type must be 'income' or 'expense'")
	ErrDeductionItemEmpty     = errors.New("the item name of an income deduction must not be empty")
	ErrDeductionsOnExpense    = errors.New("only income transactions can have deductions")
)

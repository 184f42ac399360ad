package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Validation errors. These are rejected before anything is persisted.
var (
	ErrAccountNameNotUnique   = errors.New("the account name must be unique for the user")
	ErrCategoryNameNotUnique  = errors.New("the category name must be unique for the user")
	ErrUserEmailNotUnique     = errors.New("a user with this email address already exists")
	ErrAccountTypeInvalid     = errors.New("the account type is invalid")
	ErrTransactionTypeInvalid = errors.New("the transaction type is invalid")
	ErrAmountNotPositive      = errors.New("the amount must be positive")
	ErrCategoryColorInvalid   = errors.New("the color must be a hex color code like #2e86de")
)

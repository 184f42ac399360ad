package models

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultCategoryColor is used when a category is created without a color.
const DefaultCategoryColor = "#007bff"

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Category groups transactions, e.g. "Groceries" or "Rent".
//
// Categories never own transactions: deleting a category detaches its
// transactions instead of deleting them.
type Category struct {
	DefaultModel
	User   User      `json:"-"`
	UserID uuid.UUID `gorm:"uniqueIndex:category_user_id_name"`
	Name   string    `gorm:"uniqueIndex:category_user_id_name"`
	Note   string
	Color  string
}

// BeforeSave defaults the color and trims whitespace from all strings.
func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)
	c.Color = strings.TrimSpace(c.Color)

	if c.Color == "" {
		c.Color = DefaultCategoryColor
	}

	if !hexColor.MatchString(c.Color) {
		return ErrCategoryColorInvalid
	}

	return nil
}

// BeforeUpdate validates the new color before committing an update.
//
// BeforeSave only sees the already persisted values on updates, the
// changes are in the statement's destination.
func (c *Category) BeforeUpdate(tx *gorm.DB) error {
	toSave, ok := tx.Statement.Dest.(Category)
	if !ok {
		return nil
	}

	if tx.Statement.Changed("Color") {
		color := strings.TrimSpace(toSave.Color)
		if color == "" {
			color = DefaultCategoryColor
		}

		if !hexColor.MatchString(color) {
			return ErrCategoryColorInvalid
		}

		tx.Statement.SetColumn("Color", color)
	}

	return nil
}

// DeleteCategory removes the category and detaches its transactions.
//
// The transactions themselves are kept, their category reference becomes
// absent. Balances are unaffected since no amounts change.
func DeleteCategory(db *gorm.DB, category Category) error {
	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&Transaction{}).
			Where("category_id = ?", category.ID).
			Session(&gorm.Session{SkipHooks: true}).
			Update("category_id", nil).Error
		if err != nil {
			return err
		}

		return tx.Delete(&category).Error
	})
}

// Transactions returns all transactions that reference this category.
func (c Category) Transactions(db *gorm.DB) ([]Transaction, error) {
	var transactions []Transaction

	err := db.Where("category_id = ?", c.ID).Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

// TotalSpent sums the amounts of all expense transactions referencing
// this category.
func (c Category) TotalSpent(db *gorm.DB) (decimal.Decimal, error) {
	var transactions []Transaction

	err := db.
		Where("category_id = ?", c.ID).
		Where("type = ?", TransactionTypeExpense).
		Find(&transactions).Error
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, t := range transactions {
		total = total.Add(t.Amount)
	}

	return total, nil
}

// TransactionCount returns the number of transactions referencing this
// category.
func (c Category) TransactionCount(db *gorm.DB) (int64, error) {
	var count int64

	err := db.Model(&Transaction{}).Where("category_id = ?", c.ID).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

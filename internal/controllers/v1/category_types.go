package v1

import (
	"github.com/pocketledger/backend/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	Name  string `json:"name" example:"Groceries" default:""`                          // Name of the category
	Note  string `json:"note" example:"Everything that goes in the fridge" default:""` // Notes about the category
	Color string `json:"color" example:"#2e86de" default:"#007bff"`                    // Hex color for the category
}

func (editable CategoryEditable) model(user models.User) models.Category {
	return models.Category{
		UserID: user.ID,
		Name:   editable.Name,
		Note:   editable.Note,
		Color:  editable.Color,
	}
}

type Category struct {
	models.DefaultModel
	CategoryEditable

	// These fields are computed
	TransactionCount int64           `json:"transactionCount" example:"14"` // Number of transactions in this category
	TotalSpent       decimal.Decimal `json:"totalSpent" example:"184.25"`   // Sum of all expense transactions in this category
}

func newCategory(db *gorm.DB, model models.Category) (Category, error) {
	count, err := model.TransactionCount(db)
	if err != nil {
		return Category{}, err
	}

	spent, err := model.TotalSpent(db)
	if err != nil {
		return Category{}, err
	}

	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			Name:  model.Name,
			Note:  model.Note,
			Color: model.Color,
		},
		TransactionCount: count,
		TotalSpent:       spent,
	}, nil
}

type CategoryListResponse struct {
	Data       []Category  `json:"data"`                                                          // List of categories
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                          // Data for the category
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Note   string `form:"note" filterField:"false"`   // By note
	Search string `form:"search" filterField:"false"` // By string in name or note
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first category returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of categories to return. Defaults to 50.
}

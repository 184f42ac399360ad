package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func RegisterCategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCategoryList)
		r.GET("", GetCategories)
		r.POST("", CreateCategory)
	}

	// Category with ID
	{
		r.OPTIONS("/:id", OptionsCategoryDetail)
		r.GET("/:id", GetCategory)
		r.GET("/:id/transactions", GetCategoryTransactions)
		r.PATCH("/:id", UpdateCategory)
		r.DELETE("/:id", DeleteCategory)
	}
}

// getCategory loads the category if it exists and belongs to the
// authenticated user. A foreign category is indistinguishable from a
// missing one.
func getCategory(c *gin.Context) (models.Category, error) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return models.Category{}, err
	}

	var category models.Category
	err = models.DB.First(&category, "id = ? AND user_id = ?", uri.ID.UUID, currentUser(c).ID).Error
	if err != nil {
		return models.Category{}, err
	}

	return category, nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Router			/v1/categories [options]
func OptionsCategoryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/categories/{id} [options]
func OptionsCategoryDetail(c *gin.Context) {
	_, err := getCategory(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create category
// @Description	Creates a new category
// @Tags			Categories
// @Accept			json
// @Produce		json
// @Success		201			{object}	CategoryResponse
// @Failure		400			{object}	CategoryResponse
// @Failure		500			{object}	CategoryResponse
// @Param			category	body		CategoryEditable	true	"Category"
// @Router			/v1/categories [post]
func CreateCategory(c *gin.Context) {
	var editable CategoryEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &s})
		return
	}

	category := editable.model(currentUser(c))

	err = models.DB.Create(&category).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &s})
		return
	}

	data, err := newCategory(models.DB, category)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, CategoryResponse{Data: &data})
}

// @Summary		Get categories
// @Description	Returns a list of the user's categories
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryListResponse
// @Failure		400	{object}	CategoryListResponse
// @Failure		500	{object}	CategoryListResponse
// @Router			/v1/categories [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			note	query	string	false	"Filter by note"
// @Param			search	query	string	false	"Search for this text in name and note"
// @Param			offset	query	uint	false	"The offset of the first category returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of categories to return. Defaults to 50."
func GetCategories(c *gin.Context) {
	var filter CategoryQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("name ASC").
		Where("user_id = ?", currentUser(c).ID)

	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 categories and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var categories []models.Category
	err := q.Find(&categories).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryListResponse{Error: &s})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryListResponse{Error: &s})
		return
	}

	data := make([]Category, 0)
	for _, category := range categories {
		apiResource, err := newCategory(models.DB, category)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), CategoryListResponse{Error: &s})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, CategoryListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get category
// @Description	Returns a specific category
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryResponse
// @Failure		400	{object}	CategoryResponse
// @Failure		404	{object}	CategoryResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/categories/{id} [get]
func GetCategory(c *gin.Context) {
	category, err := getCategory(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &s})
		return
	}

	data, err := newCategory(models.DB, category)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: &data})
}

// @Summary		Get category transactions
// @Description	Returns the transactions booked in a specific category
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		400	{object}	TransactionListResponse
// @Failure		404	{object}	TransactionListResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/categories/{id}/transactions [get]
func GetCategoryTransactions(c *gin.Context) {
	category, err := getCategory(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &s})
		return
	}

	transactions, err := category.Transactions(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &s})
		return
	}

	data := make([]Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		data = append(data, newTransaction(transaction))
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: data})
}

// @Summary		Update category
// @Description	Update an existing category. Only values to be updated need to be specified.
// @Tags			Categories
// @Accept			json
// @Produce		json
// @Success		200			{object}	CategoryResponse
// @Failure		400			{object}	CategoryResponse
// @Failure		404			{object}	CategoryResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			category	body		CategoryEditable	true	"Category"
// @Router			/v1/categories/{id} [patch]
func UpdateCategory(c *gin.Context) {
	category, err := getCategory(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &s})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, CategoryEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &s})
		return
	}

	var data CategoryEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &s})
		return
	}

	err = models.DB.Model(&category).Select("", updateFields...).Updates(data.model(currentUser(c))).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &s})
		return
	}

	r, err := newCategory(models.DB, category)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: &r})
}

// @Summary		Delete category
// @Description	Deletes a category. Its transactions are kept and become uncategorized.
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/categories/{id} [delete]
func DeleteCategory(c *gin.Context) {
	category, err := getCategory(c)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DeleteCategory(models.DB, category)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

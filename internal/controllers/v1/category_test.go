package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/pocketledger/backend/internal/controllers/v1"
	"github.com/pocketledger/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCategoriesCreate() {
	token := accessToken(suite.T())

	c := createTestCategory(suite.T(), token, v1.CategoryEditable{Name: "Groceries", Note: "Everything that goes in the fridge"})

	assert.Equal(suite.T(), "Groceries", c.Data.Name)
	assert.Equal(suite.T(), "#007bff", c.Data.Color, "Color must default when unset")
	assert.Equal(suite.T(), int64(0), c.Data.TransactionCount)
	assert.True(suite.T(), c.Data.TotalSpent.IsZero())

	colored := createTestCategory(suite.T(), token, v1.CategoryEditable{Name: "Rent", Color: "#2e86de"})
	assert.Equal(suite.T(), "#2e86de", colored.Data.Color)
}

func (suite *TestSuiteStandard) TestCategoriesCreateFails() {
	token := accessToken(suite.T())

	_ = createTestCategory(suite.T(), token, v1.CategoryEditable{Name: "Unique Category Name"})

	tests := []struct {
		name   string
		body   any
		status int
		err    string
	}{
		{"Broken Body", `{ "note": 2 }`, http.StatusBadRequest, "json: cannot unmarshal number into Go struct field CategoryEditable.note of type string"},
		{"No body", "", http.StatusBadRequest, "the request body must not be empty"},
		{"Duplicate name", v1.CategoryEditable{Name: "Unique Category Name"}, http.StatusBadRequest, "the category name must be unique for the user"},
		{"Invalid color", v1.CategoryEditable{Name: "Badly colored", Color: "red"}, http.StatusBadRequest, "the color must be a hex color code like #2e86de"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/categories", tt.body, bearer(token))
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.CategoryResponse
			test.DecodeResponse(t, &r, &response)
			require.NotNil(t, response.Error)
			assert.Equal(t, tt.err, *response.Error)
		})
	}
}

// TestCategoriesDuplicateNamePerUser verifies that the name uniqueness
// is scoped to the user, not global.
func (suite *TestSuiteStandard) TestCategoriesDuplicateNamePerUser() {
	first := accessToken(suite.T())
	second := accessToken(suite.T())

	_ = createTestCategory(suite.T(), first, v1.CategoryEditable{Name: "Groceries"})
	_ = createTestCategory(suite.T(), second, v1.CategoryEditable{Name: "Groceries"})
}

func (suite *TestSuiteStandard) TestCategoriesGetSingle() {
	token := accessToken(suite.T())
	c := createTestCategory(suite.T(), token, v1.CategoryEditable{})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing Category", c.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET No Category with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodGet},
		{"PATCH Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodPatch},
		{"DELETE Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/categories/%s", tt.id), "", bearer(token))
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestCategoriesUserScoping verifies that the categories of another user
// are indistinguishable from missing ones.
func (suite *TestSuiteStandard) TestCategoriesUserScoping() {
	owner := accessToken(suite.T())
	stranger := accessToken(suite.T())

	c := createTestCategory(suite.T(), owner, v1.CategoryEditable{Name: "Private"})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/categories/%s", c.Data.ID), "", bearer(stranger))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	var response v1.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Error)
	assert.Equal(suite.T(), "there is no category matching your query", *response.Error)

	// The list of the other user must be empty, too
	var list v1.CategoryListResponse
	l := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/categories", "", bearer(stranger))
	test.AssertHTTPStatus(suite.T(), &l, http.StatusOK)
	test.DecodeResponse(suite.T(), &l, &list)
	assert.Len(suite.T(), list.Data, 0)
}

func (suite *TestSuiteStandard) TestCategoriesGetFilter() {
	token := accessToken(suite.T())

	_ = createTestCategory(suite.T(), token, v1.CategoryEditable{
		Name: "Category Name",
		Note: "A note for this category",
	})

	_ = createTestCategory(suite.T(), token, v1.CategoryEditable{
		Name: "Groceries",
		Note: "For Groceries",
	})

	_ = createTestCategory(suite.T(), token, v1.CategoryEditable{
		Name: "Daily stuff",
		Note: "Groceries, Drug Store, …",
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Empty Note", "note=", 0},
		{"Empty Name", "name=", 0},
		{"Name & Note", "name=Category Name&note=A note for this category", 1},
		{"Fuzzy name", "name=e", 2},
		{"Fuzzy note", "note=Groceries", 2},
		{"Search for 'groceries'", "search=groceries", 2},
		{"Search for 'FOR'", "search=FOR", 2},
		{"Offset 2", "offset=2", 1},
		{"Offset 0, limit 2", "offset=0&limit=2", 2},
		{"Limit 4", "limit=4", 3},
		{"Limit 0", "limit=0", 0},
		{"Limit -1", "limit=-1", 3},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var re v1.CategoryListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/categories?%s", tt.query), "", bearer(token))
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			test.DecodeResponse(t, &r, &re)

			assert.Equal(t, tt.len, len(re.Data), "Request ID: %s", r.Result().Header.Get("x-request-id"))
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesUpdate() {
	token := accessToken(suite.T())
	c := createTestCategory(suite.T(), token, v1.CategoryEditable{Name: "Initial name", Note: "A note"})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/categories/%s", c.Data.ID), map[string]any{
		"name": "Updated name",
	}, bearer(token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &updated)

	assert.Equal(suite.T(), "Updated name", updated.Data.Name)
	assert.Equal(suite.T(), "A note", updated.Data.Note, "Fields not in the body must be unchanged")
}

func (suite *TestSuiteStandard) TestCategoriesUpdateFails() {
	token := accessToken(suite.T())
	c := createTestCategory(suite.T(), token, v1.CategoryEditable{})

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Invalid type", `{ "name": 2 }`, http.StatusBadRequest},
		{"Broken JSON", `{ "name": 2" }`, http.StatusBadRequest},
		{"Invalid color", `{ "color": "blue" }`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, fmt.Sprintf("http://example.com/v1/categories/%s", c.Data.ID), tt.body, bearer(token))
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestCategoriesDelete verifies that deleting a category detaches its
// transactions instead of deleting them.
func (suite *TestSuiteStandard) TestCategoriesDelete() {
	token := accessToken(suite.T())

	category := createTestCategory(suite.T(), token, v1.CategoryEditable{Name: "Doomed"})
	id := category.Data.ID

	transaction := createTestTransaction(suite.T(), token, v1.TransactionEditable{
		CategoryID: &id,
		Amount:     decimal.NewFromFloat(14.50),
	})
	require.NotNil(suite.T(), transaction.Data.CategoryID)

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/categories/%s", id), "", bearer(token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	// The category is gone
	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/categories/%s", id), "", bearer(token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	// The transaction is kept, but no longer categorized
	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions/%s", transaction.Data.ID), "", bearer(token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var kept v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &kept)
	assert.Nil(suite.T(), kept.Data.CategoryID)
}

func (suite *TestSuiteStandard) TestCategoriesGetTransactions() {
	token := accessToken(suite.T())

	category := createTestCategory(suite.T(), token, v1.CategoryEditable{Name: "Groceries"})
	id := category.Data.ID

	_ = createTestTransaction(suite.T(), token, v1.TransactionEditable{CategoryID: &id, Amount: decimal.NewFromFloat(10.00)})
	_ = createTestTransaction(suite.T(), token, v1.TransactionEditable{CategoryID: &id, Amount: decimal.NewFromFloat(20.00)})
	_ = createTestTransaction(suite.T(), token, v1.TransactionEditable{Amount: decimal.NewFromFloat(30.00)})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/categories/%s/transactions", id), "", bearer(token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 2)

	// The computed fields reflect the transactions
	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/categories/%s", id), "", bearer(token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var single v1.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &single)
	assert.Equal(suite.T(), int64(2), single.Data.TransactionCount)
	assert.True(suite.T(), single.Data.TotalSpent.Equal(decimal.NewFromFloat(30.00)), "TotalSpent is %s", single.Data.TotalSpent)
}

// TestCategoriesOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestCategoriesOptions() {
	token := accessToken(suite.T())

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No Category with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Category exists", createTestCategory(suite.T(), token, v1.CategoryEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/categories", tt.id)
			r := test.Request(t, http.MethodOptions, path, "", bearer(token))
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

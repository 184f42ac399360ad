package v1

import (
	"strings"

	"github.com/pocketledger/backend/internal/auth"
	"github.com/pocketledger/backend/internal/models"
)

// UserEditable represents all user configurable parameters
type UserEditable struct {
	Email     string `json:"email" example:"jane@example.com" default:""`
	Password  string `json:"password" example:"correct horse battery staple" default:""`
	FirstName string `json:"firstName" example:"Jane" default:""`
	LastName  string `json:"lastName" example:"Doe" default:""`
	Phone     string `json:"phone" example:"+49 170 1234567" default:""`
}

func (editable UserEditable) model() models.User {
	return models.User{
		Email:     editable.Email,
		FirstName: editable.FirstName,
		LastName:  editable.LastName,
		Phone:     editable.Phone,
	}
}

type User struct {
	models.DefaultModel
	Email     string `json:"email" example:"jane@example.com"`
	FirstName string `json:"firstName" example:"Jane"`
	LastName  string `json:"lastName" example:"Doe"`
	Phone     string `json:"phone" example:"+49 170 1234567"`
}

func newUser(model models.User) User {
	return User{
		DefaultModel: model.DefaultModel,
		Email:        model.Email,
		FirstName:    model.FirstName,
		LastName:     model.LastName,
		Phone:        model.Phone,
	}
}

type LoginRequest struct {
	Email    string `json:"email" example:"jane@example.com"`
	Password string `json:"password" example:"correct horse battery staple"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh" example:"eyJhbGciOiJIUzI1NiIs..."`
}

// AuthResponse is returned by all endpoints that issue tokens.
type AuthResponse struct {
	User   *User           `json:"user"`                                               // The user the tokens belong to
	Tokens *auth.TokenPair `json:"tokens"`                                             // Access and refresh token
	Error  *string         `json:"error" example:"the email or password is incorrect"` // The error, if any occurred
}

type UserResponse struct {
	Data  *User   `json:"data"`                                 // Data for the user
	Error *string `json:"error" example:"the token is invalid"` // The error, if any occurred
}

// normalizeEmail matches the normalization the User model applies
// before saving.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

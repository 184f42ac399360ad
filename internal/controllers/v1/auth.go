package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/auth"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
)

// RegisterAuthRoutes registers the authentication routes with the
// RouterGroup that is passed.
func RegisterAuthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/register", httputil.OptionsPost)
	r.POST("/register", Register)

	r.OPTIONS("/login", httputil.OptionsPost)
	r.POST("/login", Login)

	r.OPTIONS("/refresh", httputil.OptionsPost)
	r.POST("/refresh", Refresh)

	r.OPTIONS("/me", httputil.OptionsGet)
	r.GET("/me", Authenticate(), GetMe)
}

// @Summary		Register
// @Description	Creates a new user and returns a token pair for it
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		201		{object}	AuthResponse
// @Failure		400		{object}	AuthResponse
// @Failure		500		{object}	AuthResponse
// @Param			user	body		UserEditable	true	"User"
// @Router			/v1/auth/register [post]
func Register(c *gin.Context) {
	var editable UserEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AuthResponse{Error: &s})
		return
	}

	hash, err := auth.HashPassword(editable.Password)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AuthResponse{Error: &s})
		return
	}

	user := editable.model()
	user.PasswordHash = hash

	err = models.DB.Create(&user).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AuthResponse{Error: &s})
		return
	}

	tokens, err := auth.NewPair(user.ID)
	if err != nil {
		s := models.ErrGeneral.Error()
		c.JSON(http.StatusInternalServerError, AuthResponse{Error: &s})
		return
	}

	data := newUser(user)
	c.JSON(http.StatusCreated, AuthResponse{User: &data, Tokens: &tokens})
}

// @Summary		Login
// @Description	Verifies the credentials and returns a token pair
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200			{object}	AuthResponse
// @Failure		400			{object}	AuthResponse
// @Failure		401			{object}	AuthResponse
// @Param			credentials	body		LoginRequest	true	"Credentials"
// @Router			/v1/auth/login [post]
func Login(c *gin.Context) {
	var request LoginRequest

	err := httputil.BindData(c, &request)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AuthResponse{Error: &s})
		return
	}

	var user models.User
	err = models.DB.First(&user, "email = ?", normalizeEmail(request.Email)).Error
	if err != nil {
		// An unknown email and a wrong password are indistinguishable
		if errors.Is(err, models.ErrResourceNotFound) {
			err = auth.ErrCredentialsWrong
		}
		s := err.Error()
		c.JSON(status(err), AuthResponse{Error: &s})
		return
	}

	err = auth.CheckPassword(request.Password, user.PasswordHash)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AuthResponse{Error: &s})
		return
	}

	tokens, err := auth.NewPair(user.ID)
	if err != nil {
		s := models.ErrGeneral.Error()
		c.JSON(http.StatusInternalServerError, AuthResponse{Error: &s})
		return
	}

	data := newUser(user)
	c.JSON(http.StatusOK, AuthResponse{User: &data, Tokens: &tokens})
}

// @Summary		Refresh tokens
// @Description	Exchanges a valid refresh token for a new token pair
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200		{object}	AuthResponse
// @Failure		400		{object}	AuthResponse
// @Failure		401		{object}	AuthResponse
// @Param			token	body		RefreshRequest	true	"Refresh token"
// @Router			/v1/auth/refresh [post]
func Refresh(c *gin.Context) {
	var request RefreshRequest

	err := httputil.BindData(c, &request)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AuthResponse{Error: &s})
		return
	}

	claims, err := auth.Parse(request.RefreshToken, auth.TokenTypeRefresh)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AuthResponse{Error: &s})
		return
	}

	var user models.User
	err = models.DB.First(&user, "id = ?", claims.UserID).Error
	if err != nil {
		if errors.Is(err, models.ErrResourceNotFound) {
			err = auth.ErrTokenInvalid
		}
		s := err.Error()
		c.JSON(status(err), AuthResponse{Error: &s})
		return
	}

	tokens, err := auth.NewPair(user.ID)
	if err != nil {
		s := models.ErrGeneral.Error()
		c.JSON(http.StatusInternalServerError, AuthResponse{Error: &s})
		return
	}

	data := newUser(user)
	c.JSON(http.StatusOK, AuthResponse{User: &data, Tokens: &tokens})
}

// @Summary		Current user
// @Description	Returns the profile of the authenticated user
// @Tags			Auth
// @Produce		json
// @Success		200	{object}	UserResponse
// @Failure		401	{object}	httpError
// @Router			/v1/auth/me [get]
func GetMe(c *gin.Context) {
	data := newUser(currentUser(c))
	c.JSON(http.StatusOK, UserResponse{Data: &data})
}

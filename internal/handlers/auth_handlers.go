package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-api/internal/auth"
	"storefront-api/internal/models"
	"storefront-api/internal/store"
)

// --- Login ---

type LoginInput struct {
	// Identifier is matched as an email when it contains '@', else as a
	// username.
	Identifier   string `json:"identifier" binding:"required"`
	Password     string `json:"password" binding:"required"`
	IsRememberMe bool   `json:"isRememberMe"`
}

// Login is the handler for POST /auth/login.
//
// The access token is always short-lived and always signed with the access
// secret. A remembered session additionally gets a persisted refresh token
// exchangeable at /auth/refresh.
func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.Users.FindByIdentifier(c.Request.Context(), input.Identifier)
	if err != nil {
		if err == store.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"success":   false,
				"errorCode": "USER_NOT_FOUND",
				"message":   "User not found",
			})
			return
		}
		h.respondStoreError(c, err, "User not found")
		return
	}

	password := models.Password{Hash: user.PasswordHash}
	ok, err := password.Matches(input.Password)
	if err != nil {
		h.Log.Error("password compare failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Something went wrong! Please try again later.")
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success":   false,
			"errorCode": "INVALID_PASSWORD",
			"message":   "Invalid password",
		})
		return
	}

	accessToken, err := h.Auth.IssueAccess(user)
	if err != nil {
		h.Log.Error("issue access token", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	resp := gin.H{
		"success":     true,
		"user":        user,
		"accessToken": accessToken,
	}

	if input.IsRememberMe {
		refreshToken, err := h.Auth.IssueRefresh(user)
		if err != nil {
			h.Log.Error("issue refresh token", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "Failed to issue token")
			return
		}
		record := &models.Token{
			UserID:    user.ID,
			Token:     refreshToken,
			Type:      models.TokenTypeRefresh,
			ExpiresAt: time.Now().Add(auth.RefreshTokenTTL),
		}
		if err := h.Tokens.Save(c.Request.Context(), record); err != nil {
			h.Log.Error("persist refresh token", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "Failed to issue token")
			return
		}
		resp["refreshToken"] = refreshToken
	}

	c.JSON(http.StatusOK, resp)
}

// --- Registration ---

type RegisterInput struct {
	FirstName       string           `json:"firstName" binding:"required"`
	LastName        string           `json:"lastName" binding:"required"`
	Username        string           `json:"username" binding:"required"`
	Email           string           `json:"email" binding:"required,email"`
	Password        string           `json:"password" binding:"required,min=8"`
	ConfirmPassword string           `json:"confirmPassword" binding:"required"`
	Contacts        []models.Contact `json:"contact"`
	Addresses       []models.Address `json:"addresses"`
}

// Register is the handler for POST /auth/register.
func (h *Handlers) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if input.Password != input.ConfirmPassword {
		respondError(c, http.StatusBadRequest, "Passwords do not match.")
		return
	}

	exists, err := h.Users.ExistsByEmailOrUsername(c.Request.Context(), input.Email, input.Username)
	if err != nil {
		h.respondStoreError(c, err, "")
		return
	}
	if exists {
		respondError(c, http.StatusBadRequest, "User already exists with the given email or username.")
		return
	}

	var password models.Password
	if err := password.Set(input.Password); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := &models.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: password.Hash,
		Role:         models.RoleUser,
		Contacts:     input.Contacts,
		Addresses:    input.Addresses,
	}
	if err := h.Users.Create(c.Request.Context(), user); err != nil {
		if err == store.ErrDuplicate {
			// Raced a concurrent registration on the unique keys.
			respondError(c, http.StatusBadRequest, "User already exists with the given email or username.")
			return
		}
		h.respondStoreError(c, err, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully.",
		"user":    user,
	})
}

// --- Token refresh ---

type RefreshInput struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// Logout revokes a persisted refresh token so it can no longer be exchanged.
// Revoking a token that is already gone still succeeds; logout is idempotent.
func (h *Handlers) Logout(c *gin.Context) {
	var input RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Tokens.DeleteByToken(c.Request.Context(), input.RefreshToken); err != nil && err != store.ErrNotFound {
		h.respondStoreError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}

// Refresh exchanges a persisted, unexpired refresh token for a new access
// token.
func (h *Handlers) Refresh(c *gin.Context) {
	var input RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	claims, err := h.Auth.ParseRefresh(input.RefreshToken)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	// The token must also still exist server-side; a deleted row means the
	// session was revoked.
	if _, err := h.Tokens.FindByToken(c.Request.Context(), input.RefreshToken); err != nil {
		if err == store.ErrNotFound {
			respondError(c, http.StatusUnauthorized, "Refresh token not recognized")
			return
		}
		h.respondStoreError(c, err, "")
		return
	}

	// Re-read the user so a changed role or email lands in the new token.
	user, err := h.Users.FindByID(c.Request.Context(), claims.UserID)
	if err != nil {
		h.respondStoreError(c, err, "User not found")
		return
	}

	accessToken, err := h.Auth.IssueAccess(user)
	if err != nil {
		h.Log.Error("issue access token", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	// Housekeeping while we are here.
	if _, err := h.Tokens.DeleteExpired(c.Request.Context(), time.Now()); err != nil {
		h.Log.Warn("cleanup expired tokens", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"accessToken": accessToken,
	})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-api/internal/middleware"
	"storefront-api/internal/models"
)

var userSortFields = map[string]string{
	"firstName": "first_name",
	"lastName":  "last_name",
	"username":  "username",
	"email":     "email",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// GetAllUsers is the handler for GET /users. Requires authentication but no
// elevated role.
func (h *Handlers) GetAllUsers(c *gin.Context) {
	params, err := parseListParams(c)
	if err != nil {
		h.respondStoreError(c, err, "")
		return
	}
	if err := params.Normalize(userSortFields); err != nil {
		h.respondStoreError(c, err, "")
		return
	}

	users, meta, err := h.Users.List(c.Request.Context(), params)
	if err != nil {
		h.respondStoreError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   users,
		"meta":    meta,
	})
}

// GetUser is the handler for GET /users/:id.
func (h *Handlers) GetUser(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.Users.FindByID(c.Request.Context(), id)
	if err != nil {
		h.respondStoreError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

// --- Admin user creation ---

type CreateUserInput struct {
	FirstName string           `json:"firstName" binding:"required"`
	LastName  string           `json:"lastName" binding:"required"`
	Username  string           `json:"username" binding:"required"`
	Email     string           `json:"email" binding:"required,email"`
	Password  string           `json:"password" binding:"required,min=8"`
	Role      string           `json:"role" binding:"omitempty,oneof=user admin sysadmin"`
	Contacts  []models.Contact `json:"contact"`
	Addresses []models.Address `json:"addresses"`
}

// CreateUser is the handler for POST /users (admin only). Unlike public
// registration it may assign any role.
func (h *Handlers) CreateUser(c *gin.Context) {
	var input CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
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

	role := models.RoleUser
	if input.Role != "" {
		role = models.Role(input.Role)
	}

	user := &models.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: password.Hash,
		Role:         role,
		Contacts:     input.Contacts,
		Addresses:    input.Addresses,
	}
	if err := h.Users.Create(c.Request.Context(), user); err != nil {
		h.respondStoreError(c, err, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User created successfully",
		"data":    user,
	})
}

// --- Update ---

type UpdateUserInput struct {
	FirstName *string           `json:"firstName"`
	LastName  *string           `json:"lastName"`
	Username  *string           `json:"username"`
	Email     *string           `json:"email" binding:"omitempty,email"`
	Password  *string           `json:"password" binding:"omitempty,min=8"`
	Role      *string           `json:"role" binding:"omitempty,oneof=user admin sysadmin"`
	Contacts  *[]models.Contact `json:"contact"`
	Addresses *[]models.Address `json:"addresses"`
}

// UpdateUser is the handler for PUT /users/:id. The caller must be the user
// themselves or carry an elevated role; only elevated callers may change a
// role. A provided password is re-hashed before persisting.
func (h *Handlers) UpdateUser(c *gin.Context) {
	claims, ok := middleware.Claims(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := parseID(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if claims.UserID != id && !claims.Role.IsElevated() {
		respondError(c, http.StatusForbidden, "You may only update your own profile")
		return
	}

	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.Users.FindByID(c.Request.Context(), id)
	if err != nil {
		h.respondStoreError(c, err, "User not found")
		return
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Contacts != nil {
		user.Contacts = *input.Contacts
	}
	if input.Addresses != nil {
		user.Addresses = *input.Addresses
	}
	if input.Role != nil {
		if !claims.Role.IsElevated() {
			respondError(c, http.StatusForbidden, "Only admins may change roles")
			return
		}
		user.Role = models.Role(*input.Role)
	}
	if input.Password != nil {
		var password models.Password
		if err := password.Set(*input.Password); err != nil {
			respondError(c, http.StatusInternalServerError, "Failed to hash password")
			return
		}
		user.PasswordHash = password.Hash
	}

	if err := h.Users.Update(c.Request.Context(), user); err != nil {
		h.respondStoreError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User updated successfully",
		"data":    user,
	})
}

// DeleteUser is the handler for DELETE /users/:id (admin only).
func (h *Handlers) DeleteUser(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Users.Delete(c.Request.Context(), id); err != nil {
		h.respondStoreError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User deleted successfully",
	})
}

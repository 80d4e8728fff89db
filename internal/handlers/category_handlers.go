package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-api/internal/models"
)

// Values are bare column names; the category store qualifies them against
// its own alias to disambiguate the parent self-join.
var categorySortFields = map[string]string{
	"title":     "title",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// GetAllCategories is the handler for GET /categories (public). Each entry
// carries its resolved parent, when it has one.
func (h *Handlers) GetAllCategories(c *gin.Context) {
	params, err := parseListParams(c)
	if err != nil {
		h.respondStoreError(c, err, "")
		return
	}
	if err := params.Normalize(categorySortFields); err != nil {
		h.respondStoreError(c, err, "")
		return
	}

	categories, meta, err := h.Categories.List(c.Request.Context(), params)
	if err != nil {
		h.respondStoreError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"categories": categories,
		"meta":       meta,
	})
}

// GetCategory is the handler for GET /categories/:id (public).
func (h *Handlers) GetCategory(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	category, err := h.Categories.FindByID(c.Request.Context(), id)
	if err != nil {
		h.respondStoreError(c, err, "Category not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": category})
}

// --- Create ---

type CreateCategoryInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	ParentID    *int64 `json:"parentId"`
	CoverImage  string `json:"coverImage"`
	Status      string `json:"status" binding:"omitempty,oneof=active draft deactivated"`
}

// CreateCategory is the handler for POST /categories (admin only).
func (h *Handlers) CreateCategory(c *gin.Context) {
	var input CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	status := models.StatusActive
	if input.Status != "" {
		status = models.Status(input.Status)
	}

	category := &models.Category{
		Title:       input.Title,
		Description: input.Description,
		Slug:        slugFor(input.Title),
		Status:      status,
		ParentID:    input.ParentID,
		CoverImage:  input.CoverImage,
	}

	if err := h.Categories.Create(c.Request.Context(), category); err != nil {
		h.respondStoreError(c, err, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Category created successfully",
		"data":    category,
	})
}

// --- Update ---

type UpdateCategoryInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ParentID    *int64  `json:"parentId"`
	CoverImage  *string `json:"coverImage"`
	Status      *string `json:"status" binding:"omitempty,oneof=active draft deactivated"`
}

// UpdateCategory is the handler for PUT /categories/:id (admin only). Passing
// parentId as 0 detaches the category from its parent.
func (h *Handlers) UpdateCategory(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var input UpdateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	category, err := h.Categories.FindByID(c.Request.Context(), id)
	if err != nil {
		h.respondStoreError(c, err, "Category not found")
		return
	}

	if input.Title != nil {
		category.Title = *input.Title
	}
	if input.Description != nil {
		category.Description = *input.Description
	}
	if input.ParentID != nil {
		if *input.ParentID == 0 {
			category.ParentID = nil
		} else {
			category.ParentID = input.ParentID
		}
	}
	if input.CoverImage != nil {
		category.CoverImage = *input.CoverImage
	}
	if input.Status != nil {
		category.Status = models.Status(*input.Status)
	}

	if err := h.Categories.Update(c.Request.Context(), category); err != nil {
		h.respondStoreError(c, err, "Category not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Category updated successfully",
		"data":    category,
	})
}

// DeleteCategory is the handler for DELETE /categories/:id (admin only).
// Children of the deleted category are detached, not removed.
func (h *Handlers) DeleteCategory(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Categories.Delete(c.Request.Context(), id); err != nil {
		h.respondStoreError(c, err, "Category not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Category deleted successfully",
	})
}

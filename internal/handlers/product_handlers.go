package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-api/internal/middleware"
	"storefront-api/internal/models"
)

var productSortFields = map[string]string{
	"title":     "title",
	"price":     "price",
	"stock":     "stock",
	"status":    "status",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// GetAllProducts is the handler for GET /products (public).
// Query: search, page, limit, sortBy, sortOrder. An empty page is a success
// with an empty slice and total=0, never an error.
func (h *Handlers) GetAllProducts(c *gin.Context) {
	params, err := parseListParams(c)
	if err != nil {
		h.respondStoreError(c, err, "")
		return
	}
	if err := params.Normalize(productSortFields); err != nil {
		h.respondStoreError(c, err, "")
		return
	}

	products, meta, err := h.Products.List(c.Request.Context(), params)
	if err != nil {
		h.respondStoreError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"products": products,
		"meta":     meta,
	})
}

// GetProduct is the handler for GET /products/:id (public).
func (h *Handlers) GetProduct(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.Products.FindByID(c.Request.Context(), id)
	if err != nil {
		h.respondStoreError(c, err, "Product not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
}

// --- Create ---

type CreateProductInput struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Stock       int     `json:"stock" binding:"gte=0"`
	Price       float64 `json:"price" binding:"gte=0"`
	Image       string  `json:"image"`
	Categories  []int64 `json:"categories"`
	Status      string  `json:"status" binding:"omitempty,oneof=active draft deactivated"`
}

// CreateProduct is the handler for POST /products (admin only). The slug is
// derived from the title and stays unique under title collisions.
func (h *Handlers) CreateProduct(c *gin.Context) {
	claims, _ := middleware.Claims(c)

	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	status := models.StatusDraft
	if input.Status != "" {
		status = models.Status(input.Status)
	}

	product := &models.Product{
		Title:       input.Title,
		Description: input.Description,
		Slug:        slugFor(input.Title),
		Status:      status,
		Stock:       input.Stock,
		Price:       input.Price,
		Image:       input.Image,
	}
	if claims != nil {
		uid := claims.UserID
		product.CreatedBy = &uid
	}

	if err := h.Products.Create(c.Request.Context(), product, input.Categories); err != nil {
		h.respondStoreError(c, err, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Product created successfully",
		"data":    product,
	})
}

// --- Update ---

type UpdateProductInput struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Stock       *int     `json:"stock" binding:"omitempty,gte=0"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Image       *string  `json:"image"`
	Categories  *[]int64 `json:"categories"`
	Status      *string  `json:"status" binding:"omitempty,oneof=active draft deactivated"`
}

// UpdateProduct is the handler for PUT /products/:id (admin only). Only the
// provided fields are replaced; the slug is stable across updates.
func (h *Handlers) UpdateProduct(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var input UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.Products.FindByID(c.Request.Context(), id)
	if err != nil {
		h.respondStoreError(c, err, "Product not found")
		return
	}

	if input.Title != nil {
		product.Title = *input.Title
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Image != nil {
		product.Image = *input.Image
	}
	if input.Status != nil {
		product.Status = models.Status(*input.Status)
	}

	if err := h.Products.Update(c.Request.Context(), product, input.Categories); err != nil {
		h.respondStoreError(c, err, "Product not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product updated successfully",
		"data":    product,
	})
}

// DeleteProduct is the handler for DELETE /products/:id (admin only).
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Products.Delete(c.Request.Context(), id); err != nil {
		h.respondStoreError(c, err, "Product not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product deleted successfully",
	})
}

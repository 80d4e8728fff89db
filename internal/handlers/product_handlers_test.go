package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-api/internal/auth"
	"storefront-api/internal/models"
	"storefront-api/internal/store"
)

func adminClaims() *auth.Claims {
	return &auth.Claims{UserID: 10, Email: "admin@example.com", Role: models.RoleAdmin}
}

func productRouter(h *Handlers) *gin.Engine {
	r := gin.New()
	r.GET("/products", h.GetAllProducts)
	r.GET("/products/:id", h.GetProduct)
	r.POST("/products", withClaims(adminClaims()), h.CreateProduct)
	r.PUT("/products/:id", withClaims(adminClaims()), h.UpdateProduct)
	r.DELETE("/products/:id", withClaims(adminClaims()), h.DeleteProduct)
	return r
}

func TestGetAllProducts(t *testing.T) {
	h := newTestHandlers(t)
	h.Products = &mockProductStore{
		list: func(p store.ListParams) ([]models.Product, store.Meta, error) {
			assert.Equal(t, "laptop", p.Search)
			assert.Equal(t, 2, p.Page)
			assert.Equal(t, 5, p.Limit)
			return []models.Product{{ID: 1, Title: "Gaming Laptop"}}, store.NewMeta(p, 11), nil
		},
	}

	req := jsonRequest(t, http.MethodGet, "/products?search=laptop&page=2&limit=5&sortBy=price&sortOrder=asc", nil)
	w := serve(productRouter(h), req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])

	meta := body["meta"].(map[string]any)
	assert.Equal(t, float64(2), meta["page"])
	assert.Equal(t, float64(11), meta["total"])
	assert.Equal(t, float64(3), meta["totalPages"])
}

func TestGetAllProductsEmptyPageIsSuccess(t *testing.T) {
	h := newTestHandlers(t)
	h.Products = &mockProductStore{
		list: func(p store.ListParams) ([]models.Product, store.Meta, error) {
			return []models.Product{}, store.NewMeta(p, 0), nil
		},
	}

	w := serve(productRouter(h), jsonRequest(t, http.MethodGet, "/products?search=nothing-matches", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Empty(t, body["products"])
	assert.Equal(t, float64(0), body["meta"].(map[string]any)["totalPages"])
}

func TestGetAllProductsRejectsBadParams(t *testing.T) {
	h := newTestHandlers(t)
	r := productRouter(h)

	for _, target := range []string{
		"/products?limit=0",
		"/products?limit=-5",
		"/products?limit=abc",
		"/products?page=abc",
		"/products?sortBy=secretColumn",
		"/products?sortOrder=sideways",
	} {
		w := serve(r, jsonRequest(t, http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestGetProductNotFound(t *testing.T) {
	h := newTestHandlers(t)
	h.Products = &mockProductStore{
		findByID: func(int64) (*models.Product, error) { return nil, store.ErrNotFound },
	}

	w := serve(productRouter(h), jsonRequest(t, http.MethodGet, "/products/404", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Product not found")
}

func TestCreateProduct(t *testing.T) {
	h := newTestHandlers(t)
	var created *models.Product
	h.Products = &mockProductStore{
		create: func(p *models.Product, categoryIDs []int64) error {
			p.ID = 7
			created = p
			assert.Equal(t, []int64{1, 2}, categoryIDs)
			return nil
		},
	}

	w := serve(productRouter(h), jsonRequest(t, http.MethodPost, "/products", gin.H{
		"title":      "Gaming Laptop",
		"price":      1299.99,
		"stock":      3,
		"categories": []int64{1, 2},
	}))

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, created)
	assert.True(t, strings.HasPrefix(created.Slug, "gaming-laptop-"), "slug %q", created.Slug)
	assert.Equal(t, models.StatusDraft, created.Status, "status defaults to draft")
	require.NotNil(t, created.CreatedBy)
	assert.Equal(t, int64(10), *created.CreatedBy)
}

// Two products with the same title must still end up with distinct slugs.
func TestCreateProductSlugUniqueUnderTitleCollision(t *testing.T) {
	h := newTestHandlers(t)
	var slugs []string
	h.Products = &mockProductStore{
		create: func(p *models.Product, _ []int64) error {
			slugs = append(slugs, p.Slug)
			return nil
		},
	}
	r := productRouter(h)

	for i := 0; i < 2; i++ {
		w := serve(r, jsonRequest(t, http.MethodPost, "/products", gin.H{"title": "Gaming Laptop"}))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	require.Len(t, slugs, 2)
	assert.NotEqual(t, slugs[0], slugs[1])
}

func TestCreateProductRejectsNegativeStock(t *testing.T) {
	h := newTestHandlers(t)

	w := serve(productRouter(h), jsonRequest(t, http.MethodPost, "/products", gin.H{
		"title": "Gaming Laptop",
		"stock": -1,
	}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProductRejectsUnknownCategory(t *testing.T) {
	h := newTestHandlers(t)
	h.Products = &mockProductStore{
		create: func(*models.Product, []int64) error {
			return &store.ValidationError{Msg: "referenced record does not exist"}
		},
	}

	w := serve(productRouter(h), jsonRequest(t, http.MethodPost, "/products", gin.H{
		"title":      "Gaming Laptop",
		"categories": []int64{999},
	}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProductMergesOnlyProvidedFields(t *testing.T) {
	h := newTestHandlers(t)
	existing := &models.Product{
		ID:          7,
		Title:       "Gaming Laptop",
		Description: "Original description",
		Slug:        "gaming-laptop-123",
		Status:      models.StatusActive,
		Stock:       3,
		Price:       1299.99,
	}
	var updated *models.Product
	var updatedCategories *[]int64
	h.Products = &mockProductStore{
		findByID: func(id int64) (*models.Product, error) {
			assert.Equal(t, int64(7), id)
			return existing, nil
		},
		update: func(p *models.Product, categoryIDs *[]int64) error {
			updated = p
			updatedCategories = categoryIDs
			return nil
		},
	}

	w := serve(productRouter(h), jsonRequest(t, http.MethodPut, "/products/7", gin.H{
		"price": 999.99,
	}))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, updated)
	assert.Equal(t, 999.99, updated.Price)
	assert.Equal(t, "Gaming Laptop", updated.Title, "omitted fields keep their value")
	assert.Equal(t, "gaming-laptop-123", updated.Slug, "slug is stable across updates")
	assert.Nil(t, updatedCategories, "category links untouched when omitted")
}

func TestUpdateProductReplacesCategories(t *testing.T) {
	h := newTestHandlers(t)
	var updatedCategories *[]int64
	h.Products = &mockProductStore{
		findByID: func(int64) (*models.Product, error) {
			return &models.Product{ID: 7, Title: "Gaming Laptop"}, nil
		},
		update: func(_ *models.Product, categoryIDs *[]int64) error {
			updatedCategories = categoryIDs
			return nil
		},
	}

	w := serve(productRouter(h), jsonRequest(t, http.MethodPut, "/products/7", gin.H{
		"categories": []int64{3},
	}))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, updatedCategories)
	assert.Equal(t, []int64{3}, *updatedCategories)
}

func TestDeleteProduct(t *testing.T) {
	h := newTestHandlers(t)
	h.Products = &mockProductStore{
		remove: func(id int64) error {
			assert.Equal(t, int64(7), id)
			return nil
		},
	}

	w := serve(productRouter(h), jsonRequest(t, http.MethodDelete, "/products/7", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Product deleted successfully")
}

func TestDeleteProductBadID(t *testing.T) {
	h := newTestHandlers(t)

	w := serve(productRouter(h), jsonRequest(t, http.MethodDelete, "/products/abc", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

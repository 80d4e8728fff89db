package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-api/internal/models"
	"storefront-api/internal/store"
)

func categoryRouter(h *Handlers) *gin.Engine {
	r := gin.New()
	r.GET("/categories", h.GetAllCategories)
	r.GET("/categories/:id", h.GetCategory)
	r.POST("/categories", withClaims(adminClaims()), h.CreateCategory)
	r.PUT("/categories/:id", withClaims(adminClaims()), h.UpdateCategory)
	r.DELETE("/categories/:id", withClaims(adminClaims()), h.DeleteCategory)
	return r
}

func TestGetAllCategoriesIncludesParent(t *testing.T) {
	h := newTestHandlers(t)
	parentID := int64(1)
	h.Categories = &mockCategoryStore{
		list: func(p store.ListParams) ([]models.Category, store.Meta, error) {
			return []models.Category{
				{ID: 1, Title: "Electronics"},
				{ID: 2, Title: "Laptops", ParentID: &parentID, Parent: &models.Category{ID: 1, Title: "Electronics"}},
			}, store.NewMeta(p, 2), nil
		},
	}

	w := serve(categoryRouter(h), jsonRequest(t, http.MethodGet, "/categories", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	categories := body["categories"].([]any)
	require.Len(t, categories, 2)

	child := categories[1].(map[string]any)
	parent := child["parent"].(map[string]any)
	assert.Equal(t, "Electronics", parent["title"])
}

func TestCreateCategoryWithParent(t *testing.T) {
	h := newTestHandlers(t)
	var created *models.Category
	h.Categories = &mockCategoryStore{
		create: func(c *models.Category) error {
			c.ID = 2
			created = c
			return nil
		},
	}

	w := serve(categoryRouter(h), jsonRequest(t, http.MethodPost, "/categories", gin.H{
		"title":    "Gaming Laptops",
		"parentId": 1,
	}))

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, created)
	assert.True(t, strings.HasPrefix(created.Slug, "gaming-laptops-"))
	assert.Equal(t, models.StatusActive, created.Status, "status defaults to active")
	require.NotNil(t, created.ParentID)
	assert.Equal(t, int64(1), *created.ParentID)
}

func TestCreateCategoryUnknownParent(t *testing.T) {
	h := newTestHandlers(t)
	h.Categories = &mockCategoryStore{
		create: func(*models.Category) error {
			return &store.ValidationError{Msg: "parent category does not exist"}
		},
	}

	w := serve(categoryRouter(h), jsonRequest(t, http.MethodPost, "/categories", gin.H{
		"title":    "Orphans",
		"parentId": 999,
	}))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "parent category does not exist")
}

func TestUpdateCategoryDetachesParent(t *testing.T) {
	h := newTestHandlers(t)
	parentID := int64(1)
	var updated *models.Category
	h.Categories = &mockCategoryStore{
		findByID: func(id int64) (*models.Category, error) {
			return &models.Category{ID: id, Title: "Laptops", ParentID: &parentID}, nil
		},
		update: func(c *models.Category) error {
			updated = c
			return nil
		},
	}

	w := serve(categoryRouter(h), jsonRequest(t, http.MethodPut, "/categories/2", gin.H{
		"parentId": 0,
	}))

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, updated)
	assert.Nil(t, updated.ParentID)
}

func TestDeleteCategory(t *testing.T) {
	h := newTestHandlers(t)
	h.Categories = &mockCategoryStore{
		remove: func(id int64) error {
			assert.Equal(t, int64(2), id)
			return nil
		},
	}

	w := serve(categoryRouter(h), jsonRequest(t, http.MethodDelete, "/categories/2", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Category deleted successfully")
}

func TestGetCategoryNotFound(t *testing.T) {
	h := newTestHandlers(t)
	h.Categories = &mockCategoryStore{
		findByID: func(int64) (*models.Category, error) { return nil, store.ErrNotFound },
	}

	w := serve(categoryRouter(h), jsonRequest(t, http.MethodGet, "/categories/404", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Category not found")
}

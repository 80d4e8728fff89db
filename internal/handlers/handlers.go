package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"storefront-api/internal/auth"
	"storefront-api/internal/storage"
	"storefront-api/internal/store"
)

// Handlers holds all dependencies for the HTTP handlers.
type Handlers struct {
	Log        *zap.Logger
	Users      store.UserStore
	Products   store.ProductStore
	Categories store.CategoryStore
	Tokens     store.TokenStore
	Auth       *auth.TokenService
	Storage    storage.ObjectStorage
	Env        string
	UploadDir  string
}

// respondError writes the standard failure envelope.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// respondStoreError maps store sentinels onto HTTP statuses. Unknown errors
// become a generic 500 so internals never leak through the envelope.
func (h *Handlers) respondStoreError(c *gin.Context, err error, notFoundMsg string) {
	var ve *store.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(c, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, store.ErrDuplicate):
		respondError(c, http.StatusBadRequest, "A record with the same unique value already exists.")
	case errors.As(err, &ve):
		respondError(c, http.StatusBadRequest, ve.Msg)
	default:
		h.Log.Error("store error", zap.Error(err), zap.String("path", c.Request.URL.Path))
		respondError(c, http.StatusInternalServerError, "Something went wrong! Please try again later.")
	}
}

// parseID reads the :id route parameter.
func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id: %q", c.Param("id"))
	}
	return id, nil
}

// parseListParams reads search/page/limit/sortBy/sortOrder from the query.
// Non-numeric page or limit is rejected, and an explicit limit below 1 is a
// validation error rather than a silent mis-skip.
func parseListParams(c *gin.Context) (store.ListParams, error) {
	p := store.ListParams{
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return p, &store.ValidationError{Msg: "page must be a number"}
	}
	p.Page = page

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(store.DefaultLimit)))
	if err != nil {
		return p, &store.ValidationError{Msg: "limit must be a number"}
	}
	if limit < 1 {
		return p, &store.ValidationError{Msg: fmt.Sprintf("limit must be between 1 and %d", store.MaxLimit)}
	}
	p.Limit = limit
	return p, nil
}

// slugFor derives the URL-safe slug for a title. The nanosecond suffix keeps
// slugs unique even when two records with the same title are created within
// the same millisecond.
func slugFor(title string) string {
	return fmt.Sprintf("%s-%d", slug.Make(title), time.Now().UnixNano())
}

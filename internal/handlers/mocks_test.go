package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront-api/internal/auth"
	"storefront-api/internal/middleware"
	"storefront-api/internal/models"
	"storefront-api/internal/store"
)

// Function-field fakes. A nil field means the test does not expect that call;
// hitting one panics, which fails the test loudly.

type mockUserStore struct {
	findByID         func(id int64) (*models.User, error)
	findByIdentifier func(identifier string) (*models.User, error)
	exists           func(email, username string) (bool, error)
	create           func(u *models.User) error
	update           func(u *models.User) error
	remove           func(id int64) error
	list             func(p store.ListParams) ([]models.User, store.Meta, error)
}

func (m *mockUserStore) FindByID(_ context.Context, id int64) (*models.User, error) {
	return m.findByID(id)
}

func (m *mockUserStore) FindByIdentifier(_ context.Context, identifier string) (*models.User, error) {
	return m.findByIdentifier(identifier)
}

func (m *mockUserStore) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	return m.exists(email, username)
}

func (m *mockUserStore) Create(_ context.Context, u *models.User) error { return m.create(u) }
func (m *mockUserStore) Update(_ context.Context, u *models.User) error { return m.update(u) }
func (m *mockUserStore) Delete(_ context.Context, id int64) error       { return m.remove(id) }

func (m *mockUserStore) List(_ context.Context, p store.ListParams) ([]models.User, store.Meta, error) {
	return m.list(p)
}

type mockProductStore struct {
	findByID func(id int64) (*models.Product, error)
	create   func(p *models.Product, categoryIDs []int64) error
	update   func(p *models.Product, categoryIDs *[]int64) error
	remove   func(id int64) error
	list     func(p store.ListParams) ([]models.Product, store.Meta, error)
}

func (m *mockProductStore) FindByID(_ context.Context, id int64) (*models.Product, error) {
	return m.findByID(id)
}

func (m *mockProductStore) Create(_ context.Context, p *models.Product, categoryIDs []int64) error {
	return m.create(p, categoryIDs)
}

func (m *mockProductStore) Update(_ context.Context, p *models.Product, categoryIDs *[]int64) error {
	return m.update(p, categoryIDs)
}

func (m *mockProductStore) Delete(_ context.Context, id int64) error { return m.remove(id) }

func (m *mockProductStore) List(_ context.Context, p store.ListParams) ([]models.Product, store.Meta, error) {
	return m.list(p)
}

type mockCategoryStore struct {
	findByID func(id int64) (*models.Category, error)
	create   func(c *models.Category) error
	update   func(c *models.Category) error
	remove   func(id int64) error
	list     func(p store.ListParams) ([]models.Category, store.Meta, error)
}

func (m *mockCategoryStore) FindByID(_ context.Context, id int64) (*models.Category, error) {
	return m.findByID(id)
}

func (m *mockCategoryStore) Create(_ context.Context, c *models.Category) error { return m.create(c) }
func (m *mockCategoryStore) Update(_ context.Context, c *models.Category) error { return m.update(c) }
func (m *mockCategoryStore) Delete(_ context.Context, id int64) error           { return m.remove(id) }

func (m *mockCategoryStore) List(_ context.Context, p store.ListParams) ([]models.Category, store.Meta, error) {
	return m.list(p)
}

type mockTokenStore struct {
	save          func(t *models.Token) error
	findByToken   func(token string) (*models.Token, error)
	deleteByToken func(token string) error
	deleteExpired func(now time.Time) (int64, error)
}

func (m *mockTokenStore) Save(_ context.Context, t *models.Token) error { return m.save(t) }

func (m *mockTokenStore) FindByToken(_ context.Context, token string) (*models.Token, error) {
	return m.findByToken(token)
}

func (m *mockTokenStore) DeleteByToken(_ context.Context, token string) error {
	return m.deleteByToken(token)
}

func (m *mockTokenStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	return m.deleteExpired(now)
}

type mockStorage struct {
	upload func(localPath, key, contentType string) (string, error)
}

func (m *mockStorage) Upload(_ context.Context, localPath, key, contentType string) (string, error) {
	return m.upload(localPath, key, contentType)
}

// --- Helpers ---

func newTestHandlers(t *testing.T) *Handlers {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return &Handlers{
		Log:       zap.NewNop(),
		Auth:      auth.NewTokenService("access-secret", "refresh-secret", "reset-secret", "test"),
		Env:       "test",
		UploadDir: t.TempDir(),
	}
}

// withClaims injects verified claims the way the auth middleware would.
func withClaims(claims *auth.Claims) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxClaims, claims)
		c.Set(middleware.CtxUserID, claims.UserID)
	}
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

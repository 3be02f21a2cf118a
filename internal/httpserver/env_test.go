package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jewellerymart/catalog/internal/models"
	"github.com/jewellerymart/catalog/internal/repo"
	"github.com/jewellerymart/catalog/internal/service"
)

type testEnv struct {
	DB      *gorm.DB
	E       *echo.Echo
	Catalog *CatalogHTTP
	Orders  *OrderHTTP
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Order{}))

	r := &repo.GormRepo{DB: db}

	return &testEnv{
		DB:      db,
		E:       echo.New(),
		Catalog: &CatalogHTTP{Svc: &service.CatalogService{Repo: r}},
		Orders:  &OrderHTTP{Svc: &service.OrderService{Repo: r}},
	}
}

func (env *testEnv) doJSONRequest(t *testing.T, method, target string, body any) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

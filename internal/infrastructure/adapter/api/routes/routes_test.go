package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/imagify/internal/domain/entity"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/logger"
	mockcore "github.com/amirhossein-jamali/imagify/mocks/port/core"
	mocksecurity "github.com/amirhossein-jamali/imagify/mocks/port/security"
	mockusecase "github.com/amirhossein-jamali/imagify/mocks/port/usecase"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

type fixture struct {
	router  *gin.Engine
	users   *mockusecase.MockUserUseCase
	payment *mockusecase.MockPaymentUseCase
	images  *mockusecase.MockImageUseCase
	tokens  *mocksecurity.MockTokenService
}

func newFixture(t *testing.T, production bool, staticDir string) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{
		router:  gin.New(),
		users:   mockusecase.NewMockUserUseCase(t),
		payment: mockusecase.NewMockPaymentUseCase(t),
		images:  mockusecase.NewMockImageUseCase(t),
		tokens:  mocksecurity.NewMockTokenService(t),
	}
	log := logger.NewNoopLogger()
	clock := mockcore.NewMockTimeProvider(t)
	clock.EXPECT().Now().Return(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)).Maybe()

	SetupMiddlewares(f.router, log, middleware.CORSOptions{AllowedOrigins: []string{"http://localhost:5173"}}, nil)
	SetupRoutes(f.router, Handlers{
		User:    handler.NewUserHandler(f.users, log),
		Payment: handler.NewPaymentHandler(f.payment, log),
		Image:   handler.NewImageHandler(f.images, log),
		System:  handler.NewSystemHandler(okPinger{}, clock, log),
	}, Options{
		Auth:       middleware.Auth(f.tokens, log),
		RateLimit:  middleware.NewRateLimiter(1, 1, log).Handler(),
		Metrics:    http.NotFoundHandler(),
		Production: production,
		StaticDir:  staticDir,
	})
	return f
}

func (f *fixture) do(method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("token", token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestRoutes_ProtectedEndpointsNeedToken(t *testing.T) {
	f := newFixture(t, false, "")

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/user/credits"},
		{http.MethodPost, "/api/user/credits"},
		{http.MethodPost, "/api/user/pay-razor"},
		{http.MethodPost, "/api/user/payment"},
		{http.MethodPost, "/api/user/verify-razor"},
		{http.MethodPost, "/api/user/payment-verify"},
		{http.MethodGet, "/api/user/transactions"},
		{http.MethodPost, "/api/image/generate-image"},
		{http.MethodPost, "/api/image/enhance-prompt"},
	} {
		rec := f.do(route.method, route.path, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, route.path)
	}
}

func TestRoutes_CreditsWithToken(t *testing.T) {
	f := newFixture(t, false, "")
	f.tokens.EXPECT().Parse("tok").Return("u-1", nil).Once()
	f.users.EXPECT().GetCredits(mock.Anything, "u-1").
		Return(entity.HydrateUser("u-1", "Ada", "ada@example.com", "h", 3, time.Time{}, time.Time{}), nil).Once()

	rec := f.do(http.MethodGet, "/api/user/credits", "tok")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"credits":3,"user":{"name":"Ada"}}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestRoutes_DevelopmentStatus(t *testing.T) {
	f := newFixture(t, false, "")

	rec := f.do(http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "IMAGIFY API is working")

	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/dashboard", "").Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/health", "").Code)
}

func TestRoutes_ProductionServesSPA(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log(1)"), 0o600))
	f := newFixture(t, true, dir)

	root := f.do(http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, root.Code)
	assert.Contains(t, root.Body.String(), "<html>app</html>")

	asset := f.do(http.MethodGet, "/assets/app.js", "")
	assert.Equal(t, "console.log(1)", asset.Body.String())

	clientRoute := f.do(http.MethodGet, "/buy-credit", "")
	assert.Contains(t, clientRoute.Body.String(), "<html>app</html>")

	traversal := f.do(http.MethodGet, "/../../etc/passwd", "")
	assert.NotContains(t, traversal.Body.String(), "root:")

	api := f.do(http.MethodGet, "/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, api.Code)
}

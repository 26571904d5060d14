package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"cookbook/config"
	"cookbook/internal/delivery/api/middleware"
	"cookbook/internal/delivery/api/router"
	"cookbook/internal/delivery/api/router/handler"
	"cookbook/internal/domain/entity"
	domainerrors "cookbook/internal/domain/errors"
	"cookbook/internal/domain/service"
	"cookbook/internal/infra/auth"
	"cookbook/internal/infra/metrics"
	"cookbook/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

const (
	testTokenSecret   = "test-token-secret"
	testSessionSecret = "test-session-secret"
)

var testUser = &entity.User{ID: "64b000000000000000000001", GoogleID: "g-1", DisplayName: "Ada", Email: "ada@example.com"}

type stubAuth struct {
	tokens   service.TokenService
	users    map[string]*entity.User
	sessions *stubSessions
}

func (s *stubAuth) LoginURL(state string) string {
	return "https://accounts.example.com/o/oauth2/auth?state=" + url.QueryEscape(state)
}

func (s *stubAuth) CompleteLogin(ctx context.Context, code string) (*usecase.LoginOutput, error) {
	if code != "good-code" {
		return nil, errors.WithStack(domainerrors.ErrAuthProvider.WithDetails("token exchange failed"))
	}

	token, err := s.tokens.Issue(testUser.ID)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Serialize(ctx, testUser)
	if err != nil {
		return nil, err
	}

	return &usecase.LoginOutput{User: testUser, Token: token, Session: session}, nil
}

func (s *stubAuth) Authenticate(_ context.Context, token string) (*entity.User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, ok := s.users[userID]
	if !ok {
		return nil, errors.WithStack(domainerrors.ErrUserNotFound)
	}

	return user, nil
}

type stubSessions struct {
	byKey map[string]*entity.User
}

func (s *stubSessions) Serialize(_ context.Context, user *entity.User) (*entity.Session, error) {
	key := "session-" + user.ID
	s.byKey[key] = user

	return &entity.Session{Key: key, UserID: user.ID}, nil
}

func (s *stubSessions) Deserialize(_ context.Context, key string) (*entity.User, error) {
	return s.byKey[key], nil
}

func (s *stubSessions) Destroy(_ context.Context, key string) error {
	delete(s.byKey, key)

	return nil
}

type stubRecipes struct {
	usecase.RecipeUsecase
	created []usecase.RecipeInput
}

func (s *stubRecipes) List(context.Context) ([]*entity.RecipeDetail, error) {
	return []*entity.RecipeDetail{{
		Recipe:     &entity.Recipe{ID: "r1", Title: "Pancakes", AuthorID: testUser.ID},
		AuthorName: "Ada",
	}}, nil
}

func (s *stubRecipes) Create(_ context.Context, user *entity.User, input usecase.RecipeInput) (*entity.Recipe, error) {
	s.created = append(s.created, input)

	return &entity.Recipe{ID: "r2", Title: input.Title, AuthorID: user.ID, CategoryID: input.CategoryID}, nil
}

func (s *stubRecipes) Delete(_ context.Context, user *entity.User, id string) error {
	if id == "r1" && user.ID != testUser.ID {
		return domainerrors.ErrForbidden.WithMessagef("User not authorized to %s this %s", "delete", "recipe")
	}

	return errors.WithStack(domainerrors.ErrRecipeNotFound)
}

type stubProducts struct {
	usecase.ProductUsecase
	created []usecase.ProductInput
}

func (s *stubProducts) List(context.Context) ([]*entity.Product, error) {
	return []*entity.Product{{ID: "p1", Name: "Laptop", SKU: "SLP-1"}}, nil
}

func (s *stubProducts) Create(_ context.Context, input usecase.ProductInput) (*entity.Product, error) {
	s.created = append(s.created, input)

	return &entity.Product{ID: "p2", Name: input.Name, SKU: input.SKU, ReleaseDate: input.ReleaseDate}, nil
}

type testServer struct {
	echo     *echo.Echo
	tokens   service.TokenService
	auth     *stubAuth
	sessions *stubSessions
	recipes  *stubRecipes
	products *stubProducts
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		SecretKey: config.SecretKeyConfig{Token: testTokenSecret, Session: testSessionSecret},
		Session:   &config.SessionConfig{TTL: time.Hour},
		UI:        &config.UIConfig{HomeURL: "/", SuccessURL: "/", FailureURL: "/auth/failed"},
	}
	cfg.HTTP.MaxRequestBodySize = "100KB"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	sessions := &stubSessions{byKey: map[string]*entity.User{}}
	authUC := &stubAuth{tokens: tokens, users: map[string]*entity.User{testUser.ID: testUser}, sessions: sessions}
	recipes := &stubRecipes{}
	products := &stubProducts{}

	reg := metrics.NewRegistry()
	collector := metrics.NewCollector(reg)
	cookie := middleware.NewSessionCookie(cfg)

	lc := fxtest.NewLifecycle(t)
	srv, err := NewServer(ServerParams{
		Lc:      lc,
		Cfg:     cfg,
		Logger:  logger,
		Metrics: collector,
		RouterParams: router.RouterParams{
			AuthHandler: handler.NewAuthHandler(handler.AuthHandlerParams{
				Auth:     authUC,
				Sessions: sessions,
				Cookie:   cookie,
				Config:   cfg,
				Logger:   logger,
			}),
			RecipeHandler:   handler.NewRecipeHandler(recipes),
			CategoryHandler: handler.NewCategoryHandler(nil),
			ReviewHandler:   handler.NewReviewHandler(nil),
			ContactHandler:  handler.NewContactHandler(nil),
			ProductHandler:  handler.NewProductHandler(products),
			AuthMiddleware: middleware.NewAuthMiddleware(middleware.AuthMiddlewareParams{
				Auth:    authUC,
				Metrics: collector,
				Logger:  logger,
			}),
			SessionMiddleware: middleware.NewSessionMiddleware(middleware.SessionMiddlewareParams{
				Sessions: sessions,
				Cookie:   cookie,
				Logger:   logger,
			}),
			MetricsHandler: metrics.Handler(reg),
			Config:         cfg,
		},
	})
	require.NoError(t, err)
	lc.RequireStart()
	t.Cleanup(lc.RequireStop)

	return &testServer{
		echo:     srv.(*apiServer).server,
		tokens:   tokens,
		auth:     authUC,
		sessions: sessions,
		recipes:  recipes,
		products: products,
	}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	return rec
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var body T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())

	return body
}

func newRecipeRequest(authorization string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/recipes",
		strings.NewReader(`{"title":"Waffles","ingredients":["flour"],"instructions":["mix"],"category":"c1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}

	return req
}

func TestServer_UnprotectedListNeedsNoToken(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(httptest.NewRequest(http.MethodGet, "/api/recipes", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authorName":"Ada"`)
}

func TestServer_BearerRejections(t *testing.T) {
	srv := newTestServer(t)

	orphanToken, err := srv.tokens.Issue("64b0000000000000000000ff")
	require.NoError(t, err)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   testUser.ID,
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-48 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
	}).SignedString([]byte(testTokenSecret))
	require.NoError(t, err)

	tests := []struct {
		name          string
		authorization string
		wantCode      string
		wantMessage   string
	}{
		{"no header", "", "NO_TOKEN", "Not authorized, no token"},
		{"wrong scheme", "Basic dXNlcjpwYXNz", "MALFORMED_AUTH_HEADER", "Not authorized, malformed authorization header"},
		{"empty token", "Bearer ", "MALFORMED_AUTH_HEADER", "Not authorized, malformed authorization header"},
		{"garbage token", "Bearer garbage", "TOKEN_INVALID", "Not authorized, token failed ("},
		{"expired token", "Bearer " + expired, "TOKEN_EXPIRED", "Not authorized, token expired"},
		{"deleted user", "Bearer " + orphanToken, "USER_NOT_FOUND", "Not authorized, user not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(newRecipeRequest(tt.authorization))

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			body := decode[errorBody](t, rec)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.True(t, strings.HasPrefix(body.Error.Message, tt.wantMessage), body.Error.Message)
		})
	}

	assert.Empty(t, srv.recipes.created)
}

func TestServer_AuthenticatedCreate(t *testing.T) {
	srv := newTestServer(t)

	token, err := srv.tokens.Issue(testUser.ID)
	require.NoError(t, err)

	rec := srv.do(newRecipeRequest("Bearer " + token))
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, srv.recipes.created, 1)
	assert.Equal(t, "c1", srv.recipes.created[0].CategoryID)

	req := httptest.NewRequest(http.MethodPost, "/api/recipes", strings.NewReader(`{"title":""}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)

	rec = srv.do(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", decode[errorBody](t, rec).Error.Code)
}

func TestServer_Profile(t *testing.T) {
	srv := newTestServer(t)

	token, err := srv.tokens.Issue(testUser.ID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)

	rec := srv.do(req)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[struct {
		Data struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"data"`
	}](t, rec)
	assert.Equal(t, testUser.ID, body.Data.ID)
	assert.Equal(t, "ada@example.com", body.Data.Email)

	rec = srv.do(httptest.NewRequest(http.MethodGet, "/auth/profile", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}

	return nil
}

func TestServer_GoogleLoginFlow(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(httptest.NewRequest(http.MethodGet, "/auth/google", nil))
	require.Equal(t, http.StatusFound, rec.Code)

	stateCookie := findCookie(rec, "cookbook_oauth_state")
	require.NotNil(t, stateCookie)
	assert.True(t, stateCookie.HttpOnly)
	assert.Contains(t, rec.Header().Get(echo.HeaderLocation), "state="+stateCookie.Value)

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=good-code&state="+stateCookie.Value, nil)
	req.AddCookie(stateCookie)

	rec = srv.do(req)
	require.Equal(t, http.StatusFound, rec.Code)

	location, err := url.Parse(rec.Header().Get(echo.HeaderLocation))
	require.NoError(t, err)
	assert.Equal(t, "/", location.Path)

	subject, err := srv.tokens.Verify(location.Query().Get("token"))
	require.NoError(t, err)
	assert.Equal(t, testUser.ID, subject)

	sessionCookie := findCookie(rec, middleware.SessionCookieName)
	require.NotNil(t, sessionCookie)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(sessionCookie)

	rec = srv.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":true`)

	req = httptest.NewRequest(http.MethodGet, "/auth/logout", nil)
	req.AddCookie(sessionCookie)

	rec = srv.do(req)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/?message=Logged%20Out", rec.Header().Get(echo.HeaderLocation))
	assert.Empty(t, srv.sessions.byKey)
}

func TestServer_GoogleCallbackFailures(t *testing.T) {
	srv := newTestServer(t)
	state := &http.Cookie{Name: "cookbook_oauth_state", Value: "expected-state"}

	tests := []struct {
		name      string
		query     string
		withState bool
		wantError string
	}{
		{"state mismatch", "code=good-code&state=other", true, domainerrors.ErrOAuthStateMismatch.Message()},
		{"missing state cookie", "code=good-code&state=expected-state", false, domainerrors.ErrOAuthStateMismatch.Message()},
		{"provider denied", "error=access_denied&state=expected-state", true, domainerrors.ErrAuthProvider.Message()},
		{"bad code", "code=bad-code&state=expected-state", true, domainerrors.ErrAuthProvider.Message()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?"+tt.query, nil)
			if tt.withState {
				req.AddCookie(state)
			}

			rec := srv.do(req)
			require.Equal(t, http.StatusFound, rec.Code)

			location, err := url.Parse(rec.Header().Get(echo.HeaderLocation))
			require.NoError(t, err)
			assert.Equal(t, "/auth/failed", location.Path)
			assert.Equal(t, tt.wantError, location.Query().Get("error"))
			assert.Nil(t, findCookie(rec, middleware.SessionCookieName))
		})
	}
}

func TestServer_AuthFailedPage(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(httptest.NewRequest(http.MethodGet, "/auth/failed?error=Authentication%20failed", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authentication failed", decode[errorBody](t, rec).Error.Message)
}

func TestServer_LandingIgnoresForgedSessionCookie(t *testing.T) {
	srv := newTestServer(t)
	srv.sessions.byKey["session-x"] = testUser

	req := httptest.NewRequest(http.MethodGet, "/?message=Logged%20Out", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "session-x.forged"})

	rec := srv.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":false`)
	assert.Contains(t, rec.Body.String(), `"notice":"Logged Out"`)
}

func TestServer_OwnershipRejection(t *testing.T) {
	srv := newTestServer(t)
	srv.auth.users["64b000000000000000000002"] = &entity.User{ID: "64b000000000000000000002", Email: "bob@example.com"}

	token, err := srv.tokens.Issue("64b000000000000000000002")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/api/recipes/r1", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)

	rec := srv.do(req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "User not authorized to delete this recipe", decode[errorBody](t, rec).Error.Message)

	req = httptest.NewRequest(http.MethodDelete, "/api/recipes/missing", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)

	rec = srv.do(req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_HealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	srv.do(newRecipeRequest(""))

	rec = srv.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `cookbook_auth_rejections_total{reason="NO_TOKEN"} 1`)
	assert.Contains(t, rec.Body.String(), `cookbook_http_requests_total{method="GET",route="/health",status_code="200"} 1`)
}

func newProductRequest(token, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	return req
}

func TestServer_Products(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"sku":"SLP-1"`)

	valid := `{"name":"Laptop","description":"Fast","price":0,"category":"Electronics","stockQuantity":0,"sku":"slp-2","releaseDate":"2024-01-15"}`

	rec = srv.do(newProductRequest("", valid))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "NO_TOKEN", decode[errorBody](t, rec).Error.Code)

	token, err := srv.tokens.Issue(testUser.ID)
	require.NoError(t, err)

	rec = srv.do(newProductRequest(token, valid))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"releaseDate":"2024-01-15"`)
	require.Len(t, srv.products.created, 1)
	assert.Equal(t, 0.0, srv.products.created[0].Price)
	assert.Equal(t, 0, srv.products.created[0].StockQuantity)

	invalid := map[string]string{
		"missing sku":    `{"name":"Laptop","description":"Fast","price":1,"category":"Electronics","stockQuantity":1}`,
		"missing price":  `{"name":"Laptop","description":"Fast","category":"Electronics","stockQuantity":1,"sku":"X"}`,
		"negative stock": `{"name":"Laptop","description":"Fast","price":1,"category":"Electronics","stockQuantity":-1,"sku":"X"}`,
		"bad date":       `{"name":"Laptop","description":"Fast","price":1,"category":"Electronics","stockQuantity":1,"sku":"X","releaseDate":"15/01/2024"}`,
	}

	for name, body := range invalid {
		t.Run(name, func(t *testing.T) {
			rec := srv.do(newProductRequest(token, body))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "VALIDATION_FAILED", decode[errorBody](t, rec).Error.Code)
		})
	}

	assert.Len(t, srv.products.created, 1)
}

func TestServer_ContactWritesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		path := "/api/contacts/64b000000000000000000002"
		if method == http.MethodPost {
			path = "/api/contacts"
		}

		req := httptest.NewRequest(method, path, strings.NewReader(`{"firstName":"Jane"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		rec := srv.do(req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, method)
	}
}

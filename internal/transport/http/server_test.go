package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpapp "citiesmanager/internal/app/http"
	"citiesmanager/internal/config"
	"citiesmanager/internal/domain/models"
	"citiesmanager/internal/lib/jwt"
	"citiesmanager/internal/lib/logger/handlers/slogdiscard"
	"citiesmanager/internal/repository"
	"citiesmanager/internal/services/auth"
	citysvc "citiesmanager/internal/services/city_service"
	tokensvc "citiesmanager/internal/services/token_service"
	"citiesmanager/internal/storage/inmemory"
	httprouters "citiesmanager/internal/transport/http"
	"citiesmanager/internal/transport/http/dto"
	"citiesmanager/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type HTTPTestSuite struct {
	suite.Suite

	server *httpapp.Server
	now    time.Time
	cfg    *config.Config
}

func TestHTTPTestSuite(t *testing.T) {
	suite.Run(t, new(HTTPTestSuite))
}

func (s *HTTPTestSuite) SetupTest() {
	s.now = time.Now().UTC()
	clock := func() time.Time { return s.now }

	s.cfg = &config.Config{
		Env: "local",
		HTTP: config.HTTPConfig{
			CORSOrigins: []string{"http://localhost:4200"},
		},
		JWT: config.JWTConfig{
			Secret:   "http-suite-secret-0123456789abcdef",
			Issuer:   "citiesmanager",
			Audience: "citiesmanager-client",
			TTL:      10 * time.Minute,
		},
		RefreshToken: config.RefreshTokenConfig{TTL: time.Hour, Store: config.RefreshStoreUser},
		Session:      config.SessionConfig{Secret: "session-secret", MaxAge: 3600},
		RateLimit:    config.RateLimitConfig{RPS: 1000, Burst: 1000, TTL: time.Minute},
	}

	log := slogdiscard.NewDiscardLogger()
	storage := inmemory.New(inmemory.SeedCities...)
	store := repository.NewCredentialStore(storage, repository.WithBcryptCost(bcrypt.MinCost))
	signer := jwt.New(s.cfg.JWT, jwt.WithClock(clock))
	tokens := tokensvc.NewTokenService(log, signer, store, s.cfg.RefreshToken.TTL, tokensvc.WithClock(clock))

	routers := httprouters.NewRouter(log,
		auth.New(log, store, signer, tokens),
		citysvc.NewCityService(log, storage),
		signer,
		storage,
	)

	s.server = httpapp.New(log, s.cfg, signer, routers)
	s.server.BuildRouters()
}

func (s *HTTPTestSuite) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.server.ServeHTTP(rec, req)

	return rec
}

func (s *HTTPTestSuite) decode(rec *httptest.ResponseRecorder, v interface{}) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func registerBody(email, password string) map[string]string {
	return map[string]string{
		"personName":      "Alice",
		"email":           email,
		"phone":           "1234567890",
		"password":        password,
		"confirmPassword": password,
	}
}

func (s *HTTPTestSuite) register(email, password string) models.AuthenticationResponse {
	rec := s.do(http.MethodPost, "/api/v1/account/register", registerBody(email, password), "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var resp models.AuthenticationResponse
	s.decode(rec, &resp)

	return resp
}

func (s *HTTPTestSuite) TestAccountScenario() {
	registered := s.register("a@x.com", "pw12345")
	s.NotEmpty(registered.Token)
	s.NotEmpty(registered.RefreshToken)
	s.Equal("a@x.com", registered.Email)
	s.Equal("Alice", registered.DisplayName)

	rec := s.do(http.MethodPost, "/api/v1/account/login", map[string]string{"email": "a@x.com", "password": "pw12345"}, "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.NotEmpty(rec.Header().Get("Set-Cookie"), "login signs the session in")

	var loggedIn models.AuthenticationResponse
	s.decode(rec, &loggedIn)

	rec = s.do(http.MethodPost, "/api/v1/account/login", map[string]string{"email": "a@x.com", "password": "wrong99"}, "")
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	var errResp response.ErrorResponse
	s.decode(rec, &errResp)
	s.Equal(response.ErrAuthenticationFailed.Error, errResp.Error)

	rec = s.do(http.MethodPost, "/api/v1/account/token", map[string]string{
		"token":        loggedIn.Token,
		"refreshToken": loggedIn.RefreshToken,
	}, "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var refreshed models.AuthenticationResponse
	s.decode(rec, &refreshed)
	s.NotEmpty(refreshed.RefreshToken)
	s.NotEqual(loggedIn.RefreshToken, refreshed.RefreshToken)

	rec = s.do(http.MethodPost, "/api/v1/account/token", map[string]string{
		"token":        loggedIn.Token,
		"refreshToken": loggedIn.RefreshToken,
	}, "")
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *HTTPTestSuite) TestRegister_Validation() {
	s.register("taken@x.com", "pw12345")

	tests := []struct {
		name string
		body map[string]string
	}{
		{name: "duplicate email", body: registerBody("taken@x.com", "pw12345")},
		{name: "bad email", body: registerBody("not-an-email", "pw12345")},
		{name: "short password", body: registerBody("b@x.com", "p1")},
		{name: "password without digit", body: registerBody("b@x.com", "password")},
		{name: "password without lowercase", body: registerBody("b@x.com", "12345678")},
		{name: "password too long", body: registerBody("long@x.com", "a1"+strings.Repeat("x", 78))},
		{name: "confirm mismatch", body: func() map[string]string {
			b := registerBody("b@x.com", "pw12345")
			b["confirmPassword"] = "pw54321"
			return b
		}()},
		{name: "phone letters", body: func() map[string]string {
			b := registerBody("b@x.com", "pw12345")
			b["phone"] = "12ab5678"
			return b
		}()},
		{name: "phone too short", body: func() map[string]string {
			b := registerBody("b@x.com", "pw12345")
			b["phone"] = "12345"
			return b
		}()},
		{name: "missing name", body: func() map[string]string {
			b := registerBody("b@x.com", "pw12345")
			delete(b, "personName")
			return b
		}()},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := s.do(http.MethodPost, "/api/v1/account/register", tt.body, "")
			s.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func (s *HTTPTestSuite) TestRefresh_Failures() {
	resp := s.register("r@x.com", "pw12345")

	tests := []struct {
		name string
		body map[string]string
		code int
	}{
		{name: "garbage access token", body: map[string]string{"token": "garbage", "refreshToken": resp.RefreshToken}, code: http.StatusBadRequest},
		{name: "wrong refresh token", body: map[string]string{"token": resp.Token, "refreshToken": "nope"}, code: http.StatusUnauthorized},
		{name: "missing fields", body: map[string]string{"token": resp.Token}, code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := s.do(http.MethodPost, "/api/v1/account/token", tt.body, "")
			s.Equal(tt.code, rec.Code, rec.Body.String())
		})
	}

	s.now = s.now.Add(2 * time.Hour)

	rec := s.do(http.MethodPost, "/api/v1/account/token", map[string]string{"token": resp.Token, "refreshToken": resp.RefreshToken}, "")
	s.Equal(http.StatusUnauthorized, rec.Code, "expired refresh session")
}

func (s *HTTPTestSuite) TestLogout_RevokesRefreshToken() {
	resp := s.register("l@x.com", "pw12345")

	rec := s.do(http.MethodGet, "/api/v1/account/logout", nil, resp.Token)
	s.Equal(http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/account/token", map[string]string{"token": resp.Token, "refreshToken": resp.RefreshToken}, "")
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/account/logout", nil, "")
	s.Equal(http.StatusNoContent, rec.Code, "anonymous logout still succeeds")
}

func (s *HTTPTestSuite) TestCities_RequireBearer() {
	rec := s.do(http.MethodGet, "/api/v1/cities", nil, "")
	s.Equal(http.StatusUnauthorized, rec.Code)

	resp := s.register("c@x.com", "pw12345")

	s.now = s.now.Add(11 * time.Minute)
	rec = s.do(http.MethodGet, "/api/v1/cities", nil, resp.Token)
	s.Equal(http.StatusUnauthorized, rec.Code, "expired access token")

	rec = s.do(http.MethodGet, "/api/v2/cities", nil, "garbage")
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *HTTPTestSuite) TestCities_CRUD() {
	token := s.register("crud@x.com", "pw12345").Token

	rec := s.do(http.MethodGet, "/api/v1/cities", nil, token)
	s.Require().Equal(http.StatusOK, rec.Code)

	var cities []dto.CityResponse
	s.decode(rec, &cities)
	s.Len(cities, len(inmemory.SeedCities))

	rec = s.do(http.MethodPost, "/api/v1/cities", map[string]string{"name": "Lviv"}, token)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var created dto.CityResponse
	s.decode(rec, &created)
	s.Equal("Lviv", created.Name)
	s.Equal("/api/v1/cities/"+created.ID.String(), rec.Header().Get(echo.HeaderLocation))

	rec = s.do(http.MethodPost, "/api/v1/cities", map[string]string{"name": "lviv"}, token)
	s.Equal(http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/cities", map[string]string{"name": "   "}, token)
	s.Equal(http.StatusBadRequest, rec.Code)

	path := "/api/v1/cities/" + created.ID.String()

	rec = s.do(http.MethodGet, path, nil, token)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodPut, path, map[string]string{"id": uuid.NewString(), "name": "Lemberg"}, token)
	s.Equal(http.StatusBadRequest, rec.Code, "id mismatch")

	rec = s.do(http.MethodPut, path, map[string]string{"id": created.ID.String(), "name": "Kyiv"}, token)
	s.Equal(http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPut, path, map[string]string{"id": created.ID.String(), "name": "Lemberg"}, token)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/v2/cities/"+created.ID.String(), nil, token)
	s.Require().Equal(http.StatusOK, rec.Code)

	var name string
	s.decode(rec, &name)
	s.Equal("Lemberg", name)

	rec = s.do(http.MethodDelete, path, nil, token)
	s.Equal(http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodDelete, path, nil, token)
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, path, nil, token)
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/cities/not-a-uuid", nil, token)
	s.Equal(http.StatusBadRequest, rec.Code)

	missing := uuid.NewString()
	rec = s.do(http.MethodPut, "/api/v1/cities/"+missing, map[string]string{"id": missing, "name": "Nowhere"}, token)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *HTTPTestSuite) TestCitiesV2_Names() {
	token := s.register("v2@x.com", "pw12345").Token

	rec := s.do(http.MethodGet, "/api/v2/cities", nil, token)
	s.Require().Equal(http.StatusOK, rec.Code)

	var names []string
	s.decode(rec, &names)
	s.Contains(names, "Kyiv")
	s.Len(names, len(inmemory.SeedCities))
}

func (s *HTTPTestSuite) TestHealthAndMetrics() {
	rec := s.do(http.MethodGet, "/health", nil, "")
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/metrics", nil, "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "citiesmanager_http_requests_total")
}

func (s *HTTPTestSuite) TestLogin_IncompleteUser() {
	// a record without a display name cannot be signed in
	storage := inmemory.New()
	log := slogdiscard.NewDiscardLogger()
	store := repository.NewCredentialStore(storage, repository.WithBcryptCost(bcrypt.MinCost))
	signer := jwt.New(s.cfg.JWT)
	tokens := tokensvc.NewTokenService(log, signer, store, time.Hour)

	server := httpapp.New(log, s.cfg, signer, httprouters.NewRouter(log,
		auth.New(log, store, signer, tokens),
		citysvc.NewCityService(log, storage),
		signer,
	))
	server.BuildRouters()

	hash, err := bcrypt.GenerateFromPassword([]byte("pw12345"), bcrypt.MinCost)
	s.Require().NoError(err)
	_, err = storage.SaveUser(context.Background(), models.User{Email: "anon@x.com", Password: hash})
	s.Require().NoError(err)

	body, _ := json.Marshal(map[string]string{"email": "anon@x.com", "password": "pw12345"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/account/login", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	s.Equal(http.StatusNoContent, rec.Code)
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halls510/project-list-pokemons/internal/model"
	"github.com/halls510/project-list-pokemons/internal/service"
	"github.com/halls510/project-list-pokemons/pkg/logger"
	"github.com/halls510/project-list-pokemons/pkg/security"
	"github.com/halls510/project-list-pokemons/pkg/web/validator"
)

type fakePokemonProvider struct {
	pokemons map[int]*model.Pokemon
}

func (f *fakePokemonProvider) GetByID(_ context.Context, id int) (*model.Pokemon, error) {
	p, ok := f.pokemons[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	return p, nil
}

func (f *fakePokemonProvider) List(_ context.Context, page, pageSize int) (*service.Page[*model.Pokemon], error) {
	items := make([]*model.Pokemon, 0, len(f.pokemons))
	for _, p := range f.pokemons {
		items = append(items, p)
	}
	return &service.Page[*model.Pokemon]{Items: items, Page: page, PageSize: pageSize, Total: int64(len(items))}, nil
}

func (f *fakePokemonProvider) Random(_ context.Context, count int) ([]*model.Pokemon, error) {
	if len(f.pokemons) == 0 {
		return nil, service.ErrNotFound
	}
	out := make([]*model.Pokemon, 0, count)
	for _, p := range f.pokemons {
		if len(out) == count {
			break
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePokemonProvider) Total(_ context.Context) (int64, error) {
	return int64(len(f.pokemons)), nil
}

type fakeTrainerProvider struct {
	registerErr error
}

func (f *fakeTrainerProvider) Register(_ context.Context, name string, age int, cpf string) (*model.Trainer, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &model.Trainer{ID: 1, Name: name, Age: age, CPF: cpf}, nil
}

func (f *fakeTrainerProvider) GetByID(_ context.Context, id int64) (*model.Trainer, error) {
	if id != 1 {
		return nil, service.ErrNotFound
	}
	return &model.Trainer{ID: 1, Name: "Ash", Age: 10}, nil
}

type fakeCaptureProvider struct {
	registerErr error
}

func (f *fakeCaptureProvider) Register(_ context.Context, trainerID int64, pokemonID int) (*model.Capture, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &model.Capture{ID: 1, TrainerID: trainerID, PokemonID: pokemonID}, nil
}

func (f *fakeCaptureProvider) ListByTrainer(_ context.Context, trainerID int64, page, pageSize int) (*service.Page[*model.CaptureDetail], error) {
	return &service.Page[*model.CaptureDetail]{
		Items:    []*model.CaptureDetail{{ID: 1, TrainerID: trainerID, PokemonID: 25}},
		Page:     page,
		PageSize: pageSize,
		Total:    1,
	}, nil
}

func (f *fakeCaptureProvider) ListAll(_ context.Context, page, pageSize int) (*service.Page[*model.CaptureDetail], error) {
	return &service.Page[*model.CaptureDetail]{Page: page, PageSize: pageSize}, nil
}

type okPinger struct{ err error }

func (p okPinger) Ping(context.Context) error { return p.err }

type testEnv struct {
	router   *gin.Engine
	jwt      *security.JWTManager
	trainers *fakeTrainerProvider
	captures *fakeCaptureProvider
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.Init()

	jwt, err := security.NewJWTManager(&security.JWTConfig{SecretKey: "test-secret"})
	require.NoError(t, err)

	trainers := &fakeTrainerProvider{}
	captures := &fakeCaptureProvider{}
	l := logger.Noop()

	router := gin.New()
	Register(router, &Deps{
		Pokemons: NewPokemonHandler(&fakePokemonProvider{pokemons: map[int]*model.Pokemon{
			25: {ID: 25, Name: "pikachu"},
		}}, l),
		Trainers: NewTrainerHandler(trainers, l),
		Captures: NewCaptureHandler(captures, l),
		Auth:     NewAuthHandler(jwt, map[string]string{"pokedex-web": "s3cret"}, l),
		Health:   NewHealthHandler(map[string]Pinger{"postgres": okPinger{}}, l),
		JWT:      jwt,
		Logger:   l,
	})

	return &testEnv{router: router, jwt: jwt, trainers: trainers, captures: captures}
}

func (e *testEnv) request(t *testing.T, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		token, err := e.jwt.GenerateToken(map[string]any{"client_id": "test"})
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestGetPokemon(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/v1/pokemons/25", nil, true)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pikachu")

	w = env.request(t, http.MethodGet, "/api/v1/pokemons/999", nil, true)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.request(t, http.MethodGet, "/api/v1/pokemons/abc", nil, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRandomPokemons(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/v1/pokemons/random?count=1", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []*model.Pokemon `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
}

func TestRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/v1/pokemons", "/api/v1/pokemons/25", "/api/v1/captures"} {
		w := env.request(t, http.MethodGet, path, nil, false)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestIssueToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/v1/auth/token", gin.H{
		"client_id": "pokedex-web", "client_secret": "s3cret",
	}, false)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data tokenResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.AccessToken)
	assert.Equal(t, "Bearer", resp.Data.TokenType)

	// The issued token must pass the middleware.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/pokemons/25", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Data.AccessToken)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIssueTokenBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/v1/auth/token", gin.H{
		"client_id": "pokedex-web", "client_secret": "wrong",
	}, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterTrainerValidation(t *testing.T) {
	env := newTestEnv(t)

	// Binding rejects a checksum-invalid CPF before the service runs.
	w := env.request(t, http.MethodPost, "/api/v1/trainers", gin.H{
		"name": "Ash", "age": 10, "cpf": "52998224724",
	}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, http.MethodPost, "/api/v1/trainers", gin.H{
		"name": "Ash", "age": 10, "cpf": "529.982.247-25",
	}, true)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterTrainerDuplicate(t *testing.T) {
	env := newTestEnv(t)
	env.trainers.registerErr = service.ErrDuplicateCPF

	w := env.request(t, http.MethodPost, "/api/v1/trainers", gin.H{
		"name": "Ash", "age": 10, "cpf": "529.982.247-25",
	}, true)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterCapture(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/v1/captures", gin.H{
		"trainer_id": 1, "pokemon_id": 25,
	}, true)
	assert.Equal(t, http.StatusOK, w.Code)

	env.captures.registerErr = service.ErrAlreadyCaptured
	w = env.request(t, http.MethodPost, "/api/v1/captures", gin.H{
		"trainer_id": 1, "pokemon_id": 25,
	}, true)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestListCapturesByTrainerPagination(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/v1/trainers/1/captures?page=2&page_size=5", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data service.Page[*model.CaptureDetail] `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Data.Page)
	assert.Equal(t, 5, resp.Data.PageSize)
}

func TestHealthz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l := logger.Noop()

	router := gin.New()
	router.GET("/healthz", NewHealthHandler(map[string]Pinger{
		"postgres": okPinger{},
		"redis":    okPinger{err: errors.New("connection refused")},
	}, l).Healthz)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestUnknownErrorIs500(t *testing.T) {
	env := newTestEnv(t)
	env.captures.registerErr = fmt.Errorf("wrapped: %w", errors.New("boom"))

	w := env.request(t, http.MethodPost, "/api/v1/captures", gin.H{
		"trainer_id": 1, "pokemon_id": 25,
	}, true)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

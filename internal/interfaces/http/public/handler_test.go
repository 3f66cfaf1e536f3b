package public

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sngm3741/storefinder/api/internal/infrastructure/memory"
	"github.com/sngm3741/storefinder/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/storefinder/api/internal/public/application"
	publicdomain "github.com/sngm3741/storefinder/api/internal/public/domain"
)

// asUser injects the X-Test-User header as the authenticated user.
func asUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := r.Header.Get("X-Test-User"); id != "" {
			r = r.WithContext(common.ContextWithUser(r.Context(), common.AuthenticatedUser{ID: id}))
		}
		next.ServeHTTP(w, r)
	})
}

func newRouter(t *testing.T, db *memory.DB, log *zap.Logger) http.Handler {
	t.Helper()
	h := NewHandler(Config{
		Logger:         log,
		StoreQueries:   publicapp.NewStoreQueryService(db.Stores(), db.Reviews()),
		Favorites:      publicapp.NewFavoriteService(db.Users(), db.Stores()),
		ReviewCommands: publicapp.NewReviewCommandService(db.Stores(), db.Reviews()),
		QueryTimeout:   time.Second,
	})
	r := chi.NewRouter()
	h.Register(r, asUser)
	return r
}

func serve(router http.Handler, method, path, user, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestStoreList_RedirectBody(t *testing.T) {
	db := memory.New()
	db.PutStore(publicdomain.Store{Name: "Only", Slug: "only", CreatedAt: time.Now()})
	router := newRouter(t, db, nil)

	rr := serve(router, http.MethodGet, "/stores/page/5", "", "")
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/stores/page/1", rr.Header().Get("Location"))

	var body redirectResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, 1, body.RedirectPage)
	assert.Contains(t, body.Message, "5")
}

func TestRedirectMessage(t *testing.T) {
	beyond := redirectMessage(publicdomain.PagePlan{Reason: publicdomain.RedirectBeyondLast, Requested: "9", RedirectTo: 2})
	below := redirectMessage(publicdomain.PagePlan{Reason: publicdomain.RedirectBelowFirst, Requested: "abc", RedirectTo: 1})

	assert.Contains(t, beyond, "9")
	assert.Contains(t, beyond, "2")
	assert.Contains(t, below, `"abc"`)
	assert.NotEqual(t, beyond, below)
}

func TestAuthenticatedRoutesNeedUser(t *testing.T) {
	router := newRouter(t, memory.New(), nil)

	for _, route := range [][2]string{
		{http.MethodGet, "/hearts"},
		{http.MethodGet, "/auth/verify"},
		{http.MethodPost, "/api/stores/x/heart"},
		{http.MethodPost, "/stores/x/reviews"},
	} {
		rr := serve(router, route[0], route[1], "", "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code, route[1])
	}

	rr := serve(router, http.MethodGet, "/auth/verify", "u1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"id":"u1"`)
	assert.NotContains(t, rr.Body.String(), "heartCount", "no user record yet")
}

func TestAuthVerify_CountsHearts(t *testing.T) {
	db := memory.New()
	store := db.PutStore(publicdomain.Store{Name: "A"})
	db.PutUser(publicdomain.User{ID: "u1", Favorites: publicdomain.NewFavoriteSet(store.ID)})
	router := newRouter(t, db, nil)

	rr := serve(router, http.MethodGet, "/auth/verify", "u1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var body authVerifyResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.NotNil(t, body.HeartCount)
	assert.Equal(t, 1, *body.HeartCount)
}

func TestReviewCreate_RejectsUnknownFields(t *testing.T) {
	db := memory.New()
	store := db.PutStore(publicdomain.Store{Name: "A", Slug: "a"})
	router := newRouter(t, db, nil)

	rr := serve(router, http.MethodPost, "/stores/"+store.ID+"/reviews", "u1", `{"rating":4,"text":"hi","author":"someone-else"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(router, http.MethodPost, "/stores/"+store.ID+"/reviews", "u1", `{"rating":4,"text":"hi"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	var created reviewResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "u1", created.Author)
}

type brokenStores struct {
	*memory.StoreRepository
}

func (brokenStores) TagCounts(context.Context) ([]publicdomain.TagCount, error) {
	return nil, publicdomain.ErrRepositoryUnavailable
}

func TestRepositoryFailureIsLoggedAnd503(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	db := memory.New()
	h := NewHandler(Config{
		Logger:       zap.New(core),
		StoreQueries: publicapp.NewStoreQueryService(brokenStores{db.Stores()}, db.Reviews()),
	})
	r := chi.NewRouter()
	h.Register(r, asUser)

	rr := serve(r, http.MethodGet, "/tags", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "tag list failed", logs.All()[0].Message)
}

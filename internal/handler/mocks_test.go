package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/recipebox/internal/domain"
	"github.com/pkordes/recipebox/internal/handler"
	"github.com/pkordes/recipebox/internal/identity"
)

// mockRecipeServicer is a test double for handler.RecipeServicer.
// Set only the method fields your test needs.
type mockRecipeServicer struct {
	create               func(ctx context.Context, ownerID string, raw domain.Recipe) (domain.Recipe, error)
	listByOwner          func(ctx context.Context, ownerID string) ([]domain.Recipe, error)
	leaderboard          func(ctx context.Context) ([]domain.Recipe, error)
	get                  func(ctx context.Context, id int64) (domain.Recipe, error)
	getForOwner          func(ctx context.Context, ownerID string, id int64) (domain.Recipe, error)
	update               func(ctx context.Context, ownerID string, raw domain.Recipe) (domain.Recipe, error)
	rank                 func(ctx context.Context, ownerID string, id int64, ranking int) (domain.Recipe, error)
	delete               func(ctx context.Context, ownerID string, id int64) error
	addTag               func(ctx context.Context, ownerID string, recipeID, tagID int64) error
	removeTagAssociation func(ctx context.Context, ownerID string, joinID int64) error
	search               func(ctx context.Context, term string) ([]domain.Recipe, error)
}

func (m *mockRecipeServicer) Create(ctx context.Context, ownerID string, raw domain.Recipe) (domain.Recipe, error) {
	return m.create(ctx, ownerID, raw)
}
func (m *mockRecipeServicer) ListByOwner(ctx context.Context, ownerID string) ([]domain.Recipe, error) {
	return m.listByOwner(ctx, ownerID)
}
func (m *mockRecipeServicer) Leaderboard(ctx context.Context) ([]domain.Recipe, error) {
	return m.leaderboard(ctx)
}
func (m *mockRecipeServicer) Get(ctx context.Context, id int64) (domain.Recipe, error) {
	return m.get(ctx, id)
}
func (m *mockRecipeServicer) GetForOwner(ctx context.Context, ownerID string, id int64) (domain.Recipe, error) {
	return m.getForOwner(ctx, ownerID, id)
}
func (m *mockRecipeServicer) Update(ctx context.Context, ownerID string, raw domain.Recipe) (domain.Recipe, error) {
	return m.update(ctx, ownerID, raw)
}
func (m *mockRecipeServicer) Rank(ctx context.Context, ownerID string, id int64, ranking int) (domain.Recipe, error) {
	return m.rank(ctx, ownerID, id, ranking)
}
func (m *mockRecipeServicer) Delete(ctx context.Context, ownerID string, id int64) error {
	return m.delete(ctx, ownerID, id)
}
func (m *mockRecipeServicer) AddTag(ctx context.Context, ownerID string, recipeID, tagID int64) error {
	return m.addTag(ctx, ownerID, recipeID, tagID)
}
func (m *mockRecipeServicer) RemoveTagAssociation(ctx context.Context, ownerID string, joinID int64) error {
	return m.removeTagAssociation(ctx, ownerID, joinID)
}
func (m *mockRecipeServicer) Search(ctx context.Context, term string) ([]domain.Recipe, error) {
	return m.search(ctx, term)
}

// mockTagServicer is a test double for handler.TagServicer.
type mockTagServicer struct {
	list func(ctx context.Context) ([]domain.Tag, error)
}

func (m *mockTagServicer) List(ctx context.Context) ([]domain.Tag, error) {
	return m.list(ctx)
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.RecipeServicer = (*mockRecipeServicer)(nil)
	_ handler.TagServicer    = (*mockTagServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

const alice = "user-alice"

// asUser stands in for the auth middleware: it places userID in the request
// context, or nothing when userID is empty.
func asUser(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID != "" {
				r = r.WithContext(identity.WithUser(r.Context(), domain.User{ID: userID}))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// newHTTPHandler wires a Server with the given mocks into its router, with
// alice signed in. This mirrors how main.go wires it in production.
func newHTTPHandler(t *testing.T, recipes handler.RecipeServicer, tags handler.TagServicer) http.Handler {
	t.Helper()
	return newHTTPHandlerAs(t, alice, recipes, tags)
}

func newHTTPHandlerAs(t *testing.T, userID string, recipes handler.RecipeServicer, tags handler.TagServicer) http.Handler {
	t.Helper()
	srv, err := handler.NewServer(recipes, tags, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return srv.Routes(asUser(userID))
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func postForm(h http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func recipeFixture() domain.Recipe {
	return domain.Recipe{
		ID:          5,
		OwnerID:     alice,
		Name:        "Omelette",
		Ingredients: "eggs, butter",
		Ranking:     1,
	}
}

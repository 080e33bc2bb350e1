package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/recipebox/internal/domain"
	"github.com/pkordes/recipebox/internal/repo"
	"github.com/pkordes/recipebox/testutil"
)

// testRepos bundles every repo over one transaction so a test can build a
// full user → recipe → tag hierarchy that is rolled back afterwards.
type testRepos struct {
	tx      pgx.Tx
	recipes repo.RecipeRepo
	tags    repo.TagRepo
	users   repo.UserRepo
}

func newTestRepos(t *testing.T) testRepos {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return testRepos{
		tx:      tx,
		recipes: repo.NewRecipeRepo(tx),
		tags:    repo.NewTagRepo(tx),
		users:   repo.NewUserRepo(tx),
	}
}

// newOwner registers a fresh user id and returns it.
func (r testRepos) newOwner(t *testing.T) string {
	t.Helper()
	id := "user-" + uuid.NewString()
	require.NoError(t, r.users.Ensure(context.Background(), id))
	return id
}

// mustCreateRecipe inserts a recipe for owner and returns the persisted row.
func (r testRepos) mustCreateRecipe(t *testing.T, owner, name, ingredients string, ranking int) domain.Recipe {
	t.Helper()
	got, err := r.recipes.Create(context.Background(), domain.Recipe{
		OwnerID:      owner,
		Name:         name,
		Ingredients:  ingredients,
		Instructions: "cook it",
		Ranking:      ranking,
	})
	require.NoError(t, err)
	return got
}

// mustCreateTag inserts a tag directly; the application never creates tags.
func (r testRepos) mustCreateTag(t *testing.T, cuisine string) domain.Tag {
	t.Helper()
	tag := domain.Tag{Cuisine: cuisine + " " + uuid.NewString()[:8]}
	err := r.tx.QueryRow(context.Background(),
		`INSERT INTO tags (cuisine) VALUES ($1) RETURNING id`, tag.Cuisine).Scan(&tag.ID)
	require.NoError(t, err)
	return tag
}

func recipeIDs(recipes []domain.Recipe) []int64 {
	ids := make([]int64, len(recipes))
	for i, r := range recipes {
		ids[i] = r.ID
	}
	return ids
}

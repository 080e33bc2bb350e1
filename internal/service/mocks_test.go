package service_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/pkordes/recipebox/internal/domain"
	"github.com/pkordes/recipebox/internal/repo"
)

// mockRecipeRepo is a hand-written test double for repo.RecipeRepo.
// Each method is a function field; set only the ones your test needs.
type mockRecipeRepo struct {
	listByOwner         func(ctx context.Context, ownerID string) ([]domain.Recipe, error)
	listAllByRanking    func(ctx context.Context) ([]domain.Recipe, error)
	getByID             func(ctx context.Context, id int64) (domain.Recipe, error)
	getByIDWithTags     func(ctx context.Context, id int64) (domain.Recipe, error)
	create              func(ctx context.Context, recipe domain.Recipe) (domain.Recipe, error)
	update              func(ctx context.Context, recipe domain.Recipe) (domain.Recipe, error)
	updateRanking       func(ctx context.Context, ownerID string, id int64, ranking int) (domain.Recipe, error)
	delete              func(ctx context.Context, ownerID string, id int64) error
	searchByIngredients func(ctx context.Context, text string) ([]domain.Recipe, error)
}

func (m *mockRecipeRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Recipe, error) {
	return m.listByOwner(ctx, ownerID)
}
func (m *mockRecipeRepo) ListAllByRanking(ctx context.Context) ([]domain.Recipe, error) {
	return m.listAllByRanking(ctx)
}
func (m *mockRecipeRepo) GetByID(ctx context.Context, id int64) (domain.Recipe, error) {
	return m.getByID(ctx, id)
}
func (m *mockRecipeRepo) GetByIDWithTags(ctx context.Context, id int64) (domain.Recipe, error) {
	return m.getByIDWithTags(ctx, id)
}
func (m *mockRecipeRepo) Create(ctx context.Context, recipe domain.Recipe) (domain.Recipe, error) {
	return m.create(ctx, recipe)
}
func (m *mockRecipeRepo) Update(ctx context.Context, recipe domain.Recipe) (domain.Recipe, error) {
	return m.update(ctx, recipe)
}
func (m *mockRecipeRepo) UpdateRanking(ctx context.Context, ownerID string, id int64, ranking int) (domain.Recipe, error) {
	return m.updateRanking(ctx, ownerID, id, ranking)
}
func (m *mockRecipeRepo) Delete(ctx context.Context, ownerID string, id int64) error {
	return m.delete(ctx, ownerID, id)
}
func (m *mockRecipeRepo) SearchByIngredients(ctx context.Context, text string) ([]domain.Recipe, error) {
	return m.searchByIngredients(ctx, text)
}

// mockTagRepo is a hand-written test double for repo.TagRepo.
type mockTagRepo struct {
	list             func(ctx context.Context) ([]domain.Tag, error)
	getByID          func(ctx context.Context, id int64) (domain.Tag, error)
	findOnRecipe     func(ctx context.Context, recipeID, tagID int64) (domain.RecipeTag, bool, error)
	addToRecipe      func(ctx context.Context, recipeID, tagID int64) error
	removeFromRecipe func(ctx context.Context, ownerID string, joinID int64) (bool, error)
	listByRecipe     func(ctx context.Context, recipeID int64) ([]domain.RecipeTag, error)
}

func (m *mockTagRepo) List(ctx context.Context) ([]domain.Tag, error) {
	return m.list(ctx)
}
func (m *mockTagRepo) GetByID(ctx context.Context, id int64) (domain.Tag, error) {
	return m.getByID(ctx, id)
}
func (m *mockTagRepo) FindOnRecipe(ctx context.Context, recipeID, tagID int64) (domain.RecipeTag, bool, error) {
	return m.findOnRecipe(ctx, recipeID, tagID)
}
func (m *mockTagRepo) AddToRecipe(ctx context.Context, recipeID, tagID int64) error {
	return m.addToRecipe(ctx, recipeID, tagID)
}
func (m *mockTagRepo) RemoveFromRecipe(ctx context.Context, ownerID string, joinID int64) (bool, error) {
	return m.removeFromRecipe(ctx, ownerID, joinID)
}
func (m *mockTagRepo) ListByRecipe(ctx context.Context, recipeID int64) ([]domain.RecipeTag, error) {
	return m.listByRecipe(ctx, recipeID)
}

// mockUserRepo records every id passed to Ensure.
type mockUserRepo struct {
	ensured []string
	err     error
}

func (m *mockUserRepo) Ensure(_ context.Context, id string) error {
	m.ensured = append(m.ensured, id)
	return m.err
}

// compile-time checks: the mocks must satisfy the repo interfaces.
var (
	_ repo.RecipeRepo = (*mockRecipeRepo)(nil)
	_ repo.TagRepo    = (*mockTagRepo)(nil)
	_ repo.UserRepo   = (*mockUserRepo)(nil)
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

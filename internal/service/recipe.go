// Package service contains the business logic for RecipeBox.
// Services validate inputs, enforce ownership and tag-association rules, and
// orchestrate repo calls. No SQL lives here; services depend on repo
// interfaces, not implementations.
//
// Every operation that acts on behalf of a user takes that user's id as an
// explicit argument; services never read identity from the context.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkordes/recipebox/internal/domain"
	"github.com/pkordes/recipebox/internal/repo"
	"github.com/pkordes/recipebox/internal/validation"
)

// RecipeService implements business logic for recipes and their tag links.
// It holds the tag and user repos because creating a recipe registers its
// owner and tag operations are scoped to an owned recipe.
type RecipeService struct {
	recipes  repo.RecipeRepo
	tags     repo.TagRepo
	users    repo.UserRepo
	validate *validation.Validator
	log      *slog.Logger
}

// NewRecipeService constructs a RecipeService backed by the provided repos.
func NewRecipeService(recipes repo.RecipeRepo, tags repo.TagRepo, users repo.UserRepo, v *validation.Validator, log *slog.Logger) *RecipeService {
	return &RecipeService{recipes: recipes, tags: tags, users: users, validate: v, log: log}
}

// Create validates raw and persists it with ownerID as the owner.
// Returns a *domain.ValidationError (matching domain.ErrValidation) without
// touching the store when a field constraint fails.
func (s *RecipeService) Create(ctx context.Context, ownerID string, raw domain.Recipe) (domain.Recipe, error) {
	recipe := normalize(raw)
	if err := s.validate.Validate(recipe); err != nil {
		return domain.Recipe{}, err
	}

	if err := s.users.Ensure(ctx, ownerID); err != nil {
		return domain.Recipe{}, fmt.Errorf("service.RecipeService.Create: %w", err)
	}

	recipe.ID = 0
	recipe.OwnerID = ownerID
	created, err := s.recipes.Create(ctx, recipe)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("service.RecipeService.Create: %w", err)
	}
	return created, nil
}

// ListByOwner returns the caller's own recipes ordered by ranking.
// Always returns a non-nil slice so callers can safely range over it.
func (s *RecipeService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Recipe, error) {
	recipes, err := s.recipes.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("service.RecipeService.ListByOwner: %w", err)
	}
	return nonNil(recipes), nil
}

// Leaderboard returns every user's recipes ordered by ranking.
func (s *RecipeService) Leaderboard(ctx context.Context) ([]domain.Recipe, error) {
	recipes, err := s.recipes.ListAllByRanking(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.RecipeService.Leaderboard: %w", err)
	}
	return nonNil(recipes), nil
}

// Get returns a recipe with its tag links for display.
// Returns domain.ErrNotFound if the recipe does not exist.
func (s *RecipeService) Get(ctx context.Context, id int64) (domain.Recipe, error) {
	recipe, err := s.recipes.GetByIDWithTags(ctx, id)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("service.RecipeService.Get: %w", err)
	}
	return recipe, nil
}

// GetForOwner returns a recipe without tags for the edit and delete forms.
// A recipe owned by someone else is reported as domain.ErrNotFound.
func (s *RecipeService) GetForOwner(ctx context.Context, ownerID string, id int64) (domain.Recipe, error) {
	recipe, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("service.RecipeService.GetForOwner: %w", err)
	}
	if recipe.OwnerID != ownerID {
		return domain.Recipe{}, fmt.Errorf("service.RecipeService.GetForOwner: %w", domain.ErrNotFound)
	}
	return recipe, nil
}

// Update validates and replaces the editable fields of an owned recipe.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if the
// recipe does not exist or is not owned by ownerID.
func (s *RecipeService) Update(ctx context.Context, ownerID string, raw domain.Recipe) (domain.Recipe, error) {
	recipe := normalize(raw)
	if err := s.validate.Validate(recipe); err != nil {
		return domain.Recipe{}, err
	}

	recipe.OwnerID = ownerID
	updated, err := s.recipes.Update(ctx, recipe)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("service.RecipeService.Update: %w", err)
	}
	return updated, nil
}

// Rank changes only the ranking of an owned recipe.
// The ranking must fit the same bounds Create and Update enforce.
func (s *RecipeService) Rank(ctx context.Context, ownerID string, id int64, ranking int) (domain.Recipe, error) {
	if err := s.validate.ValidateField("ranking", ranking, "gte=0,lte=2147483647"); err != nil {
		return domain.Recipe{}, err
	}

	updated, err := s.recipes.UpdateRanking(ctx, ownerID, id, ranking)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("service.RecipeService.Rank: %w", err)
	}
	return updated, nil
}

// Delete removes an owned recipe together with its tag links.
// Returns domain.ErrNotFound if the recipe does not exist or is not owned.
func (s *RecipeService) Delete(ctx context.Context, ownerID string, id int64) error {
	if err := s.recipes.Delete(ctx, ownerID, id); err != nil {
		return fmt.Errorf("service.RecipeService.Delete: %w", err)
	}
	return nil
}

// AddTag links tagID to an owned recipe.
// It is a no-op when tagID is domain.NoTag or the link already exists.
// Returns domain.ErrNotFound if the recipe is missing or not owned, or if the
// tag does not exist.
func (s *RecipeService) AddTag(ctx context.Context, ownerID string, recipeID, tagID int64) error {
	if tagID == domain.NoTag {
		s.log.DebugContext(ctx, "add tag: no tag selected", "recipe_id", recipeID)
		return nil
	}

	if _, err := s.GetForOwner(ctx, ownerID, recipeID); err != nil {
		return fmt.Errorf("service.RecipeService.AddTag: %w", err)
	}

	_, found, err := s.tags.FindOnRecipe(ctx, recipeID, tagID)
	if err != nil {
		return fmt.Errorf("service.RecipeService.AddTag: %w", err)
	}
	if found {
		s.log.DebugContext(ctx, "add tag: already linked", "recipe_id", recipeID, "tag_id", tagID)
		return nil
	}

	if _, err := s.tags.GetByID(ctx, tagID); err != nil {
		return fmt.Errorf("service.RecipeService.AddTag: tag: %w", err)
	}

	if err := s.tags.AddToRecipe(ctx, recipeID, tagID); err != nil {
		return fmt.Errorf("service.RecipeService.AddTag: %w", err)
	}
	return nil
}

// RemoveTagAssociation deletes the link joinID from one of ownerID's recipes.
// A link that does not exist (or belongs to another user) is left alone and
// the call still succeeds.
func (s *RecipeService) RemoveTagAssociation(ctx context.Context, ownerID string, joinID int64) error {
	removed, err := s.tags.RemoveFromRecipe(ctx, ownerID, joinID)
	if err != nil {
		return fmt.Errorf("service.RecipeService.RemoveTagAssociation: %w", err)
	}
	if !removed {
		s.log.DebugContext(ctx, "remove tag link: nothing to remove", "join_id", joinID)
	}
	return nil
}

// Search returns every recipe whose ingredients contain term, ignoring case.
// A blank term matches nothing and does not reach the store.
func (s *RecipeService) Search(ctx context.Context, term string) ([]domain.Recipe, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []domain.Recipe{}, nil
	}

	recipes, err := s.recipes.SearchByIngredients(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("service.RecipeService.Search: %w", err)
	}
	return nonNil(recipes), nil
}

// normalize trims user-supplied text so whitespace-only fields fail the
// required constraint.
func normalize(r domain.Recipe) domain.Recipe {
	r.Name = strings.TrimSpace(r.Name)
	r.Ingredients = strings.TrimSpace(r.Ingredients)
	r.Instructions = strings.TrimSpace(r.Instructions)
	r.Tags = nil
	return r
}

func nonNil(recipes []domain.Recipe) []domain.Recipe {
	if recipes == nil {
		return []domain.Recipe{}
	}
	return recipes
}

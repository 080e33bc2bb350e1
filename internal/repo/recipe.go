package repo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/pkordes/recipebox/internal/domain"
)

// RecipeRepo defines the persistence operations for Recipes.
// Writes are scoped by owner: a row owned by someone else is reported as
// domain.ErrNotFound, exactly like a missing row.
type RecipeRepo interface {
	// ListByOwner returns every recipe owned by ownerID, ordered by ranking.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Recipe, error)

	// ListAllByRanking returns every recipe in the store ordered by ranking
	// ascending, regardless of owner.
	ListAllByRanking(ctx context.Context) ([]domain.Recipe, error)

	// GetByID returns a single recipe without its tags.
	// Returns domain.ErrNotFound if no recipe with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Recipe, error)

	// GetByIDWithTags returns a single recipe with Tags populated.
	// Returns domain.ErrNotFound if no recipe with that ID exists.
	GetByIDWithTags(ctx context.Context, id int64) (domain.Recipe, error)

	// Create inserts a new recipe and returns it with id and timestamps set.
	Create(ctx context.Context, recipe domain.Recipe) (domain.Recipe, error)

	// Update overwrites name, ingredients, instructions and ranking of the
	// recipe identified by recipe.ID and recipe.OwnerID.
	Update(ctx context.Context, recipe domain.Recipe) (domain.Recipe, error)

	// UpdateRanking changes only the ranking of an owned recipe.
	UpdateRanking(ctx context.Context, ownerID string, id int64, ranking int) (domain.Recipe, error)

	// Delete removes an owned recipe; its tag links are removed by cascade.
	Delete(ctx context.Context, ownerID string, id int64) error

	// SearchByIngredients returns every recipe whose ingredients contain text,
	// ignoring case, ordered by ranking.
	SearchByIngredients(ctx context.Context, text string) ([]domain.Recipe, error)
}

// pgRecipeRepo is the Postgres implementation of RecipeRepo.
type pgRecipeRepo struct {
	db db
}

// NewRecipeRepo constructs a RecipeRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewRecipeRepo(db db) RecipeRepo {
	return &pgRecipeRepo{db: db}
}

const recipeReturning = `RETURNING id, owner_id, name, ingredients, instructions, ranking, created_at, updated_at`

// selectRecipes is the base query shared by every list operation.
func selectRecipes() sq.SelectBuilder {
	return psql.
		Select("id", "owner_id", "name", "ingredients", "instructions", "ranking", "created_at", "updated_at").
		From("recipes").
		OrderBy("ranking", "id")
}

func (r *pgRecipeRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Recipe, error) {
	return r.list(ctx, "ListByOwner", selectRecipes().Where(sq.Eq{"owner_id": ownerID}))
}

func (r *pgRecipeRepo) ListAllByRanking(ctx context.Context) ([]domain.Recipe, error) {
	return r.list(ctx, "ListAllByRanking", selectRecipes())
}

// SearchByIngredients uses strpos on lowered text so that LIKE wildcards in
// the search term are matched literally.
func (r *pgRecipeRepo) SearchByIngredients(ctx context.Context, text string) ([]domain.Recipe, error) {
	q := selectRecipes().Where("strpos(lower(ingredients), lower(?)) > 0", text)
	return r.list(ctx, "SearchByIngredients", q)
}

func (r *pgRecipeRepo) GetByID(ctx context.Context, id int64) (domain.Recipe, error) {
	q, args, err := selectRecipes().Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("repo.RecipeRepo.GetByID: build: %w", err)
	}

	result, err := scanRecipe(r.db.QueryRow(ctx, q, args...))
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("repo.RecipeRepo.GetByID: %w", err)
	}
	return result, nil
}

// GetByIDWithTags fetches the recipe, then attaches its links in a second
// query rather than widening the row set with a join.
func (r *pgRecipeRepo) GetByIDWithTags(ctx context.Context, id int64) (domain.Recipe, error) {
	recipe, err := r.GetByID(ctx, id)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("repo.RecipeRepo.GetByIDWithTags: %w", err)
	}

	tags, err := listRecipeTags(ctx, r.db, id)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("repo.RecipeRepo.GetByIDWithTags: %w", err)
	}
	recipe.Tags = tags
	return recipe, nil
}

func (r *pgRecipeRepo) Create(ctx context.Context, recipe domain.Recipe) (domain.Recipe, error) {
	const q = `
		INSERT INTO recipes (owner_id, name, ingredients, instructions, ranking)
		VALUES (@owner_id, @name, @ingredients, @instructions, @ranking)
		` + recipeReturning

	args := pgx.NamedArgs{
		"owner_id":     recipe.OwnerID,
		"name":         recipe.Name,
		"ingredients":  recipe.Ingredients,
		"instructions": recipe.Instructions,
		"ranking":      recipe.Ranking,
	}

	result, err := scanRecipe(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("repo.RecipeRepo.Create: %w", err)
	}
	return result, nil
}

// Update never touches owner_id; the owner only selects the row.
func (r *pgRecipeRepo) Update(ctx context.Context, recipe domain.Recipe) (domain.Recipe, error) {
	const q = `
		UPDATE recipes
		SET name         = @name,
		    ingredients  = @ingredients,
		    instructions = @instructions,
		    ranking      = @ranking,
		    updated_at   = now()
		WHERE id = @id AND owner_id = @owner_id
		` + recipeReturning

	args := pgx.NamedArgs{
		"id":           recipe.ID,
		"owner_id":     recipe.OwnerID,
		"name":         recipe.Name,
		"ingredients":  recipe.Ingredients,
		"instructions": recipe.Instructions,
		"ranking":      recipe.Ranking,
	}

	result, err := scanRecipe(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("repo.RecipeRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgRecipeRepo) UpdateRanking(ctx context.Context, ownerID string, id int64, ranking int) (domain.Recipe, error) {
	const q = `
		UPDATE recipes
		SET ranking = @ranking, updated_at = now()
		WHERE id = @id AND owner_id = @owner_id
		` + recipeReturning

	args := pgx.NamedArgs{"id": id, "owner_id": ownerID, "ranking": ranking}

	result, err := scanRecipe(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("repo.RecipeRepo.UpdateRanking: %w", err)
	}
	return result, nil
}

func (r *pgRecipeRepo) Delete(ctx context.Context, ownerID string, id int64) error {
	const q = `DELETE FROM recipes WHERE id = @id AND owner_id = @owner_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("repo.RecipeRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.RecipeRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// list runs a built select and collects the rows. The result is never nil.
func (r *pgRecipeRepo) list(ctx context.Context, op string, b sq.SelectBuilder) ([]domain.Recipe, error) {
	q, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("repo.RecipeRepo.%s: build: %w", op, err)
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("repo.RecipeRepo.%s: %w", op, err)
	}
	defer rows.Close()

	recipes := []domain.Recipe{}
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.RecipeRepo.%s: scan: %w", op, err)
		}
		recipes = append(recipes, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.RecipeRepo.%s: rows: %w", op, err)
	}
	return recipes, nil
}

// scanRecipe maps a single database row into a domain.Recipe.
// Column order must match selectRecipes and recipeReturning.
func scanRecipe(s scanner) (domain.Recipe, error) {
	var rec domain.Recipe
	err := s.Scan(&rec.ID, &rec.OwnerID, &rec.Name, &rec.Ingredients, &rec.Instructions,
		&rec.Ranking, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Recipe{}, domain.ErrNotFound
		}
		return domain.Recipe{}, err
	}
	return rec, nil
}

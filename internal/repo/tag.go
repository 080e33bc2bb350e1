package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/recipebox/internal/domain"
)

// TagRepo defines the persistence operations for Tags and the recipe_tags join table.
type TagRepo interface {
	// List returns every tag ordered by cuisine.
	List(ctx context.Context) ([]domain.Tag, error)

	// GetByID returns a single tag.
	// Returns domain.ErrNotFound if no tag with that ID exists.
	GetByID(ctx context.Context, id int64) (domain.Tag, error)

	// FindOnRecipe looks up the link between recipeID and tagID.
	// found is false when the recipe does not carry the tag.
	FindOnRecipe(ctx context.Context, recipeID, tagID int64) (link domain.RecipeTag, found bool, err error)

	// AddToRecipe links a tag to a recipe. Idempotent: no error if already linked.
	AddToRecipe(ctx context.Context, recipeID, tagID int64) error

	// RemoveFromRecipe deletes the link with id joinID if it belongs to a
	// recipe owned by ownerID. removed is false when nothing matched.
	RemoveFromRecipe(ctx context.Context, ownerID string, joinID int64) (removed bool, err error)

	// ListByRecipe returns every link on a recipe with its Tag attached,
	// ordered by cuisine.
	ListByRecipe(ctx context.Context, recipeID int64) ([]domain.RecipeTag, error)
}

// pgTagRepo is the Postgres implementation of TagRepo.
type pgTagRepo struct {
	db db
}

// NewTagRepo constructs a TagRepo backed by the provided db connection.
func NewTagRepo(db db) TagRepo {
	return &pgTagRepo{db: db}
}

func (r *pgTagRepo) List(ctx context.Context) ([]domain.Tag, error) {
	const q = `SELECT id, cuisine FROM tags ORDER BY cuisine`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.List: %w", err)
	}
	defer rows.Close()

	tags := []domain.Tag{}
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TagRepo.List: scan: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TagRepo.List: rows: %w", err)
	}
	return tags, nil
}

func (r *pgTagRepo) GetByID(ctx context.Context, id int64) (domain.Tag, error) {
	const q = `SELECT id, cuisine FROM tags WHERE id = @id`

	tag, err := scanTag(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Tag{}, fmt.Errorf("repo.TagRepo.GetByID: %w", err)
	}
	return tag, nil
}

func (r *pgTagRepo) FindOnRecipe(ctx context.Context, recipeID, tagID int64) (domain.RecipeTag, bool, error) {
	const q = `
		SELECT rt.id, rt.recipe_id, rt.tag_id, t.id, t.cuisine
		FROM recipe_tags rt
		JOIN tags t ON t.id = rt.tag_id
		WHERE rt.recipe_id = @recipe_id AND rt.tag_id = @tag_id`

	link, err := scanRecipeTag(r.db.QueryRow(ctx, q, pgx.NamedArgs{"recipe_id": recipeID, "tag_id": tagID}))
	if errors.Is(err, domain.ErrNotFound) {
		return domain.RecipeTag{}, false, nil
	}
	if err != nil {
		return domain.RecipeTag{}, false, fmt.Errorf("repo.TagRepo.FindOnRecipe: %w", err)
	}
	return link, true, nil
}

// AddToRecipe links a tag to a recipe. The unique (recipe_id, tag_id)
// constraint makes concurrent duplicate adds collapse to one row.
func (r *pgTagRepo) AddToRecipe(ctx context.Context, recipeID, tagID int64) error {
	const q = `
		INSERT INTO recipe_tags (recipe_id, tag_id)
		VALUES (@recipe_id, @tag_id)
		ON CONFLICT (recipe_id, tag_id) DO NOTHING`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{"recipe_id": recipeID, "tag_id": tagID})
	if err != nil {
		return fmt.Errorf("repo.TagRepo.AddToRecipe: %w", err)
	}
	return nil
}

func (r *pgTagRepo) RemoveFromRecipe(ctx context.Context, ownerID string, joinID int64) (bool, error) {
	const q = `
		DELETE FROM recipe_tags rt
		USING recipes r
		WHERE rt.id = @id
		  AND r.id = rt.recipe_id
		  AND r.owner_id = @owner_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": joinID, "owner_id": ownerID})
	if err != nil {
		return false, fmt.Errorf("repo.TagRepo.RemoveFromRecipe: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *pgTagRepo) ListByRecipe(ctx context.Context, recipeID int64) ([]domain.RecipeTag, error) {
	links, err := listRecipeTags(ctx, r.db, recipeID)
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.ListByRecipe: %w", err)
	}
	return links, nil
}

// listRecipeTags is shared with RecipeRepo.GetByIDWithTags.
func listRecipeTags(ctx context.Context, db db, recipeID int64) ([]domain.RecipeTag, error) {
	const q = `
		SELECT rt.id, rt.recipe_id, rt.tag_id, t.id, t.cuisine
		FROM recipe_tags rt
		JOIN tags t ON t.id = rt.tag_id
		WHERE rt.recipe_id = @recipe_id
		ORDER BY t.cuisine`

	rows, err := db.Query(ctx, q, pgx.NamedArgs{"recipe_id": recipeID})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := []domain.RecipeTag{}
	for rows.Next() {
		link, err := scanRecipeTag(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return links, nil
}

// scanTag maps a single database row into a domain.Tag.
func scanTag(s scanner) (domain.Tag, error) {
	var t domain.Tag
	if err := s.Scan(&t.ID, &t.Cuisine); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Tag{}, domain.ErrNotFound
		}
		return domain.Tag{}, err
	}
	return t, nil
}

// scanRecipeTag maps a recipe_tags row joined with its tag.
func scanRecipeTag(s scanner) (domain.RecipeTag, error) {
	var rt domain.RecipeTag
	if err := s.Scan(&rt.ID, &rt.RecipeID, &rt.TagID, &rt.Tag.ID, &rt.Tag.Cuisine); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.RecipeTag{}, domain.ErrNotFound
		}
		return domain.RecipeTag{}, err
	}
	return rt, nil
}

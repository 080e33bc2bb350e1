// Package handler implements the HTTP handlers for RecipeBox.
// All handlers are methods on Server. Methods are split into domain-specific
// files (recipe.go, tag.go, health.go) but share the same Server struct so
// they can access its dependencies.
//
// Pages are rendered server-side from the embedded templates; every
// state-changing request answers with a 303 redirect.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/recipebox/internal/domain"
)

// RecipeServicer defines the business operations the recipe handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type RecipeServicer interface {
	Create(ctx context.Context, ownerID string, raw domain.Recipe) (domain.Recipe, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Recipe, error)
	Leaderboard(ctx context.Context) ([]domain.Recipe, error)
	Get(ctx context.Context, id int64) (domain.Recipe, error)
	GetForOwner(ctx context.Context, ownerID string, id int64) (domain.Recipe, error)
	Update(ctx context.Context, ownerID string, raw domain.Recipe) (domain.Recipe, error)
	Rank(ctx context.Context, ownerID string, id int64, ranking int) (domain.Recipe, error)
	Delete(ctx context.Context, ownerID string, id int64) error
	AddTag(ctx context.Context, ownerID string, recipeID, tagID int64) error
	RemoveTagAssociation(ctx context.Context, ownerID string, joinID int64) error
	Search(ctx context.Context, term string) ([]domain.Recipe, error)
}

// TagServicer defines the tag operations the add-tag form depends on.
type TagServicer interface {
	List(ctx context.Context) ([]domain.Tag, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	recipes RecipeServicer
	tags    TagServicer
	views   views
	log     *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// It fails only if the embedded templates do not parse.
func NewServer(recipes RecipeServicer, tags TagServicer, log *slog.Logger) (*Server, error) {
	v, err := parseViews()
	if err != nil {
		return nil, err
	}
	return &Server{recipes: recipes, tags: tags, views: v, log: log}, nil
}

// Routes returns the router for the whole HTTP surface.
// requireUser guards everything under /recipes; /healthz stays public.
func (s *Server) Routes(requireUser func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)

	r.Route("/recipes", func(r chi.Router) {
		r.Use(requireUser)

		r.Get("/", s.ListRecipes)
		r.Post("/", s.CreateRecipe)
		r.Get("/new", s.NewRecipeForm)
		r.Get("/ranking", s.Leaderboard)
		r.Get("/search", s.SearchRedirect)
		r.Post("/search", s.SearchRecipes)
		r.Post("/tags/{joinId}/delete", s.RemoveTag)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetRecipe)
			r.Get("/edit", s.EditRecipeForm)
			r.Post("/edit", s.UpdateRecipe)
			r.Post("/ranking", s.RankRecipe)
			r.Get("/delete", s.DeleteRecipeForm)
			r.Post("/delete", s.DeleteRecipe)
			r.Get("/tags/new", s.AddTagForm)
			r.Post("/tags", s.AddTag)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, http.StatusNotFound, "notfound", page{Title: "Not found"})
	})

	return r
}

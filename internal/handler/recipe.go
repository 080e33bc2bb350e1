package handler

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/pkordes/recipebox/internal/domain"
)

// ListRecipes handles GET /recipes.
// With a ?search= query parameter it behaves like SearchRecipes.
func (s *Server) ListRecipes(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query(); q.Has("search") {
		s.renderSearch(w, r, q.Get("search"))
		return
	}

	owner, ok := s.owner(w, r)
	if !ok {
		return
	}

	recipes, err := s.recipes.ListByOwner(r.Context(), owner)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "index", page{Title: "My recipes", Recipes: recipes})
}

// Leaderboard handles GET /recipes/ranking.
func (s *Server) Leaderboard(w http.ResponseWriter, r *http.Request) {
	recipes, err := s.recipes.Leaderboard(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "index", page{Title: "Ranking", Recipes: recipes, ShowOwner: true})
}

// NewRecipeForm handles GET /recipes/new.
func (s *Server) NewRecipeForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "form", page{Title: "New recipe", Action: "/recipes"})
}

// CreateRecipe handles POST /recipes.
func (s *Server) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		s.badRequest(w, r, err)
		return
	}

	form := page{Title: "New recipe", Action: "/recipes"}
	rec, err := recipeFromForm(r)
	if err == nil {
		_, err = s.recipes.Create(r.Context(), owner, rec)
	}
	if err != nil {
		form.Recipe = rec
		s.formError(w, r, form, err)
		return
	}

	seeOther(w, r, "/recipes")
}

// GetRecipe handles GET /recipes/{id}.
func (s *Server) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	rec, err := s.recipes.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "details", page{Title: rec.Name, Recipe: rec})
}

// EditRecipeForm handles GET /recipes/{id}/edit.
func (s *Server) EditRecipeForm(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := s.ownerAndID(w, r, "id")
	if !ok {
		return
	}

	rec, err := s.recipes.GetForOwner(r.Context(), owner, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "form", page{Title: "Edit " + rec.Name, Action: editURL(id), Recipe: rec})
}

// UpdateRecipe handles POST /recipes/{id}/edit.
func (s *Server) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := s.ownerAndID(w, r, "id")
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		s.badRequest(w, r, err)
		return
	}

	form := page{Title: "Edit recipe", Action: editURL(id)}
	rec, err := recipeFromForm(r)
	rec.ID = id
	if err == nil {
		_, err = s.recipes.Update(r.Context(), owner, rec)
	}
	if err != nil {
		form.Recipe = rec
		s.formError(w, r, form, err)
		return
	}

	seeOther(w, r, "/recipes")
}

// RankRecipe handles POST /recipes/{id}/ranking.
// Validation failures re-render the detail page with the message.
func (s *Server) RankRecipe(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := s.ownerAndID(w, r, "id")
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		s.badRequest(w, r, err)
		return
	}

	var err error
	ranking := -1
	if r.PostForm.Get("ranking") == "" {
		err = domain.NewValidationError("ranking", "is required")
	} else if bindErr := formInt(r, "ranking", &ranking); bindErr != nil {
		err = domain.NewValidationError("ranking", "must be a whole number")
	}
	if err == nil {
		_, err = s.recipes.Rank(r.Context(), owner, id, ranking)
	}
	if err == nil {
		seeOther(w, r, "/recipes/ranking")
		return
	}

	fields, isValidation := fieldErrors(err)
	if !isValidation {
		s.fail(w, r, err)
		return
	}
	// Someone else's recipe is 404 whether or not the input was valid.
	if _, getErr := s.recipes.GetForOwner(r.Context(), owner, id); getErr != nil {
		s.fail(w, r, getErr)
		return
	}
	rec, getErr := s.recipes.Get(r.Context(), id)
	if getErr != nil {
		s.fail(w, r, getErr)
		return
	}
	s.render(w, r, http.StatusUnprocessableEntity, "details", page{Title: rec.Name, Recipe: rec, Errors: fields})
}

// DeleteRecipeForm handles GET /recipes/{id}/delete.
func (s *Server) DeleteRecipeForm(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := s.ownerAndID(w, r, "id")
	if !ok {
		return
	}

	rec, err := s.recipes.GetForOwner(r.Context(), owner, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "delete", page{Title: "Delete " + rec.Name, Recipe: rec})
}

// DeleteRecipe handles POST /recipes/{id}/delete.
func (s *Server) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := s.ownerAndID(w, r, "id")
	if !ok {
		return
	}

	if err := s.recipes.Delete(r.Context(), owner, id); err != nil {
		s.fail(w, r, err)
		return
	}
	seeOther(w, r, "/recipes")
}

// SearchRedirect handles GET /recipes/search, sending the term on to the
// GET /recipes?search= listing.
func (s *Server) SearchRedirect(w http.ResponseWriter, r *http.Request) {
	q := url.Values{"search": {r.URL.Query().Get("search")}}
	http.Redirect(w, r, "/recipes?"+q.Encode(), http.StatusSeeOther)
}

// SearchRecipes handles POST /recipes/search.
func (s *Server) SearchRecipes(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.badRequest(w, r, err)
		return
	}
	s.renderSearch(w, r, r.PostForm.Get("search"))
}

func (s *Server) renderSearch(w http.ResponseWriter, r *http.Request, term string) {
	recipes, err := s.recipes.Search(r.Context(), term)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "index", page{
		Title:     "Search results",
		Recipes:   recipes,
		Search:    term,
		ShowOwner: true,
	})
}

// formError re-renders a form with field messages on a validation failure
// and falls through to fail for everything else.
func (s *Server) formError(w http.ResponseWriter, r *http.Request, form page, err error) {
	fields, ok := fieldErrors(err)
	if !ok {
		s.fail(w, r, err)
		return
	}
	form.Errors = fields
	s.render(w, r, http.StatusUnprocessableEntity, "form", form)
}

// owner returns the caller's id. The auth middleware guarantees one on every
// /recipes route; a missing id renders 401 rather than reaching a service.
func (s *Server) owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := userID(r)
	if !ok {
		s.render(w, r, http.StatusUnauthorized, "error", page{Title: "Unauthorized", Message: "Sign in to continue."})
	}
	return id, ok
}

func (s *Server) ownerAndID(w http.ResponseWriter, r *http.Request, param string) (string, int64, bool) {
	owner, ok := s.owner(w, r)
	if !ok {
		return "", 0, false
	}
	id, err := pathID(r, param)
	if err != nil {
		s.badRequest(w, r, err)
		return "", 0, false
	}
	return owner, id, true
}

func editURL(id int64) string {
	return fmt.Sprintf("/recipes/%d/edit", id)
}

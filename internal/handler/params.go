package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/recipebox/internal/domain"
	"github.com/pkordes/recipebox/internal/identity"
)

// pathID binds the named chi path parameter to an int64.
func pathID(r *http.Request, name string) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return id, nil
}

// formInt binds an optional numeric form field. A blank or absent field
// leaves dest unchanged.
func formInt[T int | int64](r *http.Request, name string, dest *T) error {
	if r.PostForm.Get(name) == "" {
		return nil
	}
	return runtime.BindQueryParameter("form", true, false, name, r.PostForm, dest)
}

// recipeFromForm reads the recipe form fields from a parsed POST body.
// A non-numeric ranking is reported the same way the validator reports
// constraint failures, so the form can be re-rendered with the message.
func recipeFromForm(r *http.Request) (domain.Recipe, error) {
	rec := domain.Recipe{
		Name:         r.PostForm.Get("name"),
		Ingredients:  r.PostForm.Get("ingredients"),
		Instructions: r.PostForm.Get("instructions"),
	}
	if err := formInt(r, "ranking", &rec.Ranking); err != nil {
		return rec, domain.NewValidationError("ranking", "must be a whole number")
	}
	return rec, nil
}

// userID returns the authenticated caller's id placed in the context by the
// auth middleware.
func userID(r *http.Request) (string, bool) {
	u, ok := identity.UserFromContext(r.Context())
	return u.ID, ok
}

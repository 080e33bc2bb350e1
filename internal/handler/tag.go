package handler

import (
	"fmt"
	"net/http"

	"github.com/pkordes/recipebox/internal/domain"
)

// AddTagForm handles GET /recipes/{id}/tags/new.
func (s *Server) AddTagForm(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := s.ownerAndID(w, r, "id")
	if !ok {
		return
	}

	rec, err := s.recipes.GetForOwner(r.Context(), owner, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	tags, err := s.tags.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, "addtag", page{
		Title:  "Tag " + rec.Name,
		Recipe: rec,
		Tags:   tags,
		Action: fmt.Sprintf("/recipes/%d/tags", id),
	})
}

// AddTag handles POST /recipes/{id}/tags.
// An empty tag_id selects domain.NoTag, which the service ignores.
func (s *Server) AddTag(w http.ResponseWriter, r *http.Request) {
	owner, id, ok := s.ownerAndID(w, r, "id")
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		s.badRequest(w, r, err)
		return
	}

	tagID := domain.NoTag
	if err := formInt(r, "tag_id", &tagID); err != nil {
		s.badRequest(w, r, fmt.Errorf("invalid tag_id: %w", err))
		return
	}

	if err := s.recipes.AddTag(r.Context(), owner, id, tagID); err != nil {
		s.fail(w, r, err)
		return
	}
	seeOther(w, r, fmt.Sprintf("/recipes/%d", id))
}

// RemoveTag handles POST /recipes/tags/{joinId}/delete.
func (s *Server) RemoveTag(w http.ResponseWriter, r *http.Request) {
	owner, joinID, ok := s.ownerAndID(w, r, "joinId")
	if !ok {
		return
	}

	if err := s.recipes.RemoveTagAssociation(r.Context(), owner, joinID); err != nil {
		s.fail(w, r, err)
		return
	}
	seeOther(w, r, "/recipes")
}

package server

import (
	"net/http"
	"strconv"
)

// ---------------------------------------------------------------------
// Template Catalog Handlers
// ---------------------------------------------------------------------

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	templates := s.engine.Catalog().All()
	if category != "" {
		templates = s.engine.Catalog().ListByCategory(category)
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"templates": templates,
		"count":     len(templates),
	})
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	templateID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid template ID")
		return
	}

	template := s.engine.Catalog().FindByID(templateID)
	if template == nil {
		s.errorResponse(w, http.StatusNotFound, "Template not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, template)
}

package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/apply-autofill/internal/types"
)

// ---------------------------------------------------------------------
// Profile Handlers
// ---------------------------------------------------------------------

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	profile, err := s.db.GetProfile(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "Profile not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

func (s *Server) handleUpsertProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req types.UpsertProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	profile, err := s.db.UpsertProfile(r.Context(), userID, req.PersonalInfo, req.Skills)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	// Completion is recomputed on every write that touches a scored section
	report, err := s.engine.RecomputeCompletion(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to recompute completion: "+err.Error())
		return
	}
	profile.CompletionPercentage = report.Percentage

	s.jsonResponse(w, http.StatusOK, profile)
}

func (s *Server) handleGetCompletion(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	report, err := s.engine.Completion(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, report)
}

func (s *Server) handleDeleteUserData(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := s.db.DeleteUserData(r.Context(), userID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ---------------------------------------------------------------------
// Work Experience Handlers
// ---------------------------------------------------------------------

func (s *Server) handleListWorkExperience(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	entries, err := s.db.ListWorkExperience(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"work_experiences": entries,
		"count":            len(entries),
	})
}

func (s *Server) handleCreateWorkExperience(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req types.CreateWorkExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	entry := &types.WorkExperience{
		UserID:      userID,
		Company:     req.Company,
		Title:       req.Title,
		Location:    req.Location,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Current:     req.Current,
		Description: req.Description,
	}
	id, err := s.db.CreateWorkExperience(r.Context(), entry)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	if _, err := s.engine.RecomputeCompletion(r.Context(), userID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to recompute completion: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (s *Server) handleUpdateWorkExperience(w http.ResponseWriter, r *http.Request) {
	entryID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid work experience ID")
		return
	}

	existing, err := s.db.GetWorkExperience(r.Context(), entryID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if existing == nil {
		s.errorResponse(w, http.StatusNotFound, "Work experience not found")
		return
	}

	var req types.CreateWorkExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	existing.Company = req.Company
	existing.Title = req.Title
	existing.Location = req.Location
	existing.StartDate = req.StartDate
	existing.EndDate = req.EndDate
	existing.Current = req.Current
	existing.Description = req.Description

	if err := s.db.UpdateWorkExperience(r.Context(), existing); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	if _, err := s.engine.RecomputeCompletion(r.Context(), existing.UserID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to recompute completion: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleDeleteWorkExperience(w http.ResponseWriter, r *http.Request) {
	entryID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid work experience ID")
		return
	}

	existing, err := s.db.GetWorkExperience(r.Context(), entryID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if existing == nil {
		s.errorResponse(w, http.StatusNotFound, "Work experience not found")
		return
	}

	if err := s.db.DeleteWorkExperience(r.Context(), entryID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	if _, err := s.engine.RecomputeCompletion(r.Context(), existing.UserID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to recompute completion: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ---------------------------------------------------------------------
// Education Handlers
// ---------------------------------------------------------------------

func (s *Server) handleListEducation(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	entries, err := s.db.ListEducation(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"education": entries,
		"count":     len(entries),
	})
}

func (s *Server) handleCreateEducation(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req types.CreateEducationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	entry := &types.Education{
		UserID:     userID,
		School:     req.School,
		DegreeType: req.DegreeType,
		Field:      req.Field,
		GPA:        req.GPA,
		Location:   req.Location,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}
	id, err := s.db.CreateEducation(r.Context(), entry)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	if _, err := s.engine.RecomputeCompletion(r.Context(), userID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to recompute completion: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (s *Server) handleUpdateEducation(w http.ResponseWriter, r *http.Request) {
	entryID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid education ID")
		return
	}

	existing, err := s.db.GetEducation(r.Context(), entryID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if existing == nil {
		s.errorResponse(w, http.StatusNotFound, "Education not found")
		return
	}

	var req types.CreateEducationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	existing.School = req.School
	existing.DegreeType = req.DegreeType
	existing.Field = req.Field
	existing.GPA = req.GPA
	existing.Location = req.Location
	existing.StartDate = req.StartDate
	existing.EndDate = req.EndDate

	if err := s.db.UpdateEducation(r.Context(), existing); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	if _, err := s.engine.RecomputeCompletion(r.Context(), existing.UserID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to recompute completion: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleDeleteEducation(w http.ResponseWriter, r *http.Request) {
	entryID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid education ID")
		return
	}

	existing, err := s.db.GetEducation(r.Context(), entryID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if existing == nil {
		s.errorResponse(w, http.StatusNotFound, "Education not found")
		return
	}

	if err := s.db.DeleteEducation(r.Context(), entryID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	if _, err := s.engine.RecomputeCompletion(r.Context(), existing.UserID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to recompute completion: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

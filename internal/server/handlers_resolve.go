package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/apply-autofill/internal/fieldcontext"
	"github.com/jonathan/apply-autofill/internal/types"
)

// handleResolve resolves one observed form field for a user.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req types.ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	question, err := observedQuestion(req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	resolved, err := s.engine.Resolve(r.Context(), userID, question, nil)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, resolved)
}

// handleResolveBatch resolves every field of one form in a single call.
func (s *Server) handleResolveBatch(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req types.BatchResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	questions := make([]types.ObservedQuestion, 0, len(req.Questions))
	for _, item := range req.Questions {
		question, err := observedQuestion(item)
		if err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		questions = append(questions, question)
	}

	resolved, err := s.engine.ResolveBatch(r.Context(), userID, questions)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"answers": resolved,
		"count":   len(resolved),
	})
}

// observedQuestion builds the matcher input from a resolve request.
// When only an HTML fragment was captured, the question text and type
// hint are extracted from the markup.
func observedQuestion(req types.ResolveRequest) (types.ObservedQuestion, error) {
	if req.Text != "" {
		return types.ObservedQuestion{
			Text:         req.Text,
			QuestionType: req.QuestionType,
			FieldContext: req.FieldContext,
		}, nil
	}

	question, err := fieldcontext.Extract(req.HTML)
	if err != nil {
		return types.ObservedQuestion{}, err
	}
	if req.QuestionType != "" {
		question.QuestionType = req.QuestionType
	}
	if req.FieldContext != "" {
		question.FieldContext = req.FieldContext
	}
	return question, nil
}

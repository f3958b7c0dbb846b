package api

import (
	"net/http"
	"strings"

	"github.com/olenak/lingocards/internal/errors"
	"github.com/olenak/lingocards/internal/logger"
)

type startSessionRequest struct {
	CollectionID int64 `json:"collectionId"`
}

type checkAnswerRequest struct {
	Answer string `json:"answer"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("starting study session")
	userID := userIDFromContext(r.Context())

	var req startSessionRequest
	if err := decodeJSON(r, &req); err != nil || req.CollectionID <= 0 {
		s.handleError(w, r, errors.NewBadRequestError("collectionId is required"))
		return
	}

	session, err := s.StudyService.Start(r.Context(), userID, req.CollectionID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "session started", session)
}

func (s *Server) handleCheckAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("checking answer")
	userID := userIDFromContext(r.Context())

	collectionID, err := pathID(r, "collectionID")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var req checkAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}
	// An empty answer is a malformed request, not a miss; rejecting it here
	// keeps the session state untouched.
	if strings.TrimSpace(req.Answer) == "" {
		s.handleError(w, r, errors.NewBadRequestError("answer is required"))
		return
	}

	result, err := s.StudyService.CheckAnswer(r.Context(), userID, collectionID, req.Answer)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "answer checked", result)
}

func (s *Server) handleCurrentSession(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	collectionID, err := pathID(r, "collectionID")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	session, err := s.StudyService.GetCurrent(r.Context(), userID, collectionID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "ok", session)
}

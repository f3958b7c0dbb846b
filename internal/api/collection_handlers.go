package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/olenak/lingocards/internal/errors"
	"github.com/olenak/lingocards/internal/logger"
	"github.com/olenak/lingocards/internal/models"
)

// pathID parses a numeric URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewBadRequestError("invalid " + name + " in URL")
	}
	return id, nil
}

type collectionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SourceLang  string `json:"source_lang"`
	TargetLang  string `json:"target_lang"`
	Public      bool   `json:"public"`
}

func (s *Server) handleListCollections(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	q := r.URL.Query()
	filter := models.CollectionFilter{
		SourceLang: q.Get("source_lang"),
		TargetLang: q.Get("target_lang"),
		Search:     q.Get("search"),
	}
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	filter.Offset, _ = strconv.Atoi(q.Get("offset"))

	collections, total, err := s.CollectionService.List(r.Context(), userID, filter)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "ok", map[string]any{
		"collections": collections,
		"total":       total,
	})
}

func (s *Server) handleCreateCollection(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("creating collection")
	userID := userIDFromContext(r.Context())

	var req collectionRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	created, err := s.CollectionService.Create(r.Context(), userID, models.Collection{
		Name:        req.Name,
		Description: req.Description,
		SourceLang:  req.SourceLang,
		TargetLang:  req.TargetLang,
		Public:      req.Public,
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, "collection created", created)
}

func (s *Server) handleGetCollection(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	c, err := s.CollectionService.Get(r.Context(), userID, id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "ok", c)
}

func (s *Server) handleUpdateCollection(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var req collectionRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	updated, err := s.CollectionService.Update(r.Context(), userID, models.Collection{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		SourceLang:  req.SourceLang,
		TargetLang:  req.TargetLang,
		Public:      req.Public,
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "collection updated", updated)
}

func (s *Server) handleDeleteCollection(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	if err := s.CollectionService.Delete(r.Context(), userID, id); err != nil {
		s.handleError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "collection deleted", nil)
}

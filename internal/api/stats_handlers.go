package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleUserStats(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	stats, err := s.StatsService.UserStats(r.Context(), userID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "ok", stats)
}

func (s *Server) handleCollectionStats(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	collectionID, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	stats, err := s.StatsService.CollectionStats(r.Context(), userID, collectionID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "ok", stats)
}

func (s *Server) handleDictionaryLookup(w http.ResponseWriter, r *http.Request) {
	lang := chi.URLParam(r, "lang")
	word := chi.URLParam(r, "word")

	entries, err := s.DictionaryService.Lookup(r.Context(), lang, word)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "ok", entries)
}

package api

import (
	"net/http"

	"github.com/olenak/lingocards/internal/errors"
	"github.com/olenak/lingocards/internal/logger"
	"github.com/olenak/lingocards/internal/models"
)

type flashcardRequest struct {
	Term          string `json:"term"`
	Definition    string `json:"definition"`
	Pronunciation string `json:"pronunciation"`
	ImagePath     string `json:"image_path"`
	AudioPath     string `json:"audio_path"`
}

func (s *Server) handleListFlashcards(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	collectionID, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	cards, err := s.FlashcardService.ListByCollection(r.Context(), userID, collectionID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "ok", cards)
}

func (s *Server) handleCreateFlashcard(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	collectionID, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var req flashcardRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	created, err := s.FlashcardService.Create(r.Context(), userID, models.Flashcard{
		CollectionID:  collectionID,
		Term:          req.Term,
		Definition:    req.Definition,
		Pronunciation: req.Pronunciation,
		ImagePath:     req.ImagePath,
		AudioPath:     req.AudioPath,
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, "flashcard created", created)
}

func (s *Server) handleUpdateFlashcard(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var req flashcardRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	updated, err := s.FlashcardService.Update(r.Context(), userID, models.Flashcard{
		ID:            id,
		Term:          req.Term,
		Definition:    req.Definition,
		Pronunciation: req.Pronunciation,
		ImagePath:     req.ImagePath,
		AudioPath:     req.AudioPath,
	})
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "flashcard updated", updated)
}

func (s *Server) handleDeleteFlashcard(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	if err := s.FlashcardService.Delete(r.Context(), userID, id); err != nil {
		s.handleError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "flashcard deleted", nil)
}

func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("handling CSV import")
	userID := userIDFromContext(r.Context())

	collectionID, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		s.handleError(w, r, errors.NewBadRequestError("missing file upload"))
		return
	}
	defer file.Close()

	count, err := s.FlashcardService.ImportCSV(r.Context(), userID, collectionID, file)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, "flashcards imported", map[string]any{"imported": count})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("handling media upload")

	file, header, err := r.FormFile("file")
	if err != nil {
		s.handleError(w, r, errors.NewBadRequestError("missing file upload"))
		return
	}
	defer file.Close()

	path, err := s.MediaService.SaveUpload(r.Context(), header.Filename, file)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, "file uploaded", map[string]any{"path": path})
}

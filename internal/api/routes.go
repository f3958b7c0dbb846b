package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Get("/auth/me", s.handleMe)

			r.Get("/collections", s.handleListCollections)
			r.Post("/collections", s.handleCreateCollection)
			r.Get("/collections/{id}", s.handleGetCollection)
			r.Put("/collections/{id}", s.handleUpdateCollection)
			r.Delete("/collections/{id}", s.handleDeleteCollection)

			r.Get("/collections/{id}/flashcards", s.handleListFlashcards)
			r.Post("/collections/{id}/flashcards", s.handleCreateFlashcard)
			r.Put("/flashcards/{id}", s.handleUpdateFlashcard)
			r.Delete("/flashcards/{id}", s.handleDeleteFlashcard)
			r.Post("/collections/{id}/import", s.handleImportCSV)
			r.Post("/uploads", s.handleUpload)

			r.Post("/collections/{id}/shares", s.handleInvite)
			r.Get("/collections/{id}/shares", s.handleListShares)
			r.Delete("/collections/{id}/shares/{userID}", s.handleRevokeShare)
			r.Post("/shares/accept", s.handleAcceptInvitation)

			r.Post("/study-sessions/start", s.handleStartSession)
			r.Post("/study-sessions/{collectionID}/check", s.handleCheckAnswer)
			r.Get("/study-sessions/{collectionID}", s.handleCurrentSession)

			r.Get("/stats/me", s.handleUserStats)
			r.Get("/stats/collections/{id}", s.handleCollectionStats)

			r.Get("/dictionary/{lang}/{word}", s.handleDictionaryLookup)
		})
	})

	r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(s.MediaDir))))
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, "ok", nil)
}

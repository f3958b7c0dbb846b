package api

import (
	"net/http"

	"github.com/olenak/lingocards/internal/errors"
	"github.com/olenak/lingocards/internal/logger"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("handling registration")

	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	user, token, err := s.AuthService.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, "account created", map[string]any{
		"user":  user,
		"token": token,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("handling login")

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	user, token, err := s.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "logged in", map[string]any{
		"user":  user,
		"token": token,
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	user, err := s.AuthService.GetUser(r.Context(), userID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "ok", user)
}

package api

import (
	"net/http"

	"github.com/olenak/lingocards/internal/errors"
	"github.com/olenak/lingocards/internal/logger"
	"github.com/olenak/lingocards/internal/models"
)

type inviteRequest struct {
	Email      string                 `json:"email"`
	Permission models.SharePermission `json:"permission"`
}

type acceptRequest struct {
	Token string `json:"token"`
}

func (s *Server) handleInvite(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("handling share invitation")
	userID := userIDFromContext(r.Context())

	collectionID, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	var req inviteRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	inv, err := s.ShareService.InviteByEmail(r.Context(), userID, collectionID, req.Email, req.Permission)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respond(w, r, http.StatusCreated, "invitation sent", inv)
}

func (s *Server) handleListShares(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	collectionID, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	grants, err := s.ShareService.ListShares(r.Context(), userID, collectionID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "ok", grants)
}

func (s *Server) handleRevokeShare(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	collectionID, err := pathID(r, "id")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	targetUserID, err := pathID(r, "userID")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	if err := s.ShareService.Revoke(r.Context(), userID, collectionID, targetUserID); err != nil {
		s.handleError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "share revoked", nil)
}

func (s *Server) handleAcceptInvitation(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("handling invitation accept")
	userID := userIDFromContext(r.Context())

	var req acceptRequest
	if err := decodeJSON(r, &req); err != nil || req.Token == "" {
		s.handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	grant, err := s.ShareService.AcceptInvitation(r.Context(), userID, req.Token)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, "invitation accepted", grant)
}

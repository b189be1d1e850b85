package rest

import (
	"net/http"

	"github.com/dmitrijs2005/gophcatalog/internal/common"
	"github.com/dmitrijs2005/gophcatalog/internal/httpx"
	"github.com/dmitrijs2005/gophcatalog/internal/server/auth"
	"github.com/dmitrijs2005/gophcatalog/internal/server/models"
)

func (s *RESTServer) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	resp, err := s.svc.Users.Register(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (s *RESTServer) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	resp, err := s.svc.Users.Login(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (s *RESTServer) refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshTokenRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	resp, err := s.svc.Users.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (s *RESTServer) logout(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshTokenRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	if err := s.svc.Users.Logout(r.Context(), req.RefreshToken); err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, models.MessageResponse{Status: http.StatusOK, Message: "Logged out successfully"})
}

func (s *RESTServer) getProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, r, s.logger, common.NewAuthenticationError("Missing authorization header"))
		return
	}

	user, err := s.svc.Users.GetProfile(r.Context(), id.UserID)
	if err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, user)
}

func (s *RESTServer) updateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, r, s.logger, common.NewAuthenticationError("Missing authorization header"))
		return
	}

	var req models.UpdateProfileRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	user, err := s.svc.Users.UpdateProfile(r.Context(), id.UserID, req)
	if err != nil {
		httpx.WriteError(w, r, s.logger, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, user)
}

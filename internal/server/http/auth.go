package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ltj54/restructuring/internal/server/service"
	"github.com/ltj54/restructuring/pkg/httpx"
	"github.com/ltj54/restructuring/pkg/slogx"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	ExpiresIn int64  `json:"expiresIn"`
	UserID    int64  `json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP handles credential login.
//
//	@Summary		Log in with email and password
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		loginRequest	true	"Credentials"
//	@Success		200		{object}	loginResponse
//	@Failure		400		{object}	httpx.ErrorBody	"Malformed request"
//	@Failure		401		{object}	httpx.ErrorBody	"Invalid credentials"
//	@Router			/api/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	session, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		slogx.FromContext(r.Context()).Error("login failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, loginResponse{
		Token:     session.Token,
		TokenType: "Bearer",
		ExpiresIn: session.ExpiresIn,
		UserID:    session.User.ID,
		Email:     session.User.Email,
		FirstName: session.User.FirstName,
		LastName:  session.User.LastName,
	})
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	SSN       string `json:"ssn"`
	Phone     string `json:"phone"`
}

type registerResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type RegisterHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP handles account creation.
//
//	@Summary		Register a new account
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		registerRequest	true	"New account"
//	@Success		201		{object}	registerResponse
//	@Failure		400		{object}	httpx.ErrorBody	"Malformed request"
//	@Failure		409		{object}	httpx.ErrorBody	"Email already registered"
//	@Router			/api/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "valid email and password are required")
		return
	}

	user, err := h.AuthService.Register(r.Context(), service.RegisterParams{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		SSN:       req.SSN,
		Phone:     req.Phone,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			httpx.WriteError(w, http.StatusConflict, "email already registered")
			return
		}
		slogx.FromContext(r.Context()).Error("register failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, registerResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type ForgotPasswordHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP starts the password reset flow. The response is 204 regardless of
// whether the email is known. There is no mail delivery; the code is logged
// for operators to relay out of band.
//
//	@Summary		Request a password reset code
//	@Tags			Auth
//	@Accept			json
//	@Param			request	body	forgotPasswordRequest	true	"Account email"
//	@Success		204		"Always, whether or not the account exists"
//	@Failure		400		{object}	httpx.ErrorBody	"Malformed request"
//	@Router			/api/auth/password/forgot [post].
func (h *ForgotPasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		httpx.WriteError(w, http.StatusBadRequest, "email is required")
		return
	}

	log := slogx.FromContext(r.Context())
	code, err := h.AuthService.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		log.Error("forgot password failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if code != "" {
		log.Info("password reset code issued", "email", req.Email, "code", code)
	}

	w.WriteHeader(http.StatusNoContent)
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

type ResetPasswordHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP completes the password reset flow.
//
//	@Summary		Reset the password with a previously issued code
//	@Tags			Auth
//	@Accept			json
//	@Param			request	body	resetPasswordRequest	true	"Email, code and new password"
//	@Success		204		"Password replaced"
//	@Failure		400		{object}	httpx.ErrorBody	"Malformed request or invalid code"
//	@Router			/api/auth/password/reset [post].
func (h *ResetPasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Email == "" || req.Code == "" || req.NewPassword == "" {
		httpx.WriteError(w, http.StatusBadRequest, "email, code and newPassword are required")
		return
	}

	err := h.AuthService.ResetPassword(r.Context(), req.Email, req.Code, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrInvalidResetCode) {
			httpx.WriteError(w, http.StatusBadRequest, "invalid or expired code")
			return
		}
		slogx.FromContext(r.Context()).Error("reset password failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	authservice "github.com/syncroapp/syncro-backend/internal/auth/service"
	commonhttp "github.com/syncroapp/syncro-backend/internal/common/http"
	"github.com/syncroapp/syncro-backend/internal/common/logger"
	userdomain "github.com/syncroapp/syncro-backend/internal/user/domain"
)

type Handler struct {
	auth *authservice.AuthService
	log  *logger.Logger
}

func NewHandler(auth *authservice.AuthService, log *logger.Logger) *Handler {
	return &Handler{auth: auth, log: log}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	return r
}

type registerRequest struct {
	Name      string   `json:"name" validate:"required"`
	Email     string   `json:"email" validate:"required,email"`
	StudentID string   `json:"studentId"`
	Major     string   `json:"major"`
	Year      int      `json:"year"`
	Role      string   `json:"role" validate:"omitempty,oneof=student instructor"`
	Password  string   `json:"password" validate:"required"`
	Avatar    []string `json:"avatar"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Role      string   `json:"role"`
	StudentID string   `json:"studentId"`
	Major     string   `json:"major"`
	Year      int      `json:"year"`
	Avatar    []string `json:"avatar,omitempty"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func toUserResponse(u userdomain.User) userResponse {
	return userResponse{
		ID:        string(u.ID),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		StudentID: u.StudentID,
		Major:     u.Major,
		Year:      u.Year,
		Avatar:    u.Avatar,
	}
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid request body", nil, "")
		return
	}

	if err := commonhttp.ValidateStruct(req); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	result, err := h.auth.Register(r.Context(), authservice.RegisterInput{
		Name:      req.Name,
		Email:     req.Email,
		StudentID: req.StudentID,
		Major:     req.Major,
		Year:      req.Year,
		Role:      req.Role,
		Password:  req.Password,
		Avatar:    req.Avatar,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, authResponse{
		Token: result.Token,
		User:  toUserResponse(result.User),
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid request body", nil, "")
		return
	}

	if err := commonhttp.ValidateStruct(req); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	result, err := h.auth.Login(r.Context(), authservice.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, authResponse{
		Token: result.Token,
		User:  toUserResponse(result.User),
	})
}

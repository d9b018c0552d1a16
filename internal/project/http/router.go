package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	commonerrors "github.com/syncroapp/syncro-backend/internal/common/errors"
	commonhttp "github.com/syncroapp/syncro-backend/internal/common/http"
	"github.com/syncroapp/syncro-backend/internal/common/jwtverify"
	"github.com/syncroapp/syncro-backend/internal/common/logger"
	"github.com/syncroapp/syncro-backend/internal/project/domain"
	projectservice "github.com/syncroapp/syncro-backend/internal/project/service"
)

type Handler struct {
	projects *projectservice.ProjectService
	log      *logger.Logger
}

func NewHandler(projects *projectservice.ProjectService, log *logger.Logger) *Handler {
	return &Handler{projects: projects, log: log}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/create", h.create)
	r.Get("/", h.list)
	r.Get("/{projectID}", h.get)
	r.Patch("/{projectID}/status", h.updateStatus)
	r.Post("/{projectID}/add-member", h.addMember)
	return r
}

type createProjectRequest struct {
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description"`
	Course      string     `json:"course"`
	Deadline    *time.Time `json:"deadline"`
	Goals       []string   `json:"goals"`
	Status      string     `json:"status" validate:"omitempty,oneof=active planning completed"`
}

type updateStatusRequest struct {
	Status   string `json:"status" validate:"required,oneof=active planning completed"`
	Progress int    `json:"progress" validate:"min=0,max=100"`
}

type addMemberRequest struct {
	StudentID string `json:"studentId" validate:"required"`
}

type memberResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	StudentID string `json:"studentId"`
}

type projectResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Course      string     `json:"course"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Goals       []string   `json:"goals"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"`
	CreatedBy   string     `json:"createdBy"`
	Members     []string   `json:"members"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func toProjectResponse(p domain.Project) projectResponse {
	return projectResponse{
		ID:          string(p.ID),
		Name:        p.Name,
		Description: p.Description,
		Course:      p.Course,
		Deadline:    p.Deadline,
		Goals:       p.Goals,
		Status:      string(p.Status),
		Progress:    p.Progress,
		CreatedBy:   string(p.CreatedBy),
		Members:     p.MemberIDs,
		CreatedAt:   p.CreatedAt,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.HandleError(w, r, commonerrors.ErrMissingTokenClaims, h.log)
		return
	}

	var req createProjectRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid request body", nil, "")
		return
	}

	if err := commonhttp.ValidateStruct(req); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	project, err := h.projects.Create(r.Context(), claims.UserID, projectservice.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Course:      req.Course,
		Deadline:    req.Deadline,
		Goals:       req.Goals,
		Status:      req.Status,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, toProjectResponse(project))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.HandleError(w, r, commonerrors.ErrMissingTokenClaims, h.log)
		return
	}

	projects, err := h.projects.List(r.Context(), claims.UserID)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	resp := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, toProjectResponse(p))
	}

	commonhttp.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	if err := commonhttp.ValidateUUID(projectID); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	project, err := h.projects.Get(r.Context(), projectID)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toProjectResponse(project))
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	if err := commonhttp.ValidateUUID(projectID); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	var req updateStatusRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid request body", nil, "")
		return
	}

	if err := commonhttp.ValidateStruct(req); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	project, err := h.projects.UpdateStatus(r.Context(), projectID, req.Status, req.Progress)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toProjectResponse(project))
}

func (h *Handler) addMember(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	if err := commonhttp.ValidateUUID(projectID); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	var req addMemberRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid request body", nil, "")
		return
	}

	if err := commonhttp.ValidateStruct(req); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	member, err := h.projects.AddMember(r.Context(), projectID, req.StudentID)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, memberResponse{
		ID:        string(member.ID),
		Name:      member.Name,
		Email:     member.Email,
		StudentID: member.StudentID,
	})
}

package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	commonerrors "github.com/syncroapp/syncro-backend/internal/common/errors"
	commonhttp "github.com/syncroapp/syncro-backend/internal/common/http"
	"github.com/syncroapp/syncro-backend/internal/common/jwtverify"
	"github.com/syncroapp/syncro-backend/internal/common/logger"
	teamservice "github.com/syncroapp/syncro-backend/internal/team/service"
	userdomain "github.com/syncroapp/syncro-backend/internal/user/domain"
)

type Handler struct {
	teams *teamservice.TeamService
	log   *logger.Logger
}

func NewHandler(teams *teamservice.TeamService, log *logger.Logger) *Handler {
	return &Handler{teams: teams, log: log}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{teamID}/details", h.details)
	r.Post("/{teamID}/add-member", h.addMember)
	return r
}

type createTeamRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type addMemberRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}

type memberResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	StudentID string `json:"studentId"`
}

type teamResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"createdBy"`
	Members     []string  `json:"members"`
	CreatedAt   time.Time `json:"createdAt"`
}

type teamOverviewResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	CreatedBy   memberResponse `json:"createdBy"`
	MemberCount int            `json:"memberCount"`
	CreatedAt   time.Time      `json:"createdAt"`
}

type teamDetailsResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	CreatedBy   memberResponse   `json:"createdBy"`
	Members     []memberResponse `json:"members"`
	CreatedAt   time.Time        `json:"createdAt"`
}

func toMemberResponse(s userdomain.Summary) memberResponse {
	return memberResponse{
		ID:        string(s.ID),
		Name:      s.Name,
		Email:     s.Email,
		StudentID: s.StudentID,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.HandleError(w, r, commonerrors.ErrMissingTokenClaims, h.log)
		return
	}

	var req createTeamRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid request body", nil, "")
		return
	}

	if err := commonhttp.ValidateStruct(req); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	team, err := h.teams.Create(r.Context(), claims.UserID, req.Name, req.Description)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, teamResponse{
		ID:          string(team.ID),
		Name:        team.Name,
		Description: team.Description,
		CreatedBy:   string(team.CreatedBy),
		Members:     team.MemberIDs,
		CreatedAt:   team.CreatedAt,
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.HandleError(w, r, commonerrors.ErrMissingTokenClaims, h.log)
		return
	}

	overviews, err := h.teams.List(r.Context(), claims.UserID)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	resp := make([]teamOverviewResponse, 0, len(overviews))
	for _, o := range overviews {
		resp = append(resp, teamOverviewResponse{
			ID:          string(o.ID),
			Name:        o.Name,
			Description: o.Description,
			CreatedBy:   toMemberResponse(o.CreatedBy),
			MemberCount: o.MemberCount,
			CreatedAt:   o.CreatedAt,
		})
	}

	commonhttp.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) details(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	if err := commonhttp.ValidateUUID(teamID); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	details, err := h.teams.Details(r.Context(), teamID)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	resp := teamDetailsResponse{
		ID:          string(details.ID),
		Name:        details.Name,
		Description: details.Description,
		CreatedBy:   toMemberResponse(details.CreatedBy),
		Members:     make([]memberResponse, 0, len(details.Members)),
		CreatedAt:   details.CreatedAt,
	}
	for _, m := range details.Members {
		resp.Members = append(resp.Members, toMemberResponse(m))
	}

	commonhttp.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) addMember(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	if err := commonhttp.ValidateUUID(teamID); err != nil {
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

	member, err := h.teams.AddMember(r.Context(), teamID, req.Identifier)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toMemberResponse(member))
}

package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/syncroapp/syncro-backend/internal/checkin/domain"
	checkinservice "github.com/syncroapp/syncro-backend/internal/checkin/service"
	commonerrors "github.com/syncroapp/syncro-backend/internal/common/errors"
	commonhttp "github.com/syncroapp/syncro-backend/internal/common/http"
	"github.com/syncroapp/syncro-backend/internal/common/jwtverify"
	"github.com/syncroapp/syncro-backend/internal/common/logger"
)

type Handler struct {
	checkins *checkinservice.CheckinService
	log      *logger.Logger
}

func NewHandler(checkins *checkinservice.CheckinService, log *logger.Logger) *Handler {
	return &Handler{checkins: checkins, log: log}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.submit)
	r.Get("/", h.list)
	return r
}

type submitRequest struct {
	Mood        int      `json:"mood" validate:"required,min=1,max=5"`
	Energy      int      `json:"energy" validate:"required,min=1,max=5"`
	Blockers    []string `json:"blockers"`
	NextSteps   string   `json:"nextSteps"`
	WorkDone    string   `json:"workDone"`
	HoursWorked float64  `json:"hoursWorked" validate:"min=0"`
}

type checkinResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Mood        int       `json:"mood"`
	Energy      int       `json:"energy"`
	Blockers    []string  `json:"blockers"`
	NextSteps   string    `json:"nextSteps"`
	WorkDone    string    `json:"workDone"`
	HoursWorked float64   `json:"hoursWorked"`
	CreatedAt   time.Time `json:"createdAt"`
}

type submitResponse struct {
	Checkin           checkinResponse `json:"checkin"`
	NotifiedUsers     []string        `json:"notifiedUsers"`
	NotificationsSent int             `json:"notificationsSent"`
	TeamsFound        int             `json:"teamsFound"`
}

func toCheckinResponse(c domain.Checkin) checkinResponse {
	return checkinResponse{
		ID:          string(c.ID),
		UserID:      string(c.UserID),
		Mood:        c.Mood,
		Energy:      c.Energy,
		Blockers:    c.Blockers,
		NextSteps:   c.NextSteps,
		WorkDone:    c.WorkDone,
		HoursWorked: c.HoursWorked,
		CreatedAt:   c.CreatedAt,
	}
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.HandleError(w, r, commonerrors.ErrMissingTokenClaims, h.log)
		return
	}

	var req submitRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid request body", nil, "")
		return
	}

	if err := commonhttp.ValidateStruct(req); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	result, err := h.checkins.Submit(r.Context(), claims.UserID, claims.Name, checkinservice.SubmitInput{
		Mood:        req.Mood,
		Energy:      req.Energy,
		Blockers:    req.Blockers,
		NextSteps:   req.NextSteps,
		WorkDone:    req.WorkDone,
		HoursWorked: req.HoursWorked,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	notified := result.NotifiedUsers
	if notified == nil {
		notified = []string{}
	}

	commonhttp.WriteJSON(w, http.StatusCreated, submitResponse{
		Checkin:           toCheckinResponse(result.Checkin),
		NotifiedUsers:     notified,
		NotificationsSent: result.NotificationsSent,
		TeamsFound:        result.TeamsFound,
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.HandleError(w, r, commonerrors.ErrMissingTokenClaims, h.log)
		return
	}

	checkins, err := h.checkins.List(r.Context(), claims.UserID)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	resp := make([]checkinResponse, 0, len(checkins))
	for _, c := range checkins {
		resp = append(resp, toCheckinResponse(c))
	}

	commonhttp.WriteJSON(w, http.StatusOK, resp)
}

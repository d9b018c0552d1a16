package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	commonerrors "github.com/syncroapp/syncro-backend/internal/common/errors"
	commonhttp "github.com/syncroapp/syncro-backend/internal/common/http"
	"github.com/syncroapp/syncro-backend/internal/common/jwtverify"
	"github.com/syncroapp/syncro-backend/internal/common/logger"
	"github.com/syncroapp/syncro-backend/internal/resource/domain"
	resourceservice "github.com/syncroapp/syncro-backend/internal/resource/service"
)

const maxUploadSize = 25 << 20

type Handler struct {
	resources *resourceservice.ResourceService
	log       *logger.Logger
}

func NewHandler(resources *resourceservice.ResourceService, log *logger.Logger) *Handler {
	return &Handler{resources: resources, log: log}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/{id}", h.create)
	r.Get("/{id}", h.list)
	r.Delete("/{id}", h.delete)
	return r
}

type createJSONRequest struct {
	Title string `json:"title" validate:"required"`
	Type  string `json:"type" validate:"required,oneof=link file note"`
	URL   string `json:"url"`
	Note  string `json:"note"`
	Tags  string `json:"tags"`
}

type resourceResponse struct {
	ID        string    `json:"id"`
	TeamID    string    `json:"teamId"`
	Title     string    `json:"title"`
	Type      string    `json:"type"`
	URL       string    `json:"url,omitempty"`
	Note      string    `json:"note,omitempty"`
	FileName  string    `json:"fileName,omitempty"`
	FilePath  string    `json:"filePath,omitempty"`
	Tags      []string  `json:"tags"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

type resourceWithCreatorResponse struct {
	resourceResponse
	CreatorName  string `json:"creatorName"`
	CreatorEmail string `json:"creatorEmail"`
}

func toResourceResponse(res domain.Resource) resourceResponse {
	return resourceResponse{
		ID:        string(res.ID),
		TeamID:    string(res.TeamID),
		Title:     res.Title,
		Type:      string(res.Type),
		URL:       res.URL,
		Note:      res.Note,
		FileName:  res.FileName,
		FilePath:  res.FilePath,
		Tags:      res.Tags,
		CreatedBy: string(res.CreatedBy),
		CreatedAt: res.CreatedAt,
	}
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.HandleError(w, r, commonerrors.ErrMissingTokenClaims, h.log)
		return
	}

	teamID := chi.URLParam(r, "id")
	if err := commonhttp.ValidateUUID(teamID); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	input, err := h.parseCreateInput(r)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	resource, err := h.resources.Create(r.Context(), claims.UserID, claims.Name, teamID, input)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, toResourceResponse(resource))
}

// parseCreateInput accepts the multipart form the upload flow sends and a
// plain JSON body for link/note resources.
func (h *Handler) parseCreateInput(r *http.Request) (resourceservice.CreateInput, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			return resourceservice.CreateInput{}, commonerrors.ErrInvalidPayload.WithCause(err)
		}

		input := resourceservice.CreateInput{
			Title: r.FormValue("title"),
			Type:  r.FormValue("type"),
			URL:   r.FormValue("url"),
			Note:  r.FormValue("note"),
			Tags:  splitTags(r.FormValue("tags")),
		}

		if file, header, err := r.FormFile("file"); err == nil {
			input.File = &resourceservice.FileUpload{
				Name:   header.Filename,
				Reader: file,
			}
		}

		return input, nil
	}

	var req createJSONRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		return resourceservice.CreateInput{}, commonerrors.ErrInvalidPayload.WithCause(err)
	}
	if err := commonhttp.ValidateStruct(req); err != nil {
		return resourceservice.CreateInput{}, err
	}

	return resourceservice.CreateInput{
		Title: req.Title,
		Type:  req.Type,
		URL:   req.URL,
		Note:  req.Note,
		Tags:  splitTags(req.Tags),
	}, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "id")
	if err := commonhttp.ValidateUUID(teamID); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	resources, err := h.resources.List(r.Context(), teamID)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	resp := make([]resourceWithCreatorResponse, 0, len(resources))
	for _, res := range resources {
		resp = append(resp, resourceWithCreatorResponse{
			resourceResponse: toResourceResponse(res.Resource),
			CreatorName:      res.CreatorName,
			CreatorEmail:     res.CreatorEmail,
		})
	}

	commonhttp.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.HandleError(w, r, commonerrors.ErrMissingTokenClaims, h.log)
		return
	}

	resourceID := chi.URLParam(r, "id")
	if err := commonhttp.ValidateUUID(resourceID); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	if err := h.resources.Delete(r.Context(), claims.UserID, claims.Name, resourceID); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, map[string]string{"message": "Resource deleted"})
}

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/syncroapp/syncro-backend/internal/common/clock"
	commoncrypto "github.com/syncroapp/syncro-backend/internal/common/crypto"
	commonerrors "github.com/syncroapp/syncro-backend/internal/common/errors"
	"github.com/syncroapp/syncro-backend/internal/common/logger"
	"github.com/syncroapp/syncro-backend/internal/notify"
	"github.com/syncroapp/syncro-backend/internal/resource/domain"
	resourcerepo "github.com/syncroapp/syncro-backend/internal/resource/repository"
	teamdomain "github.com/syncroapp/syncro-backend/internal/team/domain"
	teamrepo "github.com/syncroapp/syncro-backend/internal/team/repository"
	userdomain "github.com/syncroapp/syncro-backend/internal/user/domain"
)

// FileStore abstracts the upload directory.
type FileStore interface {
	Save(filename string, src io.Reader) (string, error)
	Remove(path string) error
}

// TeamNotifier delivers a resource event to one team's roster.
type TeamNotifier interface {
	FanOutToTeam(ctx context.Context, event notify.Event, team notify.Team) notify.Result
}

type ResourceService struct {
	resources   resourcerepo.Repository
	teams       teamrepo.Repository
	files       FileStore
	notifier    TeamNotifier
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	log         *logger.Logger
}

type ResourceServiceDeps struct {
	Resources   resourcerepo.Repository
	Teams       teamrepo.Repository
	Files       FileStore
	Notifier    TeamNotifier
	IDGenerator commoncrypto.IDGenerator
	Clock       clock.Clock
	Log         *logger.Logger
}

func NewResourceService(deps ResourceServiceDeps) *ResourceService {
	return &ResourceService{
		resources:   deps.Resources,
		teams:       deps.Teams,
		files:       deps.Files,
		notifier:    deps.Notifier,
		idGenerator: deps.IDGenerator,
		clock:       deps.Clock,
		log:         deps.Log,
	}
}

type FileUpload struct {
	Name   string
	Reader io.Reader
}

type CreateInput struct {
	Title string
	Type  string
	URL   string
	Note  string
	Tags  []string
	File  *FileUpload
}

func (s *ResourceService) Create(ctx context.Context, actorID, actorName, teamID string, input CreateInput) (domain.Resource, error) {
	if strings.TrimSpace(input.Title) == "" {
		return domain.Resource{}, commonerrors.ErrMissingFields
	}

	resType := domain.Type(input.Type)
	if !resType.Valid() {
		return domain.Resource{}, commonerrors.ErrInvalidResourceType
	}

	team, err := s.teams.FindByID(ctx, teamdomain.ID(teamID))
	if err != nil {
		if errors.Is(err, teamrepo.ErrTeamNotFound) {
			return domain.Resource{}, commonerrors.ErrTeamNotFound
		}
		return domain.Resource{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return domain.Resource{}, commonerrors.ErrInternalError.WithCause(err)
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	resource := domain.Resource{
		ID:        domain.ID(id),
		TeamID:    team.ID,
		Title:     input.Title,
		Type:      resType,
		Tags:      tags,
		CreatedBy: userdomain.ID(actorID),
		CreatedAt: s.clock.Now().UTC(),
	}

	switch resType {
	case domain.TypeFile:
		if input.File == nil {
			return domain.Resource{}, commonerrors.ErrMissingFields
		}
		path, err := s.files.Save(input.File.Name, input.File.Reader)
		if err != nil {
			return domain.Resource{}, commonerrors.ErrFileUploadFailed.WithCause(err)
		}
		resource.FileName = input.File.Name
		resource.FilePath = path
	case domain.TypeLink:
		resource.URL = input.URL
	case domain.TypeNote:
		resource.Note = input.Note
	}

	if err := s.resources.Create(ctx, resource); err != nil {
		if resource.FilePath != "" {
			if rmErr := s.files.Remove(resource.FilePath); rmErr != nil {
				s.log.Warnf("orphaned upload left on disk path=%s: %v", resource.FilePath, rmErr)
			}
		}
		return domain.Resource{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	s.notifyTeam(ctx, actorID, actorName, team, resource, "created")

	s.log.WithFields(ctx, logger.Fields{
		"resource_id": id,
		"team_id":     teamID,
		"user_id":     actorID,
		"type":        string(resType),
		"action":      "resource_created",
	}).Info("resource created")

	return resource, nil
}

func (s *ResourceService) List(ctx context.Context, teamID string) ([]domain.WithCreator, error) {
	resources, err := s.resources.FindByTeam(ctx, teamdomain.ID(teamID))
	if err != nil {
		return nil, commonerrors.ErrDatabaseError.WithCause(err)
	}
	return resources, nil
}

func (s *ResourceService) Delete(ctx context.Context, actorID, actorName, resourceID string) error {
	resource, err := s.resources.FindByID(ctx, domain.ID(resourceID))
	if err != nil {
		if errors.Is(err, resourcerepo.ErrResourceNotFound) {
			return commonerrors.ErrResourceNotFound
		}
		return commonerrors.ErrDatabaseError.WithCause(err)
	}

	if err := s.resources.Delete(ctx, resource.ID); err != nil {
		if errors.Is(err, resourcerepo.ErrResourceNotFound) {
			return commonerrors.ErrResourceNotFound
		}
		return commonerrors.ErrDatabaseError.WithCause(err)
	}

	if resource.FilePath != "" {
		if err := s.files.Remove(resource.FilePath); err != nil {
			s.log.Warnf("failed to remove stored file path=%s: %v", resource.FilePath, err)
		}
	}

	team, err := s.teams.FindByID(ctx, resource.TeamID)
	if err != nil {
		// The row is gone either way; notification is best-effort.
		s.log.WithFields(ctx, logger.Fields{
			"resource_id": resourceID,
			"team_id":     string(resource.TeamID),
			"action":      "resource_delete_notify_skipped",
		}).Warnf("resource deleted but team lookup failed: %v", err)
		return nil
	}

	s.notifyTeam(ctx, actorID, actorName, team, resource, "deleted")

	s.log.WithFields(ctx, logger.Fields{
		"resource_id": resourceID,
		"team_id":     string(resource.TeamID),
		"user_id":     actorID,
		"action":      "resource_deleted",
	}).Info("resource deleted")

	return nil
}

func (s *ResourceService) notifyTeam(ctx context.Context, actorID, actorName string, team teamdomain.Team, resource domain.Resource, action string) {
	var message string
	switch action {
	case "created":
		message = fmt.Sprintf("%s uploaded a new %s %q %s", actorName, resource.Type, resource.Title, resource.Type.Emoji())
	case "deleted":
		message = fmt.Sprintf("%s deleted %s %q %s", actorName, resource.Type, resource.Title, resource.Type.Emoji())
	}

	s.notifier.FanOutToTeam(ctx, notify.Event{
		Kind:          notify.KindResource,
		ActorID:       actorID,
		ActorName:     actorName,
		Message:       message,
		Timestamp:     s.clock.Now().UTC(),
		ResourceType:  string(resource.Type),
		ResourceTitle: resource.Title,
		Action:        action,
		TeamID:        string(team.ID),
	}, notify.Team{
		ID:        string(team.ID),
		Name:      team.Name,
		MemberIDs: team.MemberIDs,
	})
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	commoncrypto "github.com/syncroapp/syncro-backend/internal/common/crypto"
	commonerrors "github.com/syncroapp/syncro-backend/internal/common/errors"
	"github.com/syncroapp/syncro-backend/internal/common/logger"
	"github.com/syncroapp/syncro-backend/internal/project/domain"
	projectrepo "github.com/syncroapp/syncro-backend/internal/project/repository"
	userdomain "github.com/syncroapp/syncro-backend/internal/user/domain"
	userrepo "github.com/syncroapp/syncro-backend/internal/user/repository"
)

type ProjectService struct {
	projects    projectrepo.Repository
	users       userrepo.Repository
	idGenerator commoncrypto.IDGenerator
	log         *logger.Logger
}

type ProjectServiceDeps struct {
	Projects    projectrepo.Repository
	Users       userrepo.Repository
	IDGenerator commoncrypto.IDGenerator
	Log         *logger.Logger
}

func NewProjectService(deps ProjectServiceDeps) *ProjectService {
	return &ProjectService{
		projects:    deps.Projects,
		users:       deps.Users,
		idGenerator: deps.IDGenerator,
		log:         deps.Log,
	}
}

type CreateInput struct {
	Name        string
	Description string
	Course      string
	Deadline    *time.Time
	Goals       []string
	Status      string
}

func (s *ProjectService) Create(ctx context.Context, creatorID string, input CreateInput) (domain.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return domain.Project{}, commonerrors.ErrMissingFields
	}

	status := domain.Status(input.Status)
	if input.Status == "" {
		status = domain.StatusActive
	}
	if !status.Valid() {
		return domain.Project{}, commonerrors.ErrValidationFailed
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return domain.Project{}, commonerrors.ErrInternalError.WithCause(err)
	}

	goals := input.Goals
	if goals == nil {
		goals = []string{}
	}

	project := domain.Project{
		ID:          domain.ID(id),
		Name:        input.Name,
		Description: input.Description,
		Course:      input.Course,
		Deadline:    input.Deadline,
		Goals:       goals,
		Status:      status,
		CreatedBy:   userdomain.ID(creatorID),
		MemberIDs:   []string{creatorID},
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return domain.Project{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"project_id": id,
		"user_id":    creatorID,
		"action":     "project_created",
	}).Info("project created")

	return project, nil
}

func (s *ProjectService) List(ctx context.Context, userID string) ([]domain.Project, error) {
	projects, err := s.projects.FindByMember(ctx, userID)
	if err != nil {
		return nil, commonerrors.ErrDatabaseError.WithCause(err)
	}
	return projects, nil
}

func (s *ProjectService) Get(ctx context.Context, projectID string) (domain.Project, error) {
	project, err := s.projects.FindByID(ctx, domain.ID(projectID))
	if err != nil {
		if errors.Is(err, projectrepo.ErrProjectNotFound) {
			return domain.Project{}, commonerrors.ErrProjectNotFound
		}
		return domain.Project{}, commonerrors.ErrDatabaseError.WithCause(err)
	}
	return project, nil
}

// UpdateStatus sets status and progress together. Progress is clamped to
// 0..100 and forced to 100 when the project is marked completed.
func (s *ProjectService) UpdateStatus(ctx context.Context, projectID, status string, progress int) (domain.Project, error) {
	st := domain.Status(status)
	if !st.Valid() {
		return domain.Project{}, commonerrors.ErrValidationFailed
	}

	if progress < 0 {
		progress = 0
	}
	if progress > 100 || st == domain.StatusCompleted {
		progress = 100
	}

	project, err := s.projects.UpdateStatus(ctx, domain.ID(projectID), st, progress)
	if err != nil {
		if errors.Is(err, projectrepo.ErrProjectNotFound) {
			return domain.Project{}, commonerrors.ErrProjectNotFound
		}
		return domain.Project{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"project_id": projectID,
		"status":     status,
		"action":     "project_status_updated",
	}).Info("project status updated")

	return project, nil
}

// AddMember resolves the student id to a user and appends them to the
// project. Completed projects are closed for membership changes.
func (s *ProjectService) AddMember(ctx context.Context, projectID, studentID string) (userdomain.Summary, error) {
	if strings.TrimSpace(studentID) == "" {
		return userdomain.Summary{}, commonerrors.ErrMissingFields
	}

	project, err := s.Get(ctx, projectID)
	if err != nil {
		return userdomain.Summary{}, err
	}
	if project.Status == domain.StatusCompleted {
		return userdomain.Summary{}, commonerrors.ErrProjectCompleted
	}

	user, err := s.users.FindByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return userdomain.Summary{}, commonerrors.ErrUserNotFound
		}
		return userdomain.Summary{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	if err := s.projects.AddMember(ctx, project.ID, user.ID); err != nil {
		switch {
		case errors.Is(err, projectrepo.ErrAlreadyMember):
			return userdomain.Summary{}, commonerrors.ErrAlreadyProjectMember
		case errors.Is(err, projectrepo.ErrProjectNotFound):
			return userdomain.Summary{}, commonerrors.ErrProjectNotFound
		default:
			return userdomain.Summary{}, commonerrors.ErrDatabaseError.WithCause(err)
		}
	}

	s.log.WithFields(ctx, logger.Fields{
		"project_id": projectID,
		"user_id":    string(user.ID),
		"action":     "project_member_added",
	}).Info("project member added")

	return userdomain.Summary{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		StudentID: user.StudentID,
	}, nil
}

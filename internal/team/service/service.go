package service

import (
	"context"
	"errors"
	"strings"

	commoncrypto "github.com/syncroapp/syncro-backend/internal/common/crypto"
	commonerrors "github.com/syncroapp/syncro-backend/internal/common/errors"
	"github.com/syncroapp/syncro-backend/internal/common/logger"
	"github.com/syncroapp/syncro-backend/internal/team/domain"
	teamrepo "github.com/syncroapp/syncro-backend/internal/team/repository"
	userdomain "github.com/syncroapp/syncro-backend/internal/user/domain"
	userrepo "github.com/syncroapp/syncro-backend/internal/user/repository"
)

type TeamService struct {
	teams       teamrepo.Repository
	users       userrepo.Repository
	idGenerator commoncrypto.IDGenerator
	log         *logger.Logger
}

type TeamServiceDeps struct {
	Teams       teamrepo.Repository
	Users       userrepo.Repository
	IDGenerator commoncrypto.IDGenerator
	Log         *logger.Logger
}

func NewTeamService(deps TeamServiceDeps) *TeamService {
	return &TeamService{
		teams:       deps.Teams,
		users:       deps.Users,
		idGenerator: deps.IDGenerator,
		log:         deps.Log,
	}
}

func (s *TeamService) Create(ctx context.Context, creatorID, name, description string) (domain.Team, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Team{}, commonerrors.ErrMissingFields
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return domain.Team{}, commonerrors.ErrInternalError.WithCause(err)
	}

	team := domain.Team{
		ID:          domain.ID(id),
		Name:        name,
		Description: description,
		CreatedBy:   userdomain.ID(creatorID),
		MemberIDs:   []string{creatorID},
	}

	if err := s.teams.Create(ctx, team); err != nil {
		return domain.Team{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"team_id": id,
		"user_id": creatorID,
		"action":  "team_created",
	}).Info("team created")

	return team, nil
}

func (s *TeamService) List(ctx context.Context, userID string) ([]domain.Overview, error) {
	overviews, err := s.teams.ListOverviewsByUser(ctx, userID)
	if err != nil {
		return nil, commonerrors.ErrDatabaseError.WithCause(err)
	}
	return overviews, nil
}

func (s *TeamService) Details(ctx context.Context, teamID string) (domain.Details, error) {
	details, err := s.teams.FindDetails(ctx, domain.ID(teamID))
	if err != nil {
		if errors.Is(err, teamrepo.ErrTeamNotFound) {
			return domain.Details{}, commonerrors.ErrTeamNotFound
		}
		return domain.Details{}, commonerrors.ErrDatabaseError.WithCause(err)
	}
	return details, nil
}

// AddMember resolves the identifier (student id or email) to a user and
// appends them to the roster. There is no remove operation.
func (s *TeamService) AddMember(ctx context.Context, teamID, identifier string) (userdomain.Summary, error) {
	if strings.TrimSpace(identifier) == "" {
		return userdomain.Summary{}, commonerrors.ErrMissingFields
	}

	user, err := s.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return userdomain.Summary{}, commonerrors.ErrUserNotFound
		}
		return userdomain.Summary{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	if _, err := s.teams.FindByID(ctx, domain.ID(teamID)); err != nil {
		if errors.Is(err, teamrepo.ErrTeamNotFound) {
			return userdomain.Summary{}, commonerrors.ErrTeamNotFound
		}
		return userdomain.Summary{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	if err := s.teams.AddMember(ctx, domain.ID(teamID), user.ID); err != nil {
		switch {
		case errors.Is(err, teamrepo.ErrAlreadyMember):
			return userdomain.Summary{}, commonerrors.ErrAlreadyTeamMember
		case errors.Is(err, teamrepo.ErrTeamNotFound):
			return userdomain.Summary{}, commonerrors.ErrTeamNotFound
		default:
			return userdomain.Summary{}, commonerrors.ErrDatabaseError.WithCause(err)
		}
	}

	s.log.WithFields(ctx, logger.Fields{
		"team_id": teamID,
		"user_id": string(user.ID),
		"action":  "team_member_added",
	}).Info("team member added")

	return userdomain.Summary{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		StudentID: user.StudentID,
	}, nil
}

package service

import (
	"context"
	"fmt"

	"github.com/syncroapp/syncro-backend/internal/checkin/domain"
	checkinrepo "github.com/syncroapp/syncro-backend/internal/checkin/repository"
	"github.com/syncroapp/syncro-backend/internal/common/clock"
	commoncrypto "github.com/syncroapp/syncro-backend/internal/common/crypto"
	commonerrors "github.com/syncroapp/syncro-backend/internal/common/errors"
	"github.com/syncroapp/syncro-backend/internal/common/logger"
	"github.com/syncroapp/syncro-backend/internal/notify"
	userdomain "github.com/syncroapp/syncro-backend/internal/user/domain"
)

const defaultListLimit = 50

// Notifier is the fan-out seam; the notification engine implements it.
type Notifier interface {
	FanOut(ctx context.Context, event notify.Event) (notify.Result, error)
}

type CheckinService struct {
	checkins    checkinrepo.Repository
	notifier    Notifier
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	log         *logger.Logger
}

type CheckinServiceDeps struct {
	Checkins    checkinrepo.Repository
	Notifier    Notifier
	IDGenerator commoncrypto.IDGenerator
	Clock       clock.Clock
	Log         *logger.Logger
}

func NewCheckinService(deps CheckinServiceDeps) *CheckinService {
	return &CheckinService{
		checkins:    deps.Checkins,
		notifier:    deps.Notifier,
		idGenerator: deps.IDGenerator,
		clock:       deps.Clock,
		log:         deps.Log,
	}
}

type SubmitInput struct {
	Mood        int
	Energy      int
	Blockers    []string
	NextSteps   string
	WorkDone    string
	HoursWorked float64
}

type SubmitResult struct {
	Checkin           domain.Checkin
	NotifiedUsers     []string
	NotificationsSent int
	TeamsFound        int
}

// Submit persists the check-in and then notifies team co-members. The
// notification leg is best-effort: a failed fan-out never undoes or fails
// the saved check-in.
func (s *CheckinService) Submit(ctx context.Context, userID, userName string, input SubmitInput) (SubmitResult, error) {
	if input.Mood < 1 || input.Mood > 5 || input.Energy < 1 || input.Energy > 5 {
		return SubmitResult{}, commonerrors.ErrValidationFailed
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return SubmitResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	blockers := input.Blockers
	if blockers == nil {
		blockers = []string{}
	}

	checkin := domain.Checkin{
		ID:          domain.ID(id),
		UserID:      userdomain.ID(userID),
		Mood:        input.Mood,
		Energy:      input.Energy,
		Blockers:    blockers,
		NextSteps:   input.NextSteps,
		WorkDone:    input.WorkDone,
		HoursWorked: input.HoursWorked,
		CreatedAt:   s.clock.Now().UTC(),
	}

	if err := s.checkins.Create(ctx, checkin); err != nil {
		return SubmitResult{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	result := SubmitResult{Checkin: checkin}

	fanout, err := s.notifier.FanOut(ctx, notify.Event{
		Kind:      notify.KindCheckin,
		ActorID:   userID,
		ActorName: userName,
		Message:   fmt.Sprintf("%s just checked in.", userName),
		Timestamp: checkin.CreatedAt,
	})
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id":    userID,
			"checkin_id": id,
			"action":     "checkin_notify_failed",
		}).Warnf("check-in saved but notification fan-out failed: %v", err)
		return result, nil
	}

	// notifiedUsers is everyone considered, connected or not; only
	// notificationsSent counts actual deliveries.
	result.NotifiedUsers = fanout.CandidateIDs
	result.NotificationsSent = fanout.Delivered
	result.TeamsFound = fanout.TeamsFound

	s.log.WithFields(ctx, logger.Fields{
		"user_id":    userID,
		"checkin_id": id,
		"notified":   fanout.Delivered,
		"action":     "checkin_submitted",
	}).Info("check-in submitted")

	return result, nil
}

func (s *CheckinService) List(ctx context.Context, userID string) ([]domain.Checkin, error) {
	checkins, err := s.checkins.FindByUser(ctx, userID, defaultListLimit)
	if err != nil {
		return nil, commonerrors.ErrDatabaseError.WithCause(err)
	}
	return checkins, nil
}

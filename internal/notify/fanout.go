package notify

import (
	"context"
	"sync"

	commonerrors "github.com/syncroapp/syncro-backend/internal/common/errors"
	"github.com/syncroapp/syncro-backend/internal/common/logger"
	"github.com/syncroapp/syncro-backend/internal/observability/metrics"
)

// Team is the membership view the fan-out works with.
type Team struct {
	ID        string
	Name      string
	MemberIDs []string
}

// TeamResolver looks up every team the user belongs to. A failure here
// aborts the whole fan-out: without the rosters there are no recipients.
type TeamResolver interface {
	TeamsForUser(ctx context.Context, userID string) ([]Team, error)
}

// Delivery is the presence-gated push channel. The hub implements it.
type Delivery interface {
	IsPresent(userID string) bool
	SendToUser(ctx context.Context, userID string, msg *WSMessage) error
}

type Engine struct {
	resolver TeamResolver
	delivery Delivery
	log      *logger.Logger
}

func NewEngine(resolver TeamResolver, delivery Delivery, log *logger.Logger) *Engine {
	return &Engine{resolver: resolver, delivery: delivery, log: log}
}

type Result struct {
	TeamsFound int
	Candidates int
	Delivered  int
	// CandidateIDs lists every co-member considered, present or not, in
	// candidate order. DeliveredTo is the subset that actually received
	// the event.
	CandidateIDs []string
	DeliveredTo  []string
}

type candidate struct {
	userID   string
	teamName string
}

// FanOut pushes the event to every co-member of the actor's teams, at most
// once per user per event, skipping the actor and anyone offline. Deliveries
// run concurrently and are awaited before returning; one recipient failing
// never blocks the rest.
func (e *Engine) FanOut(ctx context.Context, event Event) (Result, error) {
	metrics.FanOutEventsTotal.WithLabelValues(string(event.Kind)).Inc()

	teams, err := e.resolver.TeamsForUser(ctx, event.ActorID)
	if err != nil {
		metrics.FanOutAborted.Inc()
		e.log.WithFields(ctx, logger.Fields{
			"user_id": event.ActorID,
			"kind":    string(event.Kind),
			"action":  "fanout_aborted",
		}).Errorf("notification fan-out aborted: %v", err)
		return Result{}, commonerrors.ErrTeamLookupFailed.WithCause(err)
	}

	return e.deliver(ctx, event, teams), nil
}

// FanOutToTeam scopes delivery to one known roster; used for events that
// belong to a specific team rather than to every team of the actor.
func (e *Engine) FanOutToTeam(ctx context.Context, event Event, team Team) Result {
	metrics.FanOutEventsTotal.WithLabelValues(string(event.Kind)).Inc()
	return e.deliver(ctx, event, []Team{team})
}

func (e *Engine) deliver(ctx context.Context, event Event, teams []Team) Result {
	// Candidate order follows team order, then roster order. The first team
	// that names a user wins; later teams never re-add them.
	seen := map[string]struct{}{event.ActorID: {}}
	var candidates []candidate
	for _, team := range teams {
		for _, memberID := range team.MemberIDs {
			if _, dup := seen[memberID]; dup {
				continue
			}
			seen[memberID] = struct{}{}
			candidates = append(candidates, candidate{userID: memberID, teamName: team.Name})
		}
	}

	result := Result{
		TeamsFound: len(teams),
		Candidates: len(candidates),
	}
	for _, c := range candidates {
		result.CandidateIDs = append(result.CandidateIDs, c.userID)
	}
	metrics.FanOutCandidatesTotal.Add(float64(len(candidates)))

	delivered := make([]bool, len(candidates))
	var wg sync.WaitGroup
	for i, c := range candidates {
		if !e.delivery.IsPresent(c.userID) {
			continue
		}

		msg, err := marshalMessage(TypeNotification, event.payloadForTeam(c.teamName))
		if err != nil {
			metrics.FanOutDeliveryFailures.Inc()
			e.log.WithFields(ctx, logger.Fields{
				"user_id": c.userID,
				"kind":    string(event.Kind),
				"action":  "fanout_marshal_failed",
			}).Errorf("notification marshal failed: %v", err)
			continue
		}

		wg.Add(1)
		go func(i int, userID string, msg *WSMessage) {
			defer wg.Done()
			if err := e.delivery.SendToUser(ctx, userID, msg); err != nil {
				metrics.FanOutDeliveryFailures.Inc()
				e.log.WithFields(ctx, logger.Fields{
					"user_id": userID,
					"kind":    string(event.Kind),
					"action":  "fanout_delivery_failed",
				}).Warnf("notification delivery failed: %v", err)
				return
			}
			delivered[i] = true
		}(i, c.userID, msg)
	}
	wg.Wait()

	for i, ok := range delivered {
		if ok {
			result.Delivered++
			result.DeliveredTo = append(result.DeliveredTo, candidates[i].userID)
		}
	}
	metrics.FanOutDeliveredTotal.Add(float64(result.Delivered))

	e.log.WithFields(ctx, logger.Fields{
		"user_id":    event.ActorID,
		"kind":       string(event.Kind),
		"teams":      result.TeamsFound,
		"candidates": result.Candidates,
		"delivered":  result.Delivered,
		"action":     "fanout_complete",
	}).Info("notification fan-out complete")

	return result
}

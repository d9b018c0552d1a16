package notify

import (
	"context"
	"fmt"

	teamrepo "github.com/syncroapp/syncro-backend/internal/team/repository"
)

// TeamRepositoryResolver adapts the team repository to the fan-out's
// membership lookup. No caching: rosters are read fresh per event.
type TeamRepositoryResolver struct {
	teams teamrepo.Repository
}

func NewTeamRepositoryResolver(teams teamrepo.Repository) *TeamRepositoryResolver {
	return &TeamRepositoryResolver{teams: teams}
}

func (r *TeamRepositoryResolver) TeamsForUser(ctx context.Context, userID string) ([]Team, error) {
	found, err := r.teams.FindByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve teams for %s: %w", userID, err)
	}

	teams := make([]Team, 0, len(found))
	for _, t := range found {
		teams = append(teams, Team{
			ID:        string(t.ID),
			Name:      t.Name,
			MemberIDs: t.MemberIDs,
		})
	}
	return teams, nil
}

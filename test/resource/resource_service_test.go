package resource

import (
	"context"
	"errors"
	"strings"
	"testing"

	commonerrors "github.com/syncroapp/syncro-backend/internal/common/errors"
	resourcedomain "github.com/syncroapp/syncro-backend/internal/resource/domain"
	resourcerepo "github.com/syncroapp/syncro-backend/internal/resource/repository"
	resourceservice "github.com/syncroapp/syncro-backend/internal/resource/service"
	teamdomain "github.com/syncroapp/syncro-backend/internal/team/domain"
)

func TestCreateLinkNotifiesResourceTeam(t *testing.T) {
	svc, m := newResourceService(t, serviceMocks{})

	resource, err := svc.Create(context.Background(), "a1", "Alice", "t1", resourceservice.CreateInput{
		Title: "Team wiki",
		Type:  "link",
		URL:   "https://wiki.example.edu/alpha",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resource.URL != "https://wiki.example.edu/alpha" {
		t.Fatalf("unexpected url %q", resource.URL)
	}

	if len(m.notifier.fanOuts) != 1 {
		t.Fatalf("expected one fan-out, got %d", len(m.notifier.fanOuts))
	}
	got := m.notifier.fanOuts[0]
	if got.team.ID != "t1" {
		t.Fatalf("fan-out must target the resource's own team, got %q", got.team.ID)
	}
	if got.event.Action != "created" || got.event.ResourceType != "link" {
		t.Fatalf("unexpected event %+v", got.event)
	}
	want := `Alice uploaded a new link "Team wiki" 🔗`
	if got.event.Message != want {
		t.Fatalf("unexpected message %q, want %q", got.event.Message, want)
	}
}

func TestCreateFileStoresUpload(t *testing.T) {
	var saved resourcedomain.Resource
	repo := &mockResourceRepo{
		CreateFn: func(ctx context.Context, resource resourcedomain.Resource) error {
			saved = resource
			return nil
		},
	}

	svc, _ := newResourceService(t, serviceMocks{resources: repo})

	_, err := svc.Create(context.Background(), "a1", "Alice", "t1", resourceservice.CreateInput{
		Title: "Sprint report",
		Type:  "file",
		File: &resourceservice.FileUpload{
			Name:   "report.pdf",
			Reader: strings.NewReader("%PDF-1.4"),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.FileName != "report.pdf" {
		t.Fatalf("unexpected file name %q", saved.FileName)
	}
	if saved.FilePath == "" {
		t.Fatal("expected a stored file path")
	}
}

func TestCreateFileWithoutUpload(t *testing.T) {
	svc, _ := newResourceService(t, serviceMocks{})

	_, err := svc.Create(context.Background(), "a1", "Alice", "t1", resourceservice.CreateInput{
		Title: "Sprint report",
		Type:  "file",
	})
	de, ok := commonerrors.AsDomainError(err)
	if !ok || de.Code() != "MISSING_FIELDS" {
		t.Fatalf("expected MISSING_FIELDS, got %v", err)
	}
}

func TestCreateRemovesFileWhenInsertFails(t *testing.T) {
	repo := &mockResourceRepo{
		CreateFn: func(ctx context.Context, resource resourcedomain.Resource) error {
			return errors.New("connection reset")
		},
	}

	svc, m := newResourceService(t, serviceMocks{resources: repo})

	_, err := svc.Create(context.Background(), "a1", "Alice", "t1", resourceservice.CreateInput{
		Title: "Sprint report",
		Type:  "file",
		File: &resourceservice.FileUpload{
			Name:   "report.pdf",
			Reader: strings.NewReader("%PDF-1.4"),
		},
	})
	de, ok := commonerrors.AsDomainError(err)
	if !ok || de.Code() != "DATABASE_ERROR" {
		t.Fatalf("expected DATABASE_ERROR, got %v", err)
	}
	if len(m.files.removed) != 1 {
		t.Fatalf("expected the upload to be rolled back, removed=%v", m.files.removed)
	}
}

func TestCreateRejectsUnknownType(t *testing.T) {
	svc, m := newResourceService(t, serviceMocks{})

	_, err := svc.Create(context.Background(), "a1", "Alice", "t1", resourceservice.CreateInput{
		Title: "something",
		Type:  "video",
	})
	de, ok := commonerrors.AsDomainError(err)
	if !ok || de.Code() != "INVALID_RESOURCE_TYPE" {
		t.Fatalf("expected INVALID_RESOURCE_TYPE, got %v", err)
	}
	if len(m.notifier.fanOuts) != 0 {
		t.Fatal("rejected resource must not notify anyone")
	}
}

func TestDeleteNotifiesAndRemovesFile(t *testing.T) {
	repo := &mockResourceRepo{
		FindByIDFn: func(ctx context.Context, id resourcedomain.ID) (resourcedomain.Resource, error) {
			return resourcedomain.Resource{
				ID:       id,
				TeamID:   "t1",
				Title:    "Sprint report",
				Type:     resourcedomain.TypeFile,
				FilePath: "/uploads/1700000000000-report.pdf",
			}, nil
		},
	}

	svc, m := newResourceService(t, serviceMocks{resources: repo})

	if err := svc.Delete(context.Background(), "a1", "Alice", "r1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.files.removed) != 1 {
		t.Fatalf("expected stored file removal, removed=%v", m.files.removed)
	}

	if len(m.notifier.fanOuts) != 1 {
		t.Fatalf("expected one fan-out, got %d", len(m.notifier.fanOuts))
	}
	event := m.notifier.fanOuts[0].event
	if event.Action != "deleted" {
		t.Fatalf("unexpected action %q", event.Action)
	}
	want := `Alice deleted file "Sprint report" 📎`
	if event.Message != want {
		t.Fatalf("unexpected message %q, want %q", event.Message, want)
	}
}

func TestDeleteSurvivesTeamLookupFailure(t *testing.T) {
	repo := &mockResourceRepo{
		FindByIDFn: func(ctx context.Context, id resourcedomain.ID) (resourcedomain.Resource, error) {
			return resourcedomain.Resource{ID: id, TeamID: "t1", Type: resourcedomain.TypeNote}, nil
		},
	}
	teams := &mockTeamRepo{
		FindByIDFn: func(ctx context.Context, id teamdomain.ID) (teamdomain.Team, error) {
			return teamdomain.Team{}, errors.New("connection reset")
		},
	}

	svc, m := newResourceService(t, serviceMocks{resources: repo, teams: teams})

	if err := svc.Delete(context.Background(), "a1", "Alice", "r1"); err != nil {
		t.Fatalf("delete must succeed even when notification is skipped: %v", err)
	}
	if len(m.notifier.fanOuts) != 0 {
		t.Fatal("expected no fan-out after team lookup failure")
	}
}

func TestDeleteUnknownResource(t *testing.T) {
	repo := &mockResourceRepo{
		FindByIDFn: func(ctx context.Context, id resourcedomain.ID) (resourcedomain.Resource, error) {
			return resourcedomain.Resource{}, resourcerepo.ErrResourceNotFound
		},
	}

	svc, _ := newResourceService(t, serviceMocks{resources: repo})

	err := svc.Delete(context.Background(), "a1", "Alice", "missing")
	de, ok := commonerrors.AsDomainError(err)
	if !ok || de.Code() != "RESOURCE_NOT_FOUND" {
		t.Fatalf("expected RESOURCE_NOT_FOUND, got %v", err)
	}
}

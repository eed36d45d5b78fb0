package service

import (
	"context"
	"testing"
	"time"

	"smartclinic-backend/internal/features/engagement/models"
	"smartclinic-backend/internal/features/engagement/repository"
)

type pair struct{ userID, contentID int64 }

type fakeEngagementRepo struct {
	progress  map[pair]*models.Progress
	favorites map[pair]bool
}

func newFakeEngagementRepo() *fakeEngagementRepo {
	return &fakeEngagementRepo{
		progress:  make(map[pair]*models.Progress),
		favorites: make(map[pair]bool),
	}
}

func (f *fakeEngagementRepo) UpsertProgress(_ context.Context, userID, contentID int64, update models.ProgressUpdate) (*models.Progress, error) {
	key := pair{userID, contentID}
	p, ok := f.progress[key]
	if !ok {
		p = &models.Progress{UserID: userID, ContentID: contentID}
		f.progress[key] = p
	}
	p.ProgressPercent = update.ProgressPercent
	p.SecondsWatched = update.SecondsWatched
	p.LastPosition = update.LastPosition
	p.LastWatchedAt = time.Now()
	// Mirrors the SQL: completion is sticky and completed_at is set once.
	if update.Completed && !p.Completed {
		p.Completed = true
		at := time.Now()
		p.CompletedAt = &at
	}
	copied := *p
	return &copied, nil
}

func (f *fakeEngagementRepo) GetProgress(_ context.Context, userID, contentID int64) (*models.Progress, error) {
	p, ok := f.progress[pair{userID, contentID}]
	if !ok {
		return nil, repository.ErrProgressNotFound
	}
	return p, nil
}

func (f *fakeEngagementRepo) ListProgress(_ context.Context, userID int64) ([]*models.Progress, error) {
	var out []*models.Progress
	for key, p := range f.progress {
		if key.userID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeEngagementRepo) AddFavorite(_ context.Context, userID, contentID int64) error {
	f.favorites[pair{userID, contentID}] = true
	return nil
}

func (f *fakeEngagementRepo) RemoveFavorite(_ context.Context, userID, contentID int64) error {
	delete(f.favorites, pair{userID, contentID})
	return nil
}

func (f *fakeEngagementRepo) ListFavorites(_ context.Context, userID int64) ([]*models.Favorite, error) {
	var out []*models.Favorite
	for key := range f.favorites {
		if key.userID == userID {
			out = append(out, &models.Favorite{UserID: key.userID, ContentID: key.contentID})
		}
	}
	return out, nil
}

func TestUpsertProgressClampsPercent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEngagementRepo()
	svc := NewEngagementService(repo)

	p, err := svc.UpsertProgress(ctx, 1, 10, models.ProgressUpdate{ProgressPercent: 150})
	if err != nil {
		t.Fatalf("UpsertProgress: %v", err)
	}
	if p.ProgressPercent != 100 {
		t.Fatalf("percent = %d, want 100", p.ProgressPercent)
	}

	p, err = svc.UpsertProgress(ctx, 1, 10, models.ProgressUpdate{ProgressPercent: -5})
	if err != nil {
		t.Fatalf("UpsertProgress: %v", err)
	}
	if p.ProgressPercent != 0 {
		t.Fatalf("percent = %d, want 0", p.ProgressPercent)
	}
}

func TestCompletedAtSetOnce(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEngagementRepo()
	svc := NewEngagementService(repo)

	first, err := svc.UpsertProgress(ctx, 1, 10, models.ProgressUpdate{ProgressPercent: 100, Completed: true})
	if err != nil {
		t.Fatalf("UpsertProgress: %v", err)
	}
	if first.CompletedAt == nil {
		t.Fatal("completed_at not stamped on completion")
	}
	stamped := *first.CompletedAt

	// Rewatching after completion keeps the original completion time.
	second, err := svc.UpsertProgress(ctx, 1, 10, models.ProgressUpdate{ProgressPercent: 40, Completed: true})
	if err != nil {
		t.Fatalf("UpsertProgress: %v", err)
	}
	if !second.Completed {
		t.Fatal("completion flag lost on rewatch")
	}
	if second.CompletedAt == nil || !second.CompletedAt.Equal(stamped) {
		t.Fatalf("completed_at changed: %v -> %v", stamped, second.CompletedAt)
	}
}

func TestToggleFavoriteIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEngagementRepo()
	svc := NewEngagementService(repo)

	for i := 0; i < 2; i++ {
		if err := svc.ToggleFavorite(ctx, 1, 10, true); err != nil {
			t.Fatalf("add favorite: %v", err)
		}
	}
	favorites, _ := svc.ListFavorites(ctx, 1)
	if len(favorites) != 1 {
		t.Fatalf("favorites after double add = %d, want 1", len(favorites))
	}

	for i := 0; i < 2; i++ {
		if err := svc.ToggleFavorite(ctx, 1, 10, false); err != nil {
			t.Fatalf("remove favorite: %v", err)
		}
	}
	favorites, _ = svc.ListFavorites(ctx, 1)
	if len(favorites) != 0 {
		t.Fatalf("favorites after double remove = %d, want 0", len(favorites))
	}
}

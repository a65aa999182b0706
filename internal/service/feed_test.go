package service_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"github.com/ashishjayamohan/pinpoint/internal/domain"
	"github.com/ashishjayamohan/pinpoint/internal/service"
	mock_service "github.com/ashishjayamohan/pinpoint/internal/service/mocks"
)

func TestRecentEventFeed_CacheHit(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := mock_service.NewMockEventCache(ctrl)
	repo := mock_service.NewMockEventRepository(ctrl)

	want := []domain.Event{{ID: uuid.New(), Title: "x"}}
	cache.EXPECT().GetRecent(gomock.Any()).Return(want, true, nil).Times(1)
	// No store round trip on a hit.

	feed := service.NewRecentEventFeed(cache, repo, time.Minute, 30*time.Second, newTestLogger())

	got, err := feed.Recent(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected events: %+v", got)
	}
}

func TestRecentEventFeed_CacheMissReadsStoreAndRefills(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := mock_service.NewMockEventCache(ctrl)
	repo := mock_service.NewMockEventRepository(ctrl)

	want := []domain.Event{{ID: uuid.New(), Title: "x"}}
	cache.EXPECT().GetRecent(gomock.Any()).Return(nil, false, nil).Times(1)
	repo.EXPECT().
		ListRecent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, since time.Time) ([]domain.Event, error) {
			if time.Since(since) > 2*time.Minute {
				t.Errorf("since further back than the window: %v", since)
			}
			return want, nil
		}).
		Times(1)
	cache.EXPECT().SetRecent(gomock.Any(), want, 30*time.Second).Return(nil).Times(1)

	feed := service.NewRecentEventFeed(cache, repo, time.Minute, 30*time.Second, newTestLogger())

	got, err := feed.Recent(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected events: %+v", got)
	}
}

func TestRecentEventFeed_CacheErrorFallsBackToStore(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := mock_service.NewMockEventCache(ctrl)
	repo := mock_service.NewMockEventRepository(ctrl)

	want := []domain.Event{{ID: uuid.New(), Title: "x"}}
	cache.EXPECT().GetRecent(gomock.Any()).Return(nil, false, errors.New("redis down")).Times(1)
	repo.EXPECT().ListRecent(gomock.Any(), gomock.Any()).Return(want, nil).Times(1)
	cache.EXPECT().SetRecent(gomock.Any(), want, gomock.Any()).Return(errors.New("redis down")).Times(1)

	feed := service.NewRecentEventFeed(cache, repo, time.Minute, 30*time.Second, newTestLogger())

	got, err := feed.Recent(context.Background())
	if err != nil {
		t.Fatalf("cache trouble must not fail the feed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected events: %+v", got)
	}
}

func TestRecentEventFeed_StoreErrorPropagated(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := mock_service.NewMockEventCache(ctrl)
	repo := mock_service.NewMockEventRepository(ctrl)

	wantErr := errors.New("db down")
	cache.EXPECT().GetRecent(gomock.Any()).Return(nil, false, nil).Times(1)
	repo.EXPECT().ListRecent(gomock.Any(), gomock.Any()).Return(nil, wantErr).Times(1)

	feed := service.NewRecentEventFeed(cache, repo, time.Minute, 30*time.Second, newTestLogger())

	if _, err := feed.Recent(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
}

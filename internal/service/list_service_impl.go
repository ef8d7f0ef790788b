package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/gabelguru/internal/calendar"
	"github.com/alexanderramin/gabelguru/internal/domain"
)

type listService struct {
	backend  Backend
	cache    *Cache
	observer UseCaseObserver
}

func NewListService(backend Backend, cache *Cache, observers ...UseCaseObserver) ListService {
	return &listService{backend: backend, cache: cache, observer: useCaseObserverOrNoop(observers)}
}

func (s *listService) All(ctx context.Context) (data *ListsData, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "load-lists", time.Now(), fields, &err)

	lists, fetchErr := s.backend.Lists(ctx)
	if fetchErr != nil {
		fields["fetch_error"] = fetchErr.Error()
		snap, cacheErr := s.cache.allLists(ctx)
		if cacheErr != nil {
			return nil, fetchErr
		}
		fields["offline"] = true
		return &ListsData{Lists: snap.Lists, Offline: true, FetchedAt: snap.FetchedAt}, nil
	}

	at := time.Now()
	if cacheErr := s.cache.saveLists(ctx, lists, at); cacheErr != nil {
		fields["cache_error"] = cacheErr.Error()
	}
	fields["lists"] = len(lists)
	return &ListsData{Lists: lists, FetchedAt: at}, nil
}

func (s *listService) Get(ctx context.Context, id int64) (*domain.List, error) {
	l, err := s.backend.List(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading list %d: %w", id, err)
	}
	return l, nil
}

func (s *listService) Create(ctx context.Context, date, name string) (list *domain.List, err error) {
	defer observe(ctx, s.observer, "create-list", time.Now(), map[string]any{"date": date}, &err)
	list, err = s.backend.CreateList(ctx, domain.ListInput{Date: calendar.NormalizeKey(date), Name: name})
	if err != nil {
		return nil, fmt.Errorf("creating list: %w", err)
	}
	return list, nil
}

// Move re-dates a list. Only the date is sent so name and status stay as
// they are on the server.
func (s *listService) Move(ctx context.Context, id int64, date string) (list *domain.List, err error) {
	defer observe(ctx, s.observer, "move-list", time.Now(), map[string]any{"list_id": id, "date": date}, &err)
	list, err = s.backend.UpdateList(ctx, id, domain.ListInput{Date: calendar.NormalizeKey(date)})
	if err != nil {
		return nil, fmt.Errorf("moving list %d: %w", id, err)
	}
	return list, nil
}

func (s *listService) Merge(ctx context.Context, targetID, sourceID int64) (err error) {
	fields := map[string]any{"target_id": targetID, "source_id": sourceID}
	defer observe(ctx, s.observer, "merge-lists", time.Now(), fields, &err)
	if targetID == sourceID {
		return fmt.Errorf("cannot merge list %d into itself", targetID)
	}
	if err = s.backend.MergeList(ctx, targetID, sourceID); err != nil {
		return fmt.Errorf("merging list %d into %d: %w", sourceID, targetID, err)
	}
	return nil
}

func (s *listService) Delete(ctx context.Context, id int64) (err error) {
	defer observe(ctx, s.observer, "delete-list", time.Now(), map[string]any{"list_id": id}, &err)
	if err = s.backend.DeleteList(ctx, id); err != nil {
		return fmt.Errorf("deleting list %d: %w", id, err)
	}
	return nil
}

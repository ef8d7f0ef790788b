package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/gabelguru/internal/calendar"
	"github.com/alexanderramin/gabelguru/internal/domain"
	"github.com/alexanderramin/gabelguru/internal/repository"
	"golang.org/x/sync/errgroup"
)

type weekPlanService struct {
	backend  Backend
	cache    *Cache
	observer UseCaseObserver
	now      func() time.Time
}

func NewWeekPlanService(backend Backend, cache *Cache, observers ...UseCaseObserver) WeekPlanService {
	return &weekPlanService{
		backend:  backend,
		cache:    cache,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

// LoadWeek fetches the week's menus and all lists in parallel. When the
// backend fails, the last cached snapshot of the week is served instead and
// the result is flagged Offline.
func (s *weekPlanService) LoadWeek(ctx context.Context, weekStart time.Time) (data *WeekData, err error) {
	r := calendar.WeekRange(weekStart)
	fields := map[string]any{"week": r.StartKey()}
	defer observe(ctx, s.observer, "load-week", s.now(), fields, &err)

	var menus []domain.Menu
	var lists []domain.List
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		menus, err = s.backend.Menus(gctx, r)
		return err
	})
	g.Go(func() error {
		var err error
		lists, err = s.backend.Lists(gctx)
		return err
	})

	if fetchErr := g.Wait(); fetchErr != nil {
		fields["fetch_error"] = fetchErr.Error()
		data, err = s.fromCache(ctx, r)
		if err != nil {
			return nil, fetchErr
		}
		fields["offline"] = true
		return data, nil
	}

	at := s.now()
	if cacheErr := s.cache.saveWeek(ctx, r.StartKey(), menus, lists, at); cacheErr != nil {
		fields["cache_error"] = cacheErr.Error()
	}
	fields["menus"] = len(menus)
	return &WeekData{
		Range:     r,
		Menus:     menus,
		Lists:     listsInRange(lists, r),
		FetchedAt: at,
	}, nil
}

func (s *weekPlanService) fromCache(ctx context.Context, r calendar.Range) (*WeekData, error) {
	week, err := s.cache.week(ctx, r.StartKey())
	if err != nil {
		return nil, fmt.Errorf("cached week %s: %w", r.StartKey(), err)
	}
	data := &WeekData{Range: r, Menus: week.Menus, Offline: true, FetchedAt: week.FetchedAt}
	snap, err := s.cache.allLists(ctx)
	switch {
	case err == nil:
		data.Lists = listsInRange(snap.Lists, r)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}
	return data, nil
}

// listsInRange keeps the lists dated inside r, preserving order.
func listsInRange(lists []domain.List, r calendar.Range) []domain.List {
	var out []domain.List
	for _, l := range lists {
		if r.Contains(l.Date) {
			out = append(out, l)
		}
	}
	return out
}

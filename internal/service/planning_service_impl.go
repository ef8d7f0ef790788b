package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/gabelguru/internal/api"
	"github.com/alexanderramin/gabelguru/internal/domain"
	"golang.org/x/sync/errgroup"
)

type planningService struct {
	backend  Backend
	observer UseCaseObserver
}

func NewPlanningService(backend Backend, observers ...UseCaseObserver) PlanningService {
	return &planningService{backend: backend, observer: useCaseObserverOrNoop(observers)}
}

// Load fetches planning data, units, the product catalog and saved
// substitutions concurrently. Any failure fails the whole load.
func (s *planningService) Load(ctx context.Context, listID int64) (bundle *PlanningBundle, err error) {
	fields := map[string]any{"list_id": listID}
	defer observe(ctx, s.observer, "load-planning", time.Now(), fields, &err)

	var b PlanningBundle
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := s.backend.PlanningData(gctx, listID)
		if err != nil {
			return fmt.Errorf("planning data: %w", err)
		}
		b.Data = *data
		return nil
	})
	g.Go(func() error {
		units, err := s.backend.Units(gctx)
		if err != nil {
			return fmt.Errorf("units: %w", err)
		}
		b.Units = units
		return nil
	})
	g.Go(func() error {
		products, err := s.backend.Products(gctx)
		if err != nil {
			return fmt.Errorf("products: %w", err)
		}
		b.Products = products
		return nil
	})
	g.Go(func() error {
		subs, err := s.backend.Substitutions(gctx, listID)
		if err != nil {
			return fmt.Errorf("substitutions: %w", err)
		}
		b.Substitutions = subs
		return nil
	})
	if err = g.Wait(); err != nil {
		return nil, fmt.Errorf("loading planning for list %d: %w", listID, err)
	}
	fields["ingredients"] = len(b.Data.Ingredients)
	return &b, nil
}

// Save persists product notes first, then creates all items in one bulk
// call. Note failures are counted but do not stop the save. An empty item
// batch skips the bulk call.
func (s *planningService) Save(ctx context.Context, listID int64, notes []domain.ProductNote, items []domain.BulkItem) (res *SaveResult, err error) {
	fields := map[string]any{"list_id": listID, "items": len(items), "notes": len(notes)}
	defer observe(ctx, s.observer, "save-planning", time.Now(), fields, &err)

	res = &SaveResult{}
	for _, n := range notes {
		if n.Note == "" {
			continue
		}
		if s.saveNote(ctx, n) != nil {
			res.NoteFailures++
		}
	}
	fields["note_failures"] = res.NoteFailures

	if len(items) == 0 {
		return res, nil
	}
	if err = s.backend.BulkCreateItems(ctx, listID, items); err != nil {
		return nil, fmt.Errorf("adding %d items to list %d: %w", len(items), listID, err)
	}
	res.ItemsCreated = len(items)
	return res, nil
}

// saveNote reports each note as its own use case so every failure is logged.
func (s *planningService) saveNote(ctx context.Context, n domain.ProductNote) (err error) {
	fields := map[string]any{"product_id": n.ProductID}
	defer observe(ctx, s.observer, "save-product-note", time.Now(), fields, &err)
	if err = s.backend.UpdateProduct(ctx, n.ProductID, api.ProductPatch{Note: n.Note}); err != nil {
		return fmt.Errorf("saving note for product %d: %w", n.ProductID, err)
	}
	return nil
}

func (s *planningService) SetSubstitution(ctx context.Context, listID, originalID, substituteID int64) (err error) {
	fields := map[string]any{"list_id": listID, "original_id": originalID, "substitute_id": substituteID}
	defer observe(ctx, s.observer, "set-substitution", time.Now(), fields, &err)
	if originalID == substituteID {
		return fmt.Errorf("product %d cannot substitute itself", originalID)
	}
	if err = s.backend.SaveSubstitution(ctx, listID, originalID, substituteID); err != nil {
		return fmt.Errorf("saving substitution: %w", err)
	}
	return nil
}

// ClearSubstitution removes a substitution: items already added to the list
// under the substitute product are deleted, the saved substitution is
// dropped, and fresh planning data is returned.
func (s *planningService) ClearSubstitution(ctx context.Context, listID, originalID, substituteID int64) (data *domain.PlanningData, err error) {
	fields := map[string]any{"list_id": listID, "original_id": originalID, "substitute_id": substituteID}
	defer observe(ctx, s.observer, "clear-substitution", time.Now(), fields, &err)

	list, err := s.backend.List(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("loading list %d: %w", listID, err)
	}
	deleted := 0
	for _, it := range list.ListItems {
		if it.ProductID != substituteID {
			continue
		}
		if err = s.backend.DeleteListItem(ctx, it.ID); err != nil {
			return nil, fmt.Errorf("deleting item %d: %w", it.ID, err)
		}
		deleted++
	}
	fields["items_deleted"] = deleted

	if err = s.backend.DeleteSubstitution(ctx, listID, originalID); err != nil {
		return nil, fmt.Errorf("deleting substitution: %w", err)
	}

	data, err = s.backend.PlanningData(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("refreshing planning data: %w", err)
	}
	return data, nil
}

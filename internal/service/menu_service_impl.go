package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/gabelguru/internal/domain"
)

type menuService struct {
	backend  Backend
	observer UseCaseObserver
}

func NewMenuService(backend Backend, observers ...UseCaseObserver) MenuService {
	return &menuService{backend: backend, observer: useCaseObserverOrNoop(observers)}
}

func (s *menuService) SaveSlot(ctx context.Context, existing *domain.Menu, in domain.MenuInput) (menu *domain.Menu, err error) {
	fields := map[string]any{"date": in.Date, "meal_type": string(in.MealType)}
	defer observe(ctx, s.observer, "save-slot", time.Now(), fields, &err)

	if !in.MealType.Valid() {
		return nil, fmt.Errorf("invalid meal type %q", in.MealType)
	}
	if existing != nil {
		fields["menu_id"] = existing.ID
		menu, err = s.backend.UpdateMenu(ctx, existing.ID, in)
		if err != nil {
			return nil, fmt.Errorf("updating menu %d: %w", existing.ID, err)
		}
		return menu, nil
	}
	menu, err = s.backend.CreateMenu(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("creating menu: %w", err)
	}
	return menu, nil
}

func (s *menuService) Delete(ctx context.Context, id int64) (err error) {
	defer observe(ctx, s.observer, "delete-menu", time.Now(), map[string]any{"menu_id": id}, &err)
	if err = s.backend.DeleteMenu(ctx, id); err != nil {
		return fmt.Errorf("deleting menu %d: %w", id, err)
	}
	return nil
}

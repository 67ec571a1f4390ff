package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/nutrimind/internal/domain"
)

// ErrNotFound is returned (wrapped) when a row does not exist.
var ErrNotFound = errors.New("not found")

// Date ranges are inclusive calendar days in domain.DateLayout.

type ProfileRepo interface {
	Get(ctx context.Context) (*domain.Profile, error)
	Upsert(ctx context.Context, p *domain.Profile) error
}

type FoodLogRepo interface {
	Create(ctx context.Context, f *domain.FoodLog) error
	GetByID(ctx context.Context, id string) (*domain.FoodLog, error)
	ListByDate(ctx context.Context, date string) ([]*domain.FoodLog, error)
	DailyTotals(ctx context.Context, from, to string) ([]domain.DayTotal, error)
	Delete(ctx context.Context, id string) error
}

type WaterLogRepo interface {
	Create(ctx context.Context, w *domain.WaterLog) error
	ListByDate(ctx context.Context, date string) ([]*domain.WaterLog, error)
	DailyTotals(ctx context.Context, from, to string) (map[string]float64, error)
	Delete(ctx context.Context, id string) error
}

type NutrientLogRepo interface {
	Create(ctx context.Context, n *domain.NutrientLog) error
	ListByDate(ctx context.Context, date string) ([]*domain.NutrientLog, error)
	DailyIntakes(ctx context.Context, from, to string) ([]domain.NutrientIntake, error)
	Delete(ctx context.Context, id string) error
}

// StateRepo stores JSON blobs in app_state. It satisfies state.Persister.
type StateRepo interface {
	LoadState(ctx context.Context, key string) ([]byte, bool, error)
	SaveState(ctx context.Context, key string, value []byte) error
	DeleteState(ctx context.Context, key string) error
}

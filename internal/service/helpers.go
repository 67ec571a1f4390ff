package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/nutrimind/internal/deficiency"
	"github.com/alexanderramin/nutrimind/internal/domain"
)

// observe reports one use case. Call it deferred with a pointer to the named error.
func (s *InsightService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err *error) {
	var e error
	if err != nil {
		e = *err
	}
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   e == nil,
		Err:       e,
		Fields:    fields,
	})
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func validateFoodItem(it FoodItem) error {
	if strings.TrimSpace(it.Name) == "" {
		return invalid("food name is required")
	}
	for _, v := range []float64{it.Calories, it.Protein, it.Carbs, it.Fat, it.Fiber} {
		if !validAmount(v) {
			return invalid("%s: amounts must be non-negative numbers", it.Name)
		}
	}
	return nil
}

func validateMealType(t domain.MealType) error {
	if !domain.ValidMealTypes[string(t)] {
		return invalid("unknown meal type %q (want breakfast, lunch, dinner or snack)", t)
	}
	return nil
}

func validateNutrient(id string) error {
	if _, ok := deficiency.Lookup(id); !ok {
		return invalid("unknown nutrient %q", id)
	}
	return nil
}

func validateSeverity(s domain.Severity) error {
	switch s {
	case domain.SeverityNotice, domain.SeverityWarning, domain.SeverityConcern:
		return nil
	}
	return invalid("unknown severity %q (want notice, warning or concern)", s)
}

// applyGoal copies the goal and every positive target onto p.
func applyGoal(p *domain.Profile, u GoalUpdate) error {
	if u.Goal != "" {
		if !domain.ValidGoalTypes[string(u.Goal)] {
			return invalid("unknown goal %q (want lose, maintain or gain)", u.Goal)
		}
		p.Goal = u.Goal
	}
	set := func(dst *float64, v float64, name string) error {
		if !validAmount(v) {
			return invalid("%s must be a non-negative number", name)
		}
		if v > 0 {
			*dst = v
		}
		return nil
	}
	for _, f := range []struct {
		dst  *float64
		v    float64
		name string
	}{
		{&p.CalorieTarget, u.CalorieTarget, "calorie target"},
		{&p.ProteinTarget, u.ProteinTarget, "protein target"},
		{&p.CarbsTarget, u.CarbsTarget, "carbs target"},
		{&p.FatTarget, u.FatTarget, "fat target"},
		{&p.FiberTarget, u.FiberTarget, "fiber target"},
		{&p.WaterTarget, u.WaterTarget, "water target"},
	} {
		if err := set(f.dst, f.v, f.name); err != nil {
			return err
		}
	}
	return nil
}

// DefaultProfile returns the targets a fresh install starts with.
func DefaultProfile(now time.Time) *domain.Profile {
	return &domain.Profile{
		Goal:          domain.GoalMaintain,
		CalorieTarget: 2000,
		ProteinTarget: 120,
		CarbsTarget:   250,
		FatTarget:     65,
		FiberTarget:   28,
		WaterTarget:   2500,
		StartedAt:     now,
	}
}

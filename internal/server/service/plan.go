package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ltj54/restructuring/internal/server/domain"
	"github.com/ltj54/restructuring/internal/server/store"
)

var ErrPlanNotFound = errors.New("service: no plan for user")

// PlanService manages the one-per-user restructuring plan.
type PlanService struct {
	Store store.Store
}

func (s *PlanService) GetForUser(ctx context.Context, userID int64) (domain.Plan, error) {
	plan, err := s.Store.Plans().GetPlanByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Plan{}, ErrPlanNotFound
		}
		return domain.Plan{}, fmt.Errorf("service: get plan: %w", err)
	}
	return plan, nil
}

// UpsertParams carries the plan fields a user may set. A repeat save
// replaces the existing plan instead of creating a second one.
type UpsertParams struct {
	Phase   string
	Persona string
	Needs   string
	Diary   string
}

func (s *PlanService) Upsert(ctx context.Context, userID int64, params UpsertParams) (domain.Plan, error) {
	plan := domain.Plan{
		UserID:  userID,
		Phase:   params.Phase,
		Persona: params.Persona,
		Needs:   params.Needs,
		Diary:   params.Diary,
	}
	saved, err := s.Store.Plans().UpsertPlan(ctx, plan)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("service: upsert plan: %w", err)
	}
	return saved, nil
}

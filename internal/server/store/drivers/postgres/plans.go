package postgres

import (
	"context"
	"time"

	"github.com/ltj54/restructuring/internal/server/domain"
)

type plansRepo struct {
	db dbtx
}

func (r *plansRepo) GetPlanByUser(ctx context.Context, userID int64) (domain.Plan, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, phase, persona, needs, diary, created_at, updated_at
		 FROM user_plans WHERE user_id = $1`, userID)

	var p domain.Plan
	err := row.Scan(&p.ID, &p.UserID, &p.Phase, &p.Persona, &p.Needs, &p.Diary,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Plan{}, mapNotFound(err)
	}
	return p, nil
}

func (r *plansRepo) UpsertPlan(ctx context.Context, p domain.Plan) (domain.Plan, error) {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_plans (user_id, phase, persona, needs, diary, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id) DO UPDATE SET
		   phase = EXCLUDED.phase,
		   persona = EXCLUDED.persona,
		   needs = EXCLUDED.needs,
		   diary = EXCLUDED.diary,
		   updated_at = EXCLUDED.updated_at`,
		p.UserID, p.Phase, p.Persona, p.Needs, p.Diary, now, now)
	if err != nil {
		return domain.Plan{}, err
	}

	return r.GetPlanByUser(ctx, p.UserID)
}

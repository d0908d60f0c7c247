package postgres

import (
	"context"
	"time"

	"github.com/ltj54/restructuring/internal/server/domain"
)

type insuranceRepo struct {
	db dbtx
}

func (r *insuranceRepo) ListProducts(ctx context.Context) ([]domain.InsuranceProduct, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, can_buy_privately, provider_name, provider_website, categories
		 FROM insurance_products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.InsuranceProduct
	for rows.Next() {
		var p domain.InsuranceProduct
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CanBuyPrivately,
			&p.ProviderName, &p.ProviderWebsite, &p.Categories); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *insuranceRepo) ListProfilesByUser(ctx context.Context, userID int64) ([]domain.InsuranceProfile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, source, provider_name, product_name, notes, active, valid_from, valid_to
		 FROM insurance_profiles WHERE user_id = $1 ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.InsuranceProfile
	for rows.Next() {
		var p domain.InsuranceProfile
		if err := rows.Scan(&p.ID, &p.UserID, &p.Source, &p.ProviderName, &p.ProductName,
			&p.Notes, &p.Active, &p.ValidFrom, &p.ValidTo); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *insuranceRepo) CreateProfile(ctx context.Context, p domain.InsuranceProfile) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO insurance_profiles (user_id, source, provider_name, product_name, notes, active, valid_from, valid_to)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		p.UserID, p.Source, p.ProviderName, p.ProductName, p.Notes, p.Active, p.ValidFrom, p.ValidTo).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *insuranceRepo) GetSnapshotByUser(ctx context.Context, userID int64) (domain.InsuranceSnapshot, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, source, types, uncertain, created_at
		 FROM insurance_snapshots WHERE user_id = $1`, userID)

	var s domain.InsuranceSnapshot
	err := row.Scan(&s.ID, &s.UserID, &s.Source, &s.Types, &s.Uncertain, &s.CreatedAt)
	if err != nil {
		return domain.InsuranceSnapshot{}, mapNotFound(err)
	}
	return s, nil
}

func (r *insuranceRepo) ReplaceSnapshot(ctx context.Context, s domain.InsuranceSnapshot) (domain.InsuranceSnapshot, error) {
	createdAt := s.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO insurance_snapshots (user_id, source, types, uncertain, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id) DO UPDATE SET
		   source = EXCLUDED.source,
		   types = EXCLUDED.types,
		   uncertain = EXCLUDED.uncertain,
		   created_at = EXCLUDED.created_at`,
		s.UserID, s.Source, s.Types, s.Uncertain, createdAt)
	if err != nil {
		return domain.InsuranceSnapshot{}, err
	}

	return r.GetSnapshotByUser(ctx, s.UserID)
}

func (r *insuranceRepo) CreateRequest(ctx context.Context, req domain.InsuranceRequest) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO insurance_requests (user_id, status, content, created_at, submitted_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		req.UserID, req.Status, req.Content, req.CreatedAt, req.SubmittedAt).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

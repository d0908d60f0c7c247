package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ltj54/restructuring/internal/server/domain"
	"github.com/ltj54/restructuring/internal/server/store"
)

var (
	ErrInvalidInsuranceSource = errors.New("service: invalid insurance source")
	ErrInvalidInsuranceType   = errors.New("service: invalid insurance type")
	ErrSnapshotNotFound       = errors.New("service: no snapshot for user")
)

// InsuranceService covers the insurance catalog, a user's registered
// insurances, the coverage snapshot and submitted requests.
type InsuranceService struct {
	Store store.Store
}

func (s *InsuranceService) ListProducts(ctx context.Context) ([]domain.InsuranceProduct, error) {
	products, err := s.Store.Insurance().ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: list insurance products: %w", err)
	}
	return products, nil
}

// RegisterProfileParams carries the fields a user supplies when adding one
// of their own insurances. Source is matched case-insensitively.
type RegisterProfileParams struct {
	Source       string
	ProviderName string
	ProductName  string
	Notes        string
	ValidFrom    string
	ValidTo      string
}

func (s *InsuranceService) RegisterProfile(ctx context.Context, userID int64, params RegisterProfileParams) (domain.InsuranceProfile, error) {
	source := strings.ToUpper(strings.TrimSpace(params.Source))
	if !domain.IsInsuranceSource(source) {
		return domain.InsuranceProfile{}, ErrInvalidInsuranceSource
	}

	profile := domain.InsuranceProfile{
		UserID:       userID,
		Source:       source,
		ProviderName: params.ProviderName,
		ProductName:  params.ProductName,
		Notes:        params.Notes,
		Active:       true,
		ValidFrom:    params.ValidFrom,
		ValidTo:      params.ValidTo,
	}
	id, err := s.Store.Insurance().CreateProfile(ctx, profile)
	if err != nil {
		return domain.InsuranceProfile{}, fmt.Errorf("service: create insurance profile: %w", err)
	}
	profile.ID = id
	return profile, nil
}

func (s *InsuranceService) ListProfiles(ctx context.Context, userID int64) ([]domain.InsuranceProfile, error) {
	profiles, err := s.Store.Insurance().ListProfilesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service: list insurance profiles: %w", err)
	}
	return profiles, nil
}

// SnapshotParams is the user's self-assessment. Types may be empty when the
// user marks the whole answer uncertain.
type SnapshotParams struct {
	Source    string
	Types     []string
	Uncertain bool
}

// SaveSnapshot replaces the caller's previous snapshot, if any.
func (s *InsuranceService) SaveSnapshot(ctx context.Context, userID int64, params SnapshotParams) (domain.InsuranceSnapshot, error) {
	source := strings.ToUpper(strings.TrimSpace(params.Source))
	if !domain.IsInsuranceSource(source) {
		return domain.InsuranceSnapshot{}, ErrInvalidInsuranceSource
	}

	types := make([]string, 0, len(params.Types))
	for _, t := range params.Types {
		t = strings.ToUpper(strings.TrimSpace(t))
		if !domain.IsInsuranceType(t) {
			return domain.InsuranceSnapshot{}, ErrInvalidInsuranceType
		}
		types = append(types, t)
	}

	snapshot := domain.InsuranceSnapshot{
		UserID:    userID,
		Source:    source,
		Types:     strings.Join(types, ","),
		Uncertain: params.Uncertain,
	}
	saved, err := s.Store.Insurance().ReplaceSnapshot(ctx, snapshot)
	if err != nil {
		return domain.InsuranceSnapshot{}, fmt.Errorf("service: save insurance snapshot: %w", err)
	}
	return saved, nil
}

func (s *InsuranceService) GetSnapshot(ctx context.Context, userID int64) (domain.InsuranceSnapshot, error) {
	snapshot, err := s.Store.Insurance().GetSnapshotByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.InsuranceSnapshot{}, ErrSnapshotNotFound
		}
		return domain.InsuranceSnapshot{}, fmt.Errorf("service: get insurance snapshot: %w", err)
	}
	return snapshot, nil
}

// SubmitRequest records a new insurance request for the user. The content
// is a minimal serialized form; document generation happens elsewhere.
func (s *InsuranceService) SubmitRequest(ctx context.Context, userID int64) (domain.InsuranceRequest, error) {
	now := time.Now().UTC()
	req := domain.InsuranceRequest{
		UserID:      userID,
		Status:      domain.InsuranceRequestStatusSent,
		Content:     fmt.Sprintf(`<insuranceRequest userId="%d"/>`, userID),
		CreatedAt:   now,
		SubmittedAt: now,
	}
	id, err := s.Store.Insurance().CreateRequest(ctx, req)
	if err != nil {
		return domain.InsuranceRequest{}, fmt.Errorf("service: create insurance request: %w", err)
	}
	req.ID = id
	return req, nil
}

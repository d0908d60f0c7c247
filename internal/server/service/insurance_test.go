package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ltj54/restructuring/internal/server/domain"
)

func TestInsuranceService_RegisterProfile(t *testing.T) {
	svc := &InsuranceService{Store: newFakeStore()}

	t.Run("valid profile", func(t *testing.T) {
		profile, err := svc.RegisterProfile(context.Background(), 1, RegisterProfileParams{
			Source:       "EMPLOYER",
			ProviderName: "Storebrand",
			ProductName:  "Behandlingsforsikring",
			ValidFrom:    "2026-01-01",
		})
		require.NoError(t, err)
		require.NotZero(t, profile.ID)
		require.True(t, profile.Active)
		require.Equal(t, domain.InsuranceSourceEmployer, profile.Source)
	})

	t.Run("source is normalized", func(t *testing.T) {
		profile, err := svc.RegisterProfile(context.Background(), 1, RegisterProfileParams{
			Source: " private ",
		})
		require.NoError(t, err)
		require.Equal(t, domain.InsuranceSourcePrivate, profile.Source)
	})

	t.Run("unknown source rejected", func(t *testing.T) {
		_, err := svc.RegisterProfile(context.Background(), 1, RegisterProfileParams{
			Source: "WORKPLACE",
		})
		require.ErrorIs(t, err, ErrInvalidInsuranceSource)

		_, err = svc.RegisterProfile(context.Background(), 1, RegisterProfileParams{})
		require.ErrorIs(t, err, ErrInvalidInsuranceSource)
	})
}

func TestInsuranceService_ListProfiles(t *testing.T) {
	svc := &InsuranceService{Store: newFakeStore()}

	_, err := svc.RegisterProfile(context.Background(), 1, RegisterProfileParams{Source: "EMPLOYER", ProductName: "first"})
	require.NoError(t, err)
	_, err = svc.RegisterProfile(context.Background(), 1, RegisterProfileParams{Source: "PRIVATE", ProductName: "second"})
	require.NoError(t, err)
	_, err = svc.RegisterProfile(context.Background(), 2, RegisterProfileParams{Source: "OTHER", ProductName: "someone else"})
	require.NoError(t, err)

	profiles, err := svc.ListProfiles(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	require.Equal(t, "second", profiles[0].ProductName)
	require.Equal(t, "first", profiles[1].ProductName)
}

func TestInsuranceService_Snapshot(t *testing.T) {
	svc := &InsuranceService{Store: newFakeStore()}

	t.Run("no snapshot yet", func(t *testing.T) {
		_, err := svc.GetSnapshot(context.Background(), 1)
		require.ErrorIs(t, err, ErrSnapshotNotFound)
	})

	t.Run("save and read back", func(t *testing.T) {
		saved, err := svc.SaveSnapshot(context.Background(), 1, SnapshotParams{
			Source: "employer",
			Types:  []string{"treatment", "PENSION"},
		})
		require.NoError(t, err)
		require.Equal(t, "TREATMENT,PENSION", saved.Types)
		require.Equal(t, domain.InsuranceSourceEmployer, saved.Source)

		got, err := svc.GetSnapshot(context.Background(), 1)
		require.NoError(t, err)
		require.Equal(t, saved.Types, got.Types)
	})

	t.Run("save replaces previous", func(t *testing.T) {
		_, err := svc.SaveSnapshot(context.Background(), 1, SnapshotParams{
			Source:    "OTHER",
			Uncertain: true,
		})
		require.NoError(t, err)

		got, err := svc.GetSnapshot(context.Background(), 1)
		require.NoError(t, err)
		require.Equal(t, domain.InsuranceSourceOther, got.Source)
		require.Empty(t, got.Types)
		require.True(t, got.Uncertain)
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		_, err := svc.SaveSnapshot(context.Background(), 1, SnapshotParams{
			Source: "EMPLOYER",
			Types:  []string{"TREATMENT", "DENTAL"},
		})
		require.ErrorIs(t, err, ErrInvalidInsuranceType)
	})

	t.Run("unknown source rejected", func(t *testing.T) {
		_, err := svc.SaveSnapshot(context.Background(), 1, SnapshotParams{Source: "NOWHERE"})
		require.ErrorIs(t, err, ErrInvalidInsuranceSource)
	})
}

func TestInsuranceService_SubmitRequest(t *testing.T) {
	svc := &InsuranceService{Store: newFakeStore()}

	req, err := svc.SubmitRequest(context.Background(), 42)
	require.NoError(t, err)
	require.NotZero(t, req.ID)
	require.Equal(t, domain.InsuranceRequestStatusSent, req.Status)
	require.Equal(t, `<insuranceRequest userId="42"/>`, req.Content)
	require.False(t, req.SubmittedAt.IsZero())
}

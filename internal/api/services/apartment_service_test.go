package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tiffinbox/internal/api/core"
	"tiffinbox/internal/api/domain/dto"
	"tiffinbox/internal/api/domain/models"
)

func TestApartmentValidateCreate(t *testing.T) {
	svc := NewApartmentService(newFakeApartmentRepo(), testLogger())

	valid := dto.CreateApartmentRequest{
		CatererID:  7,
		Name:       "Green Meadows",
		Address:    "12 MG Road",
		AccessCode: "GREEN2026",
	}
	assert.NoError(t, svc.ValidateCreate(valid))

	tests := []struct {
		name   string
		mutate func(*dto.CreateApartmentRequest)
	}{
		{"missing caterer id", func(r *dto.CreateApartmentRequest) { r.CatererID = 0 }},
		{"blank name", func(r *dto.CreateApartmentRequest) { r.Name = "   " }},
		{"blank address", func(r *dto.CreateApartmentRequest) { r.Address = "" }},
		{"access code too short", func(r *dto.CreateApartmentRequest) { r.AccessCode = "abc" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			assert.Error(t, svc.ValidateCreate(req))
		})
	}
}

func TestApartmentCreateRejectsDuplicateAccessCode(t *testing.T) {
	repo := newFakeApartmentRepo()
	svc := NewApartmentService(repo, testLogger())

	req := dto.CreateApartmentRequest{
		CatererID:  7,
		Name:       "Green Meadows",
		Address:    "12 MG Road",
		AccessCode: "GREEN2026",
	}
	_, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	req.Name = "Another Tower"
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, core.ErrDuplicateAccessCode)
}

func TestApartmentLinkByCode(t *testing.T) {
	repo := newFakeApartmentRepo()
	svc := NewApartmentService(repo, testLogger())

	apt, err := repo.Create(context.Background(), models.Apartment{
		CatererID: 7, Name: "Green Meadows", Address: "12 MG Road", AccessCode: "GREEN2026",
	})
	require.NoError(t, err)

	link, err := svc.LinkByCode(context.Background(), 42, "GREEN2026")
	require.NoError(t, err)
	assert.Equal(t, apt.ID, link.ApartmentID)
	assert.Equal(t, int64(7), link.CatererID)
	assert.Equal(t, "code", link.AddedVia)
}

func TestApartmentLinkByCodeUnknownCode(t *testing.T) {
	svc := NewApartmentService(newFakeApartmentRepo(), testLogger())

	_, err := svc.LinkByCode(context.Background(), 42, "NOPE1234")
	assert.ErrorIs(t, err, core.ErrAccessCodeNotFound)
}

func TestApartmentLinkByCodeTwiceConflicts(t *testing.T) {
	repo := newFakeApartmentRepo()
	svc := NewApartmentService(repo, testLogger())

	_, err := repo.Create(context.Background(), models.Apartment{
		CatererID: 7, Name: "Green Meadows", Address: "12 MG Road", AccessCode: "GREEN2026",
	})
	require.NoError(t, err)

	_, err = svc.LinkByCode(context.Background(), 42, "GREEN2026")
	require.NoError(t, err)

	_, err = svc.LinkByCode(context.Background(), 42, "GREEN2026")
	assert.ErrorIs(t, err, core.ErrCustomerAlreadyLinked)
}

func TestApartmentLinkManually(t *testing.T) {
	repo := newFakeApartmentRepo()
	svc := NewApartmentService(repo, testLogger())

	apt, err := repo.Create(context.Background(), models.Apartment{
		CatererID: 7, Name: "Green Meadows", Address: "12 MG Road", AccessCode: "GREEN2026",
	})
	require.NoError(t, err)

	link, err := svc.LinkManually(context.Background(), 7, 42, apt.ID)
	require.NoError(t, err)
	assert.Equal(t, "manual", link.AddedVia)
}

func TestApartmentLinkManuallyWrongCaterer(t *testing.T) {
	repo := newFakeApartmentRepo()
	svc := NewApartmentService(repo, testLogger())

	apt, err := repo.Create(context.Background(), models.Apartment{
		CatererID: 7, Name: "Green Meadows", Address: "12 MG Road", AccessCode: "GREEN2026",
	})
	require.NoError(t, err)

	// Another caterer must not see or link to this apartment.
	_, err = svc.LinkManually(context.Background(), 8, 42, apt.ID)
	assert.ErrorIs(t, err, core.ErrApartmentNotFound)
}

func TestApartmentStats(t *testing.T) {
	repo := newFakeApartmentRepo()
	svc := NewApartmentService(repo, testLogger())

	apt, err := repo.Create(context.Background(), models.Apartment{
		CatererID: 7, Name: "Green Meadows", Address: "12 MG Road", AccessCode: "GREEN2026",
	})
	require.NoError(t, err)

	_, err = svc.LinkByCode(context.Background(), 42, "GREEN2026")
	require.NoError(t, err)
	_, err = svc.LinkByCode(context.Background(), 43, "GREEN2026")
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, apt.ID, stats[0].ApartmentID)
	assert.Equal(t, 2, stats[0].CustomerCount)
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/segyhp/zakat-engine/internal/domain"
	customError "github.com/segyhp/zakat-engine/pkg/errors"
)

type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) Upsert(ctx context.Context, snapshot *domain.Snapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockSnapshotRepository) GetByDeviceID(ctx context.Context, deviceID string) (*domain.Snapshot, error) {
	args := m.Called(ctx, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}

func (m *MockSnapshotRepository) Delete(ctx context.Context, deviceID string) error {
	args := m.Called(ctx, deviceID)
	return args.Error(0)
}

type MockPreferenceRepository struct {
	mock.Mock
}

func (m *MockPreferenceRepository) SetActiveTab(ctx context.Context, deviceID, tab string) error {
	args := m.Called(ctx, deviceID, tab)
	return args.Error(0)
}

func (m *MockPreferenceRepository) GetActiveTab(ctx context.Context, deviceID string) (string, error) {
	args := m.Called(ctx, deviceID)
	return args.String(0), args.Error(1)
}

func newTestService(snapshots *MockSnapshotRepository, prefs *MockPreferenceRepository) *ZakatService {
	return NewZakatService(snapshots, prefs, testNisab(), zerolog.Nop())
}

func TestNormalize(t *testing.T) {
	declaration := domain.Declaration{
		Cash:              "100000",
		BankBalance:       "not a number",
		GoldGrams:         "-5",
		SilverGrams:       " 700 ",
		SilverRatePerGram: "80",
		Debts:             "",
		NisabBasis:        domain.NisabBasis("moon"),
		GoldHoldings: []domain.GoldHoldingDeclaration{
			{Purity: domain.GoldPurityCustom, PurityPercent: "75", Grams: "10", RatePerGram: "6000"},
			{Purity: domain.GoldPurity22K, Grams: "junk", RatePerGram: "5500"},
		},
	}

	input := Normalize(declaration)

	assert.True(t, input.Cash.Equal(amount("100000")))
	assert.True(t, input.BankBalance.IsZero(), "invalid text coerces to zero")
	assert.True(t, input.GoldGrams.IsZero(), "negative coerces to zero")
	assert.True(t, input.SilverGrams.Equal(amount("700")))
	assert.True(t, input.Debts.IsZero())
	assert.Equal(t, domain.NisabBasisSilver, input.NisabBasis, "unknown basis falls back to silver")

	assert.Len(t, input.GoldHoldings, 2)
	assert.True(t, input.GoldHoldings[0].PurityPercent.Equal(amount("75")))
	assert.True(t, input.GoldHoldings[1].Grams.IsZero())
	assert.True(t, input.GoldHoldings[1].PurityPercent.IsZero(),
		"purity percent only applies to the custom bucket")
}

func TestCalculate_FromDeclaration(t *testing.T) {
	svc := newTestService(&MockSnapshotRepository{}, &MockPreferenceRepository{})

	result := svc.Calculate(domain.Declaration{
		Cash:              "100000",
		SilverRatePerGram: "80",
		NisabBasis:        domain.NisabBasisSilver,
	})

	assert.True(t, result.Eligible)
	assert.True(t, result.ZakatDue.Equal(amount("2500")))
}

func TestSaveSnapshot(t *testing.T) {
	tests := []struct {
		name          string
		setupMocks    func(*MockSnapshotRepository, string)
		expectedError bool
		errorContains string
	}{
		{
			name: "Success - first save for device",
			setupMocks: func(repo *MockSnapshotRepository, deviceID string) {
				repo.On("GetByDeviceID", mock.Anything, deviceID).Return(nil, sql.ErrNoRows)
				repo.On("Upsert", mock.Anything, mock.MatchedBy(func(s *domain.Snapshot) bool {
					return s.DeviceID == deviceID && s.Declaration.Cash == "100"
				})).Return(nil)
			},
			expectedError: false,
		},
		{
			name: "Success - overwrite keeps row identity",
			setupMocks: func(repo *MockSnapshotRepository, deviceID string) {
				existing := &domain.Snapshot{ID: uuid.New(), DeviceID: deviceID}
				repo.On("GetByDeviceID", mock.Anything, deviceID).Return(existing, nil)
				repo.On("Upsert", mock.Anything, mock.MatchedBy(func(s *domain.Snapshot) bool {
					return s.ID == existing.ID
				})).Return(nil)
			},
			expectedError: false,
		},
		{
			name: "Failure - database error on lookup",
			setupMocks: func(repo *MockSnapshotRepository, deviceID string) {
				repo.On("GetByDeviceID", mock.Anything, deviceID).Return(nil, errors.New("connection refused"))
			},
			expectedError: true,
			errorContains: "database",
		},
		{
			name: "Failure - database error on upsert",
			setupMocks: func(repo *MockSnapshotRepository, deviceID string) {
				repo.On("GetByDeviceID", mock.Anything, deviceID).Return(nil, sql.ErrNoRows)
				repo.On("Upsert", mock.Anything, mock.Anything).Return(errors.New("write failed"))
			},
			expectedError: true,
			errorContains: "database",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshots := &MockSnapshotRepository{}
			deviceID := "device-1"
			tt.setupMocks(snapshots, deviceID)

			svc := newTestService(snapshots, &MockPreferenceRepository{})

			snapshot, err := svc.SaveSnapshot(context.Background(), deviceID, domain.Declaration{Cash: "100"})

			if tt.expectedError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				assert.Nil(t, snapshot)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, deviceID, snapshot.DeviceID)
			}

			snapshots.AssertExpectations(t)
		})
	}
}

func TestGetSnapshot_DefaultsWhenMissing(t *testing.T) {
	snapshots := &MockSnapshotRepository{}
	snapshots.On("GetByDeviceID", mock.Anything, "device-1").Return(nil, sql.ErrNoRows)

	svc := newTestService(snapshots, &MockPreferenceRepository{})

	snapshot, err := svc.GetSnapshot(context.Background(), "device-1")

	assert.NoError(t, err)
	assert.Equal(t, "device-1", snapshot.DeviceID)
	assert.Equal(t, domain.NisabBasisSilver, snapshot.Declaration.NisabBasis)
	assert.Empty(t, snapshot.Declaration.Cash)
	snapshots.AssertExpectations(t)
}

func TestResetSnapshot(t *testing.T) {
	snapshots := &MockSnapshotRepository{}
	snapshots.On("Delete", mock.Anything, "device-1").Return(nil)

	svc := newTestService(snapshots, &MockPreferenceRepository{})

	assert.NoError(t, svc.ResetSnapshot(context.Background(), "device-1"))
	snapshots.AssertExpectations(t)
}

func TestGetActiveTab(t *testing.T) {
	tests := []struct {
		name        string
		setupMocks  func(*MockPreferenceRepository)
		expectedTab string
	}{
		{
			name: "stored preference",
			setupMocks: func(prefs *MockPreferenceRepository) {
				prefs.On("GetActiveTab", mock.Anything, "device-1").Return("zakat", nil)
			},
			expectedTab: "zakat",
		},
		{
			name: "defaults to home when unset",
			setupMocks: func(prefs *MockPreferenceRepository) {
				prefs.On("GetActiveTab", mock.Anything, "device-1").Return("", customError.ErrPreferenceNotFound)
			},
			expectedTab: DefaultTab,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs := &MockPreferenceRepository{}
			tt.setupMocks(prefs)

			svc := newTestService(&MockSnapshotRepository{}, prefs)

			tab, err := svc.GetActiveTab(context.Background(), "device-1")

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedTab, tab)
			prefs.AssertExpectations(t)
		})
	}
}

func TestSummary(t *testing.T) {
	svc := newTestService(&MockSnapshotRepository{}, &MockPreferenceRepository{})

	result, summary := svc.Summary(domain.Declaration{
		Cash:              "100000",
		SilverRatePerGram: "80",
		NisabBasis:        domain.NisabBasisSilver,
	})

	assert.True(t, result.Eligible)
	assert.Contains(t, summary, "Net wealth: 100000.00")
	assert.Contains(t, summary, "Nisab threshold: 48988.80")
	assert.Contains(t, summary, "Zakat is due: 2500.00")
}

func TestSummary_RateMissing(t *testing.T) {
	svc := newTestService(&MockSnapshotRepository{}, &MockPreferenceRepository{})

	result, summary := svc.Summary(domain.Declaration{
		Cash:       "100000",
		NisabBasis: domain.NisabBasisSilver,
	})

	assert.True(t, result.NisabRateMissing)
	assert.Contains(t, summary, "undetermined")
	assert.Contains(t, summary, "No zakat is due")
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/segyhp/zakat-engine/internal/domain"
	"github.com/segyhp/zakat-engine/internal/repository"
	customError "github.com/segyhp/zakat-engine/pkg/errors"
	"github.com/segyhp/zakat-engine/pkg/numeric"
)

// DefaultTab is the navigation tab reported before a device stores one.
const DefaultTab = "home"

type ZakatService struct {
	snapshots repository.SnapshotRepository
	prefs     repository.PreferenceRepository
	nisab     NisabConfig
	logger    zerolog.Logger
}

func NewZakatService(
	snapshots repository.SnapshotRepository,
	prefs repository.PreferenceRepository,
	nisab NisabConfig,
	logger zerolog.Logger,
) *ZakatService {
	return &ZakatService{
		snapshots: snapshots,
		prefs:     prefs,
		nisab:     nisab,
		logger:    logger,
	}
}

// Calculate normalizes a raw declaration and runs the engine. Stateless:
// safe to call on every keystroke, nothing is persisted.
func (s *ZakatService) Calculate(declaration domain.Declaration) domain.ZakatResult {
	return Calculate(Normalize(declaration), s.nisab)
}

// Normalize converts a raw declaration to the engine's input. Empty,
// non-numeric and negative fields collapse to zero; an unrecognized basis
// falls back to silver, the lower and more commonly governing threshold.
func Normalize(declaration domain.Declaration) domain.ZakatInput {
	basis := declaration.NisabBasis
	if !basis.Valid() {
		basis = domain.NisabBasisSilver
	}

	input := domain.ZakatInput{
		Cash:              numeric.ParseAmount(declaration.Cash).OrZero(),
		BankBalance:       numeric.ParseAmount(declaration.BankBalance).OrZero(),
		GoldGrams:         numeric.ParseAmount(declaration.GoldGrams).OrZero(),
		GoldRatePerGram:   numeric.ParseAmount(declaration.GoldRatePerGram).OrZero(),
		SilverGrams:       numeric.ParseAmount(declaration.SilverGrams).OrZero(),
		SilverRatePerGram: numeric.ParseAmount(declaration.SilverRatePerGram).OrZero(),
		Investments:       numeric.ParseAmount(declaration.Investments).OrZero(),
		BusinessAssets:    numeric.ParseAmount(declaration.BusinessAssets).OrZero(),
		MoneyOwed:         numeric.ParseAmount(declaration.MoneyOwed).OrZero(),
		Debts:             numeric.ParseAmount(declaration.Debts).OrZero(),
		NisabBasis:        basis,
	}

	for _, holding := range declaration.GoldHoldings {
		normalized := domain.GoldHolding{
			Purity:      holding.Purity,
			Grams:       numeric.ParseAmount(holding.Grams).OrZero(),
			RatePerGram: numeric.ParseAmount(holding.RatePerGram).OrZero(),
		}
		if holding.Purity == domain.GoldPurityCustom {
			normalized.PurityPercent = numeric.ParseAmount(holding.PurityPercent).OrZero()
		}
		input.GoldHoldings = append(input.GoldHoldings, normalized)
	}

	return input
}

// SaveSnapshot overwrites the device's stored declaration, preserving the
// original row identity when one exists.
func (s *ZakatService) SaveSnapshot(ctx context.Context, deviceID string, declaration domain.Declaration) (*domain.Snapshot, error) {
	now := time.Now()
	snapshot := &domain.Snapshot{
		ID:          uuid.New(),
		DeviceID:    deviceID,
		Declaration: declaration,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	existing, err := s.snapshots.GetByDeviceID(ctx, deviceID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}
	if existing != nil {
		snapshot.ID = existing.ID
		snapshot.CreatedAt = existing.CreatedAt
	}

	if err := s.snapshots.Upsert(ctx, snapshot); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.logger.Debug().Str("device_id", deviceID).Msg("snapshot saved")
	return snapshot, nil
}

// GetSnapshot loads the device's stored declaration, or an all-unset default
// when none has been saved yet.
func (s *ZakatService) GetSnapshot(ctx context.Context, deviceID string) (*domain.Snapshot, error) {
	snapshot, err := s.snapshots.GetByDeviceID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.Snapshot{
				DeviceID:    deviceID,
				Declaration: domain.Declaration{NisabBasis: domain.NisabBasisSilver},
			}, nil
		}
		return nil, customError.WrapDatabaseError(err)
	}

	return snapshot, nil
}

// ResetSnapshot drops the device's stored declaration back to defaults.
func (s *ZakatService) ResetSnapshot(ctx context.Context, deviceID string) error {
	if err := s.snapshots.Delete(ctx, deviceID); err != nil {
		return customError.WrapDatabaseError(err)
	}

	s.logger.Debug().Str("device_id", deviceID).Msg("snapshot reset")
	return nil
}

// SetActiveTab stores the device's active navigation tab.
func (s *ZakatService) SetActiveTab(ctx context.Context, deviceID, tab string) error {
	return s.prefs.SetActiveTab(ctx, deviceID, tab)
}

// GetActiveTab returns the device's active navigation tab, defaulting to the
// home tab for devices that never stored one.
func (s *ZakatService) GetActiveTab(ctx context.Context, deviceID string) (string, error) {
	tab, err := s.prefs.GetActiveTab(ctx, deviceID)
	if err != nil {
		if errors.Is(err, customError.ErrPreferenceNotFound) {
			return DefaultTab, nil
		}
		return "", err
	}
	return tab, nil
}

// Summary computes the result and renders the shareable plain-text summary.
func (s *ZakatService) Summary(declaration domain.Declaration) (domain.ZakatResult, string) {
	result := s.Calculate(declaration)

	var b strings.Builder
	b.WriteString("Zakat Summary\n")
	fmt.Fprintf(&b, "Total assets: %s\n", result.TotalAssets.StringFixed(2))
	fmt.Fprintf(&b, "Debts due: %s\n", result.Breakdown.Debts.StringFixed(2))
	fmt.Fprintf(&b, "Net wealth: %s\n", result.NetWealth.StringFixed(2))
	fmt.Fprintf(&b, "Nisab basis: %s (%s g)\n",
		result.NisabBasis, s.nisab.Weight(result.NisabBasis))

	if result.NisabRateMissing {
		b.WriteString("Nisab threshold: undetermined, enter the current metal rate\n")
	} else {
		fmt.Fprintf(&b, "Nisab threshold: %s\n", result.NisabThreshold.StringFixed(2))
	}

	if result.Eligible {
		fmt.Fprintf(&b, "Zakat is due: %s (%s%% of net wealth)\n",
			result.ZakatDue.StringFixed(2), s.nisab.ZakatRate.Mul(oneHundred))
	} else {
		b.WriteString("No zakat is due\n")
	}

	return result, b.String()
}

package service

import (
	"errors"
	"testing"

	"marcenaria-api/internal/apperr"
	"marcenaria-api/internal/model"
	"marcenaria-api/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecurringCostBackfillsOnMonthListing(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)

	_, err := env.costs.Create(salonID, CostCreateRequest{
		Name:        "Aluguel galpão",
		Type:        "FIXO",
		Category:    "Estrutura",
		AmountCents: 250000,
		OccurredAt:  datePtr(2024, 1, 5),
		Recurring:   true,
	})
	require.NoError(t, err)

	costs, err := env.costs.ListMonth(salonID, "2024-04", repository.CostFilter{})
	require.NoError(t, err)
	require.Len(t, costs, 1)
	assert.Equal(t, "Aluguel galpão", costs[0].Name)
	assert.Equal(t, int64(250000), costs[0].AmountCents)
	assert.Equal(t, "2024-04", costs[0].YearMonth)

	// Gap months were materialized too.
	for _, ym := range []string{"2024-02", "2024-03"} {
		var count int64
		env.db.Model(&model.Cost{}).Where("salon_id = ? AND year_month = ?", salonID, ym).Count(&count)
		assert.Equal(t, int64(1), count, ym)
	}

	// Listing again creates nothing new.
	costs, err = env.costs.ListMonth(salonID, "2024-04", repository.CostFilter{})
	require.NoError(t, err)
	assert.Len(t, costs, 1)

	var total int64
	env.db.Model(&model.Cost{}).Where("salon_id = ?", salonID).Count(&total)
	assert.Equal(t, int64(4), total)
}

func TestDeactivatedRecurringCostStopsPropagating(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)

	cost, err := env.costs.Create(salonID, CostCreateRequest{
		Name:        "Assinatura software",
		AmountCents: 9900,
		OccurredAt:  datePtr(2024, 1, 10),
		Recurring:   true,
	})
	require.NoError(t, err)

	inactive := false
	_, err = env.costs.Patch(salonID, cost.ID, CostPatchRequest{Active: &inactive})
	require.NoError(t, err)

	costs, err := env.costs.ListMonth(salonID, "2024-03", repository.CostFilter{})
	require.NoError(t, err)
	assert.Empty(t, costs)
}

func TestOneOffCostNeverPropagates(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)

	_, err := env.costs.Create(salonID, CostCreateRequest{
		Name:        "Conserto serra",
		Type:        "VARIAVEL",
		AmountCents: 35000,
		OccurredAt:  datePtr(2024, 2, 15),
	})
	require.NoError(t, err)

	costs, err := env.costs.ListMonth(salonID, "2024-03", repository.CostFilter{})
	require.NoError(t, err)
	assert.Empty(t, costs)
}

func TestCostSummaryDailyBurden(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)

	_, err := env.costs.Create(salonID, CostCreateRequest{
		Name: "Aluguel", Type: "FIXO", AmountCents: 220000, OccurredAt: datePtr(2024, 5, 1),
	})
	require.NoError(t, err)
	_, err = env.costs.Create(salonID, CostCreateRequest{
		Name: "Lixas e cola", Type: "VARIAVEL", AmountCents: 11000, OccurredAt: datePtr(2024, 5, 12),
	})
	require.NoError(t, err)

	summary, err := env.costs.Summary(salonID, "2024-05", nil)
	require.NoError(t, err)
	assert.Equal(t, 22, summary.WorkDays)
	assert.Equal(t, int64(231000), summary.TotalCents)
	assert.Equal(t, int64(220000), summary.FixedCents)
	assert.Equal(t, int64(11000), summary.VariableCents)
	assert.Equal(t, int64(10500), summary.DailyCents)

	days := 20
	summary, err = env.costs.Summary(salonID, "2024-05", &days)
	require.NoError(t, err)
	assert.Equal(t, 20, summary.WorkDays)
	assert.Equal(t, int64(11550), summary.DailyCents)

	zero := 0
	_, err = env.costs.Summary(salonID, "2024-05", &zero)
	assert.True(t, errors.Is(err, apperr.ErrInvalid))
}

func TestCostGetScopedToSalon(t *testing.T) {
	env := newTestEnv(t)
	salonA := env.newSalon(t)
	salonB := env.newSalon(t)

	cost, err := env.costs.Create(salonA, CostCreateRequest{
		Name: "Energia elétrica", Type: "FIXO", AmountCents: 48000, OccurredAt: datePtr(2024, 5, 3),
	})
	require.NoError(t, err)

	found, err := env.costs.Get(salonA, cost.ID)
	require.NoError(t, err)
	assert.Equal(t, "Energia elétrica", found.Name)

	_, err = env.costs.Get(salonB, cost.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = env.costs.Get(salonA, uuid.New())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

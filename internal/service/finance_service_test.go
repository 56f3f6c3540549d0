package service

import (
	"testing"
	"time"

	"marcenaria-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCashflowCombinesAllLegs(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)
	client := env.newClient(t, salonID, "Marcos", "11655554444", model.ClientCliente)

	// Settled receivable installment inside the window: +15000.
	paidAt := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	receivable := &model.Receivable{
		SalonID: salonID, ClientID: &client.ID, Description: "Venda avulsa", TotalCents: 15000,
		Installments: []model.ReceivableInstallment{
			{Number: 1, DueDate: paidAt, AmountCents: 15000, Status: "PAGO", PaidAt: &paidAt},
		},
	}
	require.NoError(t, env.db.Create(receivable).Error)

	// Cost inside the window: -3000.
	_, err := env.costs.Create(salonID, CostCreateRequest{
		Name: "Energia", AmountCents: 3000, OccurredAt: datePtr(2024, 6, 15),
	})
	require.NoError(t, err)

	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	flow, err := env.finance.Flow(salonID, from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(15000), flow.InCents)
	assert.Equal(t, int64(3000), flow.OutCents)
	assert.Equal(t, int64(12000), flow.BalanceCents)
}

func TestCashflowRunningBalance(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)

	// Manual cash before the window: opening balance +10000.
	_, err := env.finance.CreateTransaction(salonID, CashTransactionRequest{
		Type: "IN", AmountCents: 10000, OccurredAt: datePtr(2024, 5, 20), Description: "Venda balcão",
	})
	require.NoError(t, err)

	// Inside the window: +4000 and -1500.
	_, err = env.finance.CreateTransaction(salonID, CashTransactionRequest{
		Type: "IN", AmountCents: 4000, OccurredAt: datePtr(2024, 6, 5),
	})
	require.NoError(t, err)
	_, err = env.finance.CreateTransaction(salonID, CashTransactionRequest{
		Type: "OUT", AmountCents: 1500, OccurredAt: datePtr(2024, 6, 6),
	})
	require.NoError(t, err)

	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	report, err := env.finance.Cashflow(salonID, from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), report.PreviousBalanceCents)
	assert.Equal(t, int64(2500), report.Period.BalanceCents)
	assert.Equal(t, int64(12500), report.CurrentBalanceCents)
}

func TestMonthSummaryOpenNeverNegative(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)
	client := env.newClient(t, salonID, "Tereza", "11544443333", model.ClientCliente)

	due := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	paidAt := due
	receivable := &model.Receivable{
		SalonID: salonID, ClientID: &client.ID, Description: "Reforma", TotalCents: 20000,
		Installments: []model.ReceivableInstallment{
			{Number: 1, DueDate: due, AmountCents: 20000, Status: "PAGO", PaidAt: &paidAt},
		},
	}
	require.NoError(t, env.db.Create(receivable).Error)

	summary, err := env.finance.Summary(salonID, "2024-06")
	require.NoError(t, err)
	assert.Equal(t, int64(20000), summary.ReceivableExpected)
	assert.Equal(t, int64(20000), summary.ReceivableReceived)
	assert.Equal(t, int64(0), summary.ReceivableOpen)
}

func TestReceivablesMonthFiltersByDueDate(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)
	client := env.newClient(t, salonID, "Otávio", "11433332222", model.ClientCliente)

	receivable := &model.Receivable{
		SalonID: salonID, ClientID: &client.ID, Description: "Mesa de jantar", TotalCents: 60000,
		Installments: []model.ReceivableInstallment{
			{Number: 1, DueDate: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), AmountCents: 30000, Status: "PENDENTE"},
			{Number: 2, DueDate: time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC), AmountCents: 30000, Status: "PENDENTE"},
		},
	}
	require.NoError(t, env.db.Create(receivable).Error)

	month, err := env.finance.ReceivablesMonth(salonID, "2024-06")
	require.NoError(t, err)
	assert.Equal(t, int64(30000), month.ExpectedCents)
	assert.Equal(t, int64(30000), month.OpenCents)

	insts := month.Installments.([]model.ReceivableInstallment)
	require.Len(t, insts, 1)
	assert.Equal(t, 1, insts[0].Number)
}

func TestCashCategoryDirectionMustMatch(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)

	cat, err := env.finance.CreateCategory(salonID, CashCategoryRequest{Name: "Gorjetas", Type: "IN"})
	require.NoError(t, err)

	_, err = env.finance.CreateTransaction(salonID, CashTransactionRequest{
		Type: "OUT", AmountCents: 500, CategoryID: &cat.ID,
	})
	require.Error(t, err)

	txn, err := env.finance.CreateTransaction(salonID, CashTransactionRequest{
		Type: "IN", AmountCents: 500, CategoryID: &cat.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, model.CashIn, txn.Type)
	assert.Equal(t, model.CashSourceManual, txn.Source)
}

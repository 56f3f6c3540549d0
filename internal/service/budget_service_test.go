package service

import (
	"errors"
	"testing"
	"time"

	"marcenaria-api/internal/apperr"
	"marcenaria-api/internal/billing"
	"marcenaria-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetApproveCreatesOrderAndReceivable(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)
	client := env.newClient(t, salonID, "Rafaela", "11933332222", model.ClientCliente)

	budget, err := env.budgets.Create(salonID, BudgetCreateRequest{
		ClientID:          client.ID,
		Items:             []ItemRequest{{Name: "Cozinha planejada", UnitPriceCents: 1200000}},
		PaymentMode:       "PARCELADO",
		PaymentMethod:     "PIX",
		InstallmentsCount: 4,
		FirstDueDate:      datePtr(2024, 8, 5),
	})
	require.NoError(t, err)
	assert.Equal(t, model.BudgetRascunho, budget.Status)

	result, err := env.budgets.Approve(salonID, budget.ID)
	require.NoError(t, err)

	assert.Equal(t, model.BudgetAprovado, result.Budget.Status)
	assert.NotNil(t, result.Budget.ApprovedAt)
	require.NotNil(t, result.Budget.ApprovedOrderID)
	assert.Equal(t, result.Order.ID, *result.Budget.ApprovedOrderID)

	assert.Equal(t, model.OrderPedido, result.Order.Status)
	assert.Equal(t, budget.TotalCents, result.Order.TotalCents)
	require.Len(t, result.Order.Items, 1)

	var receivable model.Receivable
	require.NoError(t, env.db.Preload("Installments").First(&receivable, "order_id = ?", result.Order.ID).Error)
	require.Len(t, receivable.Installments, 4)

	var sum int64
	for _, inst := range receivable.Installments {
		sum += inst.AmountCents
	}
	assert.Equal(t, budget.TotalCents, sum)
}

func TestBudgetApproveTwiceConflicts(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)
	client := env.newClient(t, salonID, "Bruno", "11922221111", model.ClientCliente)

	budget, err := env.budgets.Create(salonID, BudgetCreateRequest{
		ClientID: client.ID,
		Items:    []ItemRequest{{Name: "Home office", UnitPriceCents: 450000}},
	})
	require.NoError(t, err)

	_, err = env.budgets.Approve(salonID, budget.ID)
	require.NoError(t, err)

	_, err = env.budgets.Approve(salonID, budget.ID)
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	// Only one order ever exists for the budget.
	var count int64
	env.db.Model(&model.Order{}).Where("client_id = ?", client.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestBudgetApprovedRejectsEdits(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)
	client := env.newClient(t, salonID, "Sofia", "11911110000", model.ClientCliente)

	budget, err := env.budgets.Create(salonID, BudgetCreateRequest{
		ClientID: client.ID,
		Items:    []ItemRequest{{Name: "Closet", UnitPriceCents: 800000}},
	})
	require.NoError(t, err)

	_, err = env.budgets.Approve(salonID, budget.ID)
	require.NoError(t, err)

	notes := "nova observação"
	_, err = env.budgets.Patch(salonID, budget.ID, BudgetPatchRequest{Notes: &notes})
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	_, err = env.budgets.Send(salonID, budget.ID)
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	_, err = env.budgets.Cancel(salonID, budget.ID)
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	err = env.budgets.Delete(salonID, budget.ID)
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestBudgetApproveCopiesCustomInstallments(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)
	client := env.newClient(t, salonID, "Diego", "11900009999", model.ClientCliente)

	budget, err := env.budgets.Create(salonID, BudgetCreateRequest{
		ClientID:          client.ID,
		Items:             []ItemRequest{{Name: "Guarda-roupa", UnitPriceCents: 100000}},
		PaymentMode:       "PARCELADO",
		InstallmentsCount: 2,
		CustomInstallments: []BudgetInstallmentRequest{
			{DueDate: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), AmountCents: 70000},
			{DueDate: time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), AmountCents: 30000},
		},
	})
	require.NoError(t, err)
	require.Len(t, budget.Installments, 2)

	result, err := env.budgets.Approve(salonID, budget.ID)
	require.NoError(t, err)

	var receivable model.Receivable
	require.NoError(t, env.db.Preload("Installments").First(&receivable, "order_id = ?", result.Order.ID).Error)
	require.Len(t, receivable.Installments, 2)
	assert.Equal(t, int64(70000), receivable.Installments[0].AmountCents)
	assert.Equal(t, int64(30000), receivable.Installments[1].AmountCents)
	assert.Equal(t, billing.InstallmentPendente, receivable.Installments[0].Status)
}

func TestBudgetCustomInstallmentsMustSumToTotal(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)
	client := env.newClient(t, salonID, "Paula", "11899998888", model.ClientCliente)

	_, err := env.budgets.Create(salonID, BudgetCreateRequest{
		ClientID:          client.ID,
		Items:             []ItemRequest{{Name: "Balcão", UnitPriceCents: 100000}},
		PaymentMode:       "PARCELADO",
		InstallmentsCount: 2,
		CustomInstallments: []BudgetInstallmentRequest{
			{DueDate: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), AmountCents: 50000},
			{DueDate: time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), AmountCents: 30000},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrInvalid))
	assert.Contains(t, err.Error(), "80000")
}

func TestBudgetSendStampsSentAt(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)
	client := env.newClient(t, salonID, "Vera", "11888887777", model.ClientCliente)

	budget, err := env.budgets.Create(salonID, BudgetCreateRequest{
		ClientID: client.ID,
		Items:    []ItemRequest{{Name: "Aparador", UnitPriceCents: 60000}},
	})
	require.NoError(t, err)

	sent, err := env.budgets.Send(salonID, budget.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BudgetEnviado, sent.Status)
	assert.NotNil(t, sent.SentAt)
}

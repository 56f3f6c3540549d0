package service

import (
	"errors"
	"testing"

	"marcenaria-api/internal/apperr"
	"marcenaria-api/internal/billing"
	"marcenaria-api/internal/model"
	"marcenaria-api/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderCreateParceladoBuildsSchedule(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)
	client := env.newClient(t, salonID, "Maria", "11999990000", model.ClientCliente)

	order, err := env.orders.Create(salonID, OrderCreateRequest{
		ClientID: client.ID,
		Items: []ItemRequest{
			{Name: "Armário planejado", Quantity: 1, UnitPriceCents: 500000},
			{Name: "Prateleiras", Quantity: 4, UnitPriceCents: 25000},
		},
		DiscountCents:     10000,
		PaymentMode:       "PARCELADO",
		PaymentMethod:     "BOLETO",
		InstallmentsCount: 3,
		FirstDueDate:      datePtr(2024, 6, 10),
	})
	require.NoError(t, err)

	assert.Equal(t, model.OrderPedido, order.Status)
	assert.Equal(t, int64(600000), order.SubtotalCents)
	assert.Equal(t, int64(590000), order.TotalCents)
	require.Len(t, order.Items, 2)

	var receivable model.Receivable
	require.NoError(t, env.db.Preload("Installments").First(&receivable, "order_id = ?", order.ID).Error)
	assert.Equal(t, order.TotalCents, receivable.TotalCents)
	require.Len(t, receivable.Installments, 3)

	var sum int64
	for _, inst := range receivable.Installments {
		sum += inst.AmountCents
		assert.Equal(t, billing.InstallmentPendente, inst.Status)
		assert.Equal(t, billing.MethodBoleto, inst.Method)
	}
	assert.Equal(t, order.TotalCents, sum)
	assert.Equal(t, 10, receivable.Installments[0].DueDate.Day())
	assert.Equal(t, 7, int(receivable.Installments[1].DueDate.Month()))
}

func TestOrderCreateAvistaPaidNow(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)
	client := env.newClient(t, salonID, "João", "11988887777", model.ClientCliente)

	order, err := env.orders.Create(salonID, OrderCreateRequest{
		ClientID: client.ID,
		Items:    []ItemRequest{{Name: "Banco de jardim", UnitPriceCents: 80000}},
		PaidNow:  true,
	})
	require.NoError(t, err)

	var receivable model.Receivable
	require.NoError(t, env.db.Preload("Installments").First(&receivable, "order_id = ?", order.ID).Error)
	require.Len(t, receivable.Installments, 1)
	assert.Equal(t, billing.InstallmentPago, receivable.Installments[0].Status)
	assert.NotNil(t, receivable.Installments[0].PaidAt)
}

func TestOrderCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)
	client := env.newClient(t, salonID, "Ana", "11977776666", model.ClientCliente)

	_, err := env.orders.Create(salonID, OrderCreateRequest{
		ClientID: uuid.New(),
		Items:    []ItemRequest{{Name: "Mesa", UnitPriceCents: 1000}},
	})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = env.orders.Create(salonID, OrderCreateRequest{ClientID: client.ID})
	assert.True(t, errors.Is(err, apperr.ErrInvalid))

	_, err = env.orders.Create(salonID, OrderCreateRequest{
		ClientID: client.ID,
		Items:    []ItemRequest{{Name: "X", UnitPriceCents: 1000}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Item 1")

	_, err = env.orders.Create(salonID, OrderCreateRequest{
		ClientID:          client.ID,
		Items:             []ItemRequest{{Name: "Mesa", UnitPriceCents: 1000}},
		PaymentMode:       "PARCELADO",
		InstallmentsCount: 30,
	})
	assert.True(t, errors.Is(err, apperr.ErrInvalid))
}

func TestOrderPatchDeliveredStampsDate(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)
	client := env.newClient(t, salonID, "Pedro", "11966665555", model.ClientCliente)

	order, err := env.orders.Create(salonID, OrderCreateRequest{
		ClientID: client.ID,
		Items:    []ItemRequest{{Name: "Painel TV", UnitPriceCents: 150000}},
	})
	require.NoError(t, err)
	assert.Nil(t, order.DeliveredAt)

	status := "ENTREGUE"
	patched, err := env.orders.Patch(salonID, order.ID, OrderPatchRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, model.OrderEntregue, patched.Status)
	assert.NotNil(t, patched.DeliveredAt)
}

func TestOrderPatchReplacesItems(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)
	client := env.newClient(t, salonID, "Rita", "11933332222", model.ClientCliente)

	order, err := env.orders.Create(salonID, OrderCreateRequest{
		ClientID: client.ID,
		Items:    []ItemRequest{{Name: "Mesa de centro", UnitPriceCents: 100000}},
	})
	require.NoError(t, err)

	patched, err := env.orders.Patch(salonID, order.ID, OrderPatchRequest{
		Items: []ItemRequest{
			{Name: "Mesa de jantar", Quantity: 1, UnitPriceCents: 250000},
			{Name: "Cadeiras", Quantity: 4, UnitPriceCents: 50000},
		},
	})
	require.NoError(t, err)

	require.Len(t, patched.Items, 2)
	assert.Equal(t, int64(450000), patched.SubtotalCents)
	assert.Equal(t, int64(450000), patched.TotalCents)

	var count int64
	env.db.Model(&model.OrderItem{}).Where("order_id = ?", order.ID).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestOrderDeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)
	client := env.newClient(t, salonID, "Carla", "11955554444", model.ClientCliente)

	order, err := env.orders.Create(salonID, OrderCreateRequest{
		ClientID:          client.ID,
		Items:             []ItemRequest{{Name: "Estante", UnitPriceCents: 200000}},
		PaymentMode:       "PARCELADO",
		InstallmentsCount: 2,
	})
	require.NoError(t, err)

	require.NoError(t, env.orders.Delete(salonID, order.ID))

	var count int64
	env.db.Model(&model.Order{}).Where("id = ?", order.ID).Count(&count)
	assert.Zero(t, count)
	env.db.Model(&model.OrderItem{}).Where("order_id = ?", order.ID).Count(&count)
	assert.Zero(t, count)
	env.db.Model(&model.Receivable{}).Where("order_id = ?", order.ID).Count(&count)
	assert.Zero(t, count)
	env.db.Model(&model.ReceivableInstallment{}).Count(&count)
	assert.Zero(t, count)
}

func TestOrderTenantIsolation(t *testing.T) {
	env := newTestEnv(t)
	salonA := env.newSalon(t)
	salonB := env.newSalon(t)
	client := env.newClient(t, salonA, "Lucas", "11944443333", model.ClientCliente)

	order, err := env.orders.Create(salonA, OrderCreateRequest{
		ClientID: client.ID,
		Items:    []ItemRequest{{Name: "Cristaleira", UnitPriceCents: 300000}},
	})
	require.NoError(t, err)

	_, err = env.orders.Get(salonB, order.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	orders, err := env.orders.List(salonB, repository.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, orders)
}

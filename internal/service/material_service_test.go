package service

import (
	"errors"
	"testing"

	"marcenaria-api/internal/apperr"
	"marcenaria-api/internal/billing"
	"marcenaria-api/internal/model"
	"marcenaria-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchaseMovementBooksCostAndPayable(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)
	supplier := env.newClient(t, salonID, "Madeireira Ipê", "1133221100", model.ClientFornecedor)
	material := env.newMaterial(t, salonID, "MDF 18mm")

	movement, err := env.materials.RecordMovement(salonID, MovementRequest{
		MaterialID:        material.ID,
		Type:              "IN",
		Quantity:          10,
		SupplierID:        &supplier.ID,
		UnitCostCents:     5000,
		NfNumber:          "NF-123",
		OccurredAt:        datePtr(2024, 6, 3),
		GeneratePayable:   true,
		InstallmentsCount: 2,
		FirstDueDate:      datePtr(2024, 7, 1),
	})
	require.NoError(t, err)

	assert.Equal(t, model.SourcePurchase, movement.Source)
	assert.Equal(t, int64(50000), movement.TotalCostCents)
	require.NotNil(t, movement.PayableID)

	var payable model.Payable
	require.NoError(t, env.db.Preload("Installments").First(&payable, "id = ?", *movement.PayableID).Error)
	assert.Equal(t, int64(50000), payable.TotalCents)
	assert.Equal(t, "Estoque", payable.Category)
	require.Len(t, payable.Installments, 2)

	var cost model.Cost
	require.NoError(t, env.db.First(&cost, "salon_id = ? AND category = ?", salonID, "Estoque").Error)
	assert.Equal(t, model.CostVariavel, cost.Type)
	assert.Equal(t, int64(50000), cost.AmountCents)
	assert.Equal(t, "2024-06", cost.YearMonth)

	var price model.MaterialSupplierPrice
	require.NoError(t, env.db.First(&price, "material_id = ? AND supplier_id = ?", material.ID, supplier.ID).Error)
	assert.Equal(t, int64(5000), price.UnitCostCents)
}

func TestPurchaseCostDoesNotRecur(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)
	supplier := env.newClient(t, salonID, "Compensados Leste", "1177665544", model.ClientFornecedor)
	material := env.newMaterial(t, salonID, "Compensado 10mm")

	_, err := env.materials.RecordMovement(salonID, MovementRequest{
		MaterialID:    material.ID,
		Type:          "IN",
		Quantity:      5,
		SupplierID:    &supplier.ID,
		UnitCostCents: 8000,
		OccurredAt:    datePtr(2024, 6, 3),
	})
	require.NoError(t, err)

	costs, err := env.costs.ListMonth(salonID, "2024-07", repository.CostFilter{})
	require.NoError(t, err)
	assert.Empty(t, costs)
}

func TestPurchasePaidNowSettlesSingleInstallment(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)
	supplier := env.newClient(t, salonID, "Parafusos Centro", "1188776655", model.ClientBoth)
	material := env.newMaterial(t, salonID, "Parafuso 4x40")

	movement, err := env.materials.RecordMovement(salonID, MovementRequest{
		MaterialID:      material.ID,
		Type:            "IN",
		Quantity:        100,
		SupplierID:      &supplier.ID,
		UnitCostCents:   50,
		GeneratePayable: true,
		PaidNow:         true,
	})
	require.NoError(t, err)
	require.NotNil(t, movement.PayableID)

	var payable model.Payable
	require.NoError(t, env.db.Preload("Installments").First(&payable, "id = ?", *movement.PayableID).Error)
	require.Len(t, payable.Installments, 1)
	assert.Equal(t, billing.InstallmentPago, payable.Installments[0].Status)
	assert.NotNil(t, payable.Installments[0].PaidAt)
}

func TestOutMovementRequiresStock(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)
	supplier := env.newClient(t, salonID, "Madeireira Ipê", "1133221100", model.ClientFornecedor)
	material := env.newMaterial(t, salonID, "Fita de borda")

	_, err := env.materials.RecordMovement(salonID, MovementRequest{
		MaterialID: material.ID,
		Type:       "OUT",
		Quantity:   1,
	})
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	_, err = env.materials.RecordMovement(salonID, MovementRequest{
		MaterialID:    material.ID,
		Type:          "IN",
		Quantity:      10,
		SupplierID:    &supplier.ID,
		UnitCostCents: 100,
	})
	require.NoError(t, err)

	_, err = env.materials.RecordMovement(salonID, MovementRequest{
		MaterialID: material.ID,
		Type:       "OUT",
		Quantity:   4,
	})
	require.NoError(t, err)

	stock, err := env.materials.Stock(salonID)
	require.NoError(t, err)
	require.Len(t, stock, 1)
	assert.InDelta(t, 6.0, stock[0].Quantity, 1e-9)
}

func TestListMovementsMonthWindow(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)
	supplier := env.newClient(t, salonID, "Madeireira Ipê", "1133221100", model.ClientFornecedor)
	material := env.newMaterial(t, salonID, "MDF 15mm")

	_, err := env.materials.RecordMovement(salonID, MovementRequest{
		MaterialID:    material.ID,
		Type:          "IN",
		Quantity:      8,
		SupplierID:    &supplier.ID,
		UnitCostCents: 4000,
		OccurredAt:    datePtr(2024, 6, 10),
	})
	require.NoError(t, err)

	_, err = env.materials.RecordMovement(salonID, MovementRequest{
		MaterialID: material.ID,
		Type:       "OUT",
		Quantity:   2,
		OccurredAt: datePtr(2024, 7, 2),
	})
	require.NoError(t, err)

	from, to, err := billing.MonthRange("2024-06")
	require.NoError(t, err)

	movements, err := env.materials.ListMovements(salonID, repository.MovementFilter{From: from, To: to})
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, model.MovementIn, movements[0].Type)

	movements, err = env.materials.ListMovements(salonID, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Len(t, movements, 2)
}

func TestInMovementRequiresSupplierAndCost(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)
	client := env.newClient(t, salonID, "Cliente Comum", "11777776666", model.ClientCliente)
	material := env.newMaterial(t, salonID, "Dobradiça")

	_, err := env.materials.RecordMovement(salonID, MovementRequest{
		MaterialID: material.ID,
		Type:       "IN",
		Quantity:   5,
	})
	assert.True(t, errors.Is(err, apperr.ErrInvalid))

	_, err = env.materials.RecordMovement(salonID, MovementRequest{
		MaterialID:    material.ID,
		Type:          "IN",
		Quantity:      5,
		SupplierID:    &client.ID,
		UnitCostCents: 1000,
	})
	assert.True(t, errors.Is(err, apperr.ErrInvalid))
}

func TestAdjustMovementAltersBalance(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)
	material := env.newMaterial(t, salonID, "Cola branca")

	_, err := env.materials.RecordMovement(salonID, MovementRequest{
		MaterialID: material.ID,
		Type:       "ADJUST",
		Quantity:   3,
	})
	require.NoError(t, err)

	stock, err := env.materials.Stock(salonID)
	require.NoError(t, err)
	require.Len(t, stock, 1)
	assert.InDelta(t, 3.0, stock[0].Quantity, 1e-9)
}

package service

import (
	"errors"
	"testing"
	"time"

	"marcenaria-api/internal/apperr"
	"marcenaria-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayableCreateSumsInstallments(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)
	supplier := env.newClient(t, salonID, "Madeireira Ipê", "1133221100", model.ClientFornecedor)

	payable, err := env.payables.Create(salonID, PayableCreateRequest{
		SupplierID:    &supplier.ID,
		Description:   "Chapas de MDF",
		Category:      "Estoque",
		PaymentMethod: "BOLETO",
		Installments: []InstallmentRequest{
			{DueDate: time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC), AmountCents: 40000},
			{DueDate: time.Date(2024, 8, 10, 0, 0, 0, 0, time.UTC), AmountCents: 40000},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(80000), payable.TotalCents)
	require.Len(t, payable.Installments, 2)
}

func TestPayableRejectsNonSupplier(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)
	client := env.newClient(t, salonID, "Cliente Comum", "11777776666", model.ClientCliente)

	_, err := env.payables.Create(salonID, PayableCreateRequest{
		SupplierID:  &client.ID,
		Description: "Compra qualquer",
		Installments: []InstallmentRequest{
			{DueDate: time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC), AmountCents: 10000},
		},
	})
	assert.True(t, errors.Is(err, apperr.ErrInvalid))
}

func TestPayablePatchHeader(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)
	supplier := env.newClient(t, salonID, "Compensados Leste", "1122334455", model.ClientFornecedor)

	payable, err := env.payables.Create(salonID, PayableCreateRequest{
		SupplierID:  &supplier.ID,
		Description: "Compensado naval",
		Installments: []InstallmentRequest{
			{DueDate: time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC), AmountCents: 60000},
		},
	})
	require.NoError(t, err)

	desc := "Compensado naval 15mm"
	method := "PIX"
	updated, err := env.payables.Patch(salonID, payable.ID, PayablePatchRequest{
		Description:   &desc,
		PaymentMethod: &method,
	})
	require.NoError(t, err)
	assert.Equal(t, desc, updated.Description)
	assert.Equal(t, int64(60000), updated.TotalCents)

	empty := "  "
	_, err = env.payables.Patch(salonID, payable.ID, PayablePatchRequest{Description: &empty})
	assert.True(t, errors.Is(err, apperr.ErrInvalid))

	nonSupplier := env.newClient(t, salonID, "Cliente Final", "11888887777", model.ClientCliente)
	_, err = env.payables.Patch(salonID, payable.ID, PayablePatchRequest{SupplierID: &nonSupplier.ID})
	assert.True(t, errors.Is(err, apperr.ErrInvalid))
}

func TestPayableInstallmentPatchRecomputesTotal(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)
	supplier := env.newClient(t, salonID, "Ferragens Sul", "1144332211", model.ClientBoth)

	payable, err := env.payables.Create(salonID, PayableCreateRequest{
		SupplierID:  &supplier.ID,
		Description: "Dobradiças e corrediças",
		Installments: []InstallmentRequest{
			{DueDate: time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC), AmountCents: 30000},
			{DueDate: time.Date(2024, 8, 10, 0, 0, 0, 0, time.UTC), AmountCents: 30000},
		},
	})
	require.NoError(t, err)

	newAmount := int64(45000)
	updated, err := env.payables.PatchInstallment(salonID, payable.ID, payable.Installments[0].ID,
		PayableInstallmentPatchRequest{AmountCents: &newAmount})
	require.NoError(t, err)
	assert.Equal(t, int64(75000), updated.TotalCents)
}

func TestPayableInstallmentStatusControlsPaidAt(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)
	supplier := env.newClient(t, salonID, "Vidros Norte", "1155443322", model.ClientFornecedor)

	payable, err := env.payables.Create(salonID, PayableCreateRequest{
		SupplierID:  &supplier.ID,
		Description: "Portas de vidro",
		Installments: []InstallmentRequest{
			{DueDate: time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC), AmountCents: 90000},
		},
	})
	require.NoError(t, err)
	instID := payable.Installments[0].ID

	pago := "PAGO"
	updated, err := env.payables.PatchInstallment(salonID, payable.ID, instID,
		PayableInstallmentPatchRequest{Status: &pago})
	require.NoError(t, err)
	require.NotNil(t, updated.Installments[0].PaidAt)

	pendente := "PENDENTE"
	updated, err = env.payables.PatchInstallment(salonID, payable.ID, instID,
		PayableInstallmentPatchRequest{Status: &pendente})
	require.NoError(t, err)
	assert.Nil(t, updated.Installments[0].PaidAt)
}

func TestPayableInstallmentTenantIsolation(t *testing.T) {
	env := newTestEnv(t)
	salonA := env.newSalon(t)
	salonB := env.newSalon(t)
	supplier := env.newClient(t, salonA, "Tintas Oeste", "1166554433", model.ClientFornecedor)

	payable, err := env.payables.Create(salonA, PayableCreateRequest{
		SupplierID:  &supplier.ID,
		Description: "Verniz e seladora",
		Installments: []InstallmentRequest{
			{DueDate: time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC), AmountCents: 20000},
		},
	})
	require.NoError(t, err)

	pago := "PAGO"
	_, err = env.payables.PatchInstallment(salonB, payable.ID, payable.Installments[0].ID,
		PayableInstallmentPatchRequest{Status: &pago})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

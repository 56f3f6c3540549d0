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

func TestClientCreateNormalizesPhone(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)

	client, err := env.clients.Create(salonID, ClientRequest{
		Name:  "Dona Helena",
		Phone: "(11) 98877-6655",
	})
	require.NoError(t, err)
	assert.Equal(t, "11988776655", client.Phone)
	assert.Equal(t, model.ClientCliente, client.Type)
}

func TestClientDuplicatePhoneConflicts(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)

	_, err := env.clients.Create(salonID, ClientRequest{Name: "Helena", Phone: "11988776655"})
	require.NoError(t, err)

	_, err = env.clients.Create(salonID, ClientRequest{Name: "Outra Helena", Phone: "(11) 98877-6655"})
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	// The same phone is fine in another salon.
	otherSalon := env.newSalon(t)
	_, err = env.clients.Create(otherSalon, ClientRequest{Name: "Helena B", Phone: "11988776655"})
	assert.NoError(t, err)
}

func TestClientValidation(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)

	_, err := env.clients.Create(salonID, ClientRequest{Name: "X", Phone: "11988776655"})
	assert.True(t, errors.Is(err, apperr.ErrInvalid))

	_, err = env.clients.Create(salonID, ClientRequest{Name: "Helena", Phone: "123"})
	assert.True(t, errors.Is(err, apperr.ErrInvalid))

	_, err = env.clients.Create(salonID, ClientRequest{Name: "Helena", Phone: "11988776655", Type: "PARCEIRO"})
	assert.True(t, errors.Is(err, apperr.ErrInvalid))
}

func TestClientDeleteBlockedByAppointments(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)

	client, err := env.clients.Create(salonID, ClientRequest{Name: "Helena", Phone: "11988776655"})
	require.NoError(t, err)

	svc, err := env.catalog.Create(salonID, ServiceRequest{Name: "Medição", PriceCents: 10000, DurationMin: 30})
	require.NoError(t, err)

	_, err = env.appointments.Create(salonID, AppointmentRequest{
		ClientID:  client.ID,
		ServiceID: svc.ID,
		StartAt:   time.Date(2024, 6, 12, 14, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	err = env.clients.Delete(salonID, client.ID)
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestClientSupplierFilterIncludesBoth(t *testing.T) {
	env := newTestEnv(t)
	salonID := env.newSalon(t)

	env.newClient(t, salonID, "Cliente Puro", "11911112222", model.ClientCliente)
	env.newClient(t, salonID, "Fornecedor Puro", "11933334444", model.ClientFornecedor)
	env.newClient(t, salonID, "Misto", "11955556666", model.ClientBoth)

	suppliers, err := env.clients.List(salonID, "", "FORNECEDOR")
	require.NoError(t, err)
	require.Len(t, suppliers, 2)
	for _, s := range suppliers {
		assert.True(t, s.Type.IsSupplier())
	}
}

func TestAuthRegisterCreatesSalonAtomically(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.auth.Register(RegisterRequest{
		Name:      "Seu Zé",
		Email:     "ze@oficina.com.br",
		Password:  "segredo1",
		SalonName: "Marcenaria do Zé",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.Salon)
	assert.Equal(t, resp.Salon.ID, resp.User.SalonID)

	// Duplicate email conflicts.
	_, err = env.auth.Register(RegisterRequest{
		Name: "Outro", Email: "ZE@oficina.com.br", Password: "segredo1", SalonName: "Outra",
	})
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	// Login round trip.
	login, err := env.auth.Login("ze@oficina.com.br", "segredo1")
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)

	_, err = env.auth.Login("ze@oficina.com.br", "errada")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

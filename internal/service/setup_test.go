package service

import (
	"fmt"
	"testing"
	"time"

	"marcenaria-api/internal/model"
	"marcenaria-api/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires every service against one in-memory database.
type testEnv struct {
	db *gorm.DB

	clients      ClientService
	catalog      CatalogService
	appointments AppointmentService
	orders       OrderService
	budgets      BudgetService
	receivables  ReceivableService
	payables     PayableService
	costs        CostService
	materials    MaterialService
	finance      FinanceService
	dashboard    DashboardService
	settings     SettingsService
	auth         AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Salon{}, &model.User{},
		&model.Client{}, &model.Service{}, &model.Appointment{},
		&model.Order{}, &model.OrderItem{},
		&model.Budget{}, &model.BudgetItem{}, &model.BudgetInstallment{},
		&model.Receivable{}, &model.ReceivableInstallment{},
		&model.Payable{}, &model.PayableInstallment{},
		&model.Cost{},
		&model.Material{}, &model.MaterialMovement{}, &model.MaterialSupplierPrice{},
		&model.CashCategory{}, &model.CashTransaction{},
	))

	userRepo := repository.NewUserRepo(db)
	salonRepo := repository.NewSalonRepo(db)
	clientRepo := repository.NewClientRepo(db)
	serviceRepo := repository.NewServiceRepo(db)
	apptRepo := repository.NewAppointmentRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	budgetRepo := repository.NewBudgetRepo(db)
	receivableRepo := repository.NewReceivableRepo(db)
	payableRepo := repository.NewPayableRepo(db)
	costRepo := repository.NewCostRepo(db)
	materialRepo := repository.NewMaterialRepo(db)
	cashRepo := repository.NewCashRepo(db)

	return &testEnv{
		db:           db,
		clients:      NewClientService(clientRepo, orderRepo),
		catalog:      NewCatalogService(serviceRepo),
		appointments: NewAppointmentService(apptRepo, clientRepo, serviceRepo, salonRepo),
		orders:       NewOrderService(orderRepo, clientRepo, receivableRepo, db),
		budgets:      NewBudgetService(budgetRepo, orderRepo, clientRepo, receivableRepo, db),
		receivables:  NewReceivableService(receivableRepo, clientRepo, db),
		payables:     NewPayableService(payableRepo, clientRepo, db),
		costs:        NewCostService(costRepo, clientRepo, db),
		materials:    NewMaterialService(materialRepo, clientRepo, payableRepo, costRepo, db),
		finance:      NewFinanceService(receivableRepo, payableRepo, costRepo, cashRepo, apptRepo),
		dashboard:    NewDashboardService(clientRepo, orderRepo, receivableRepo, payableRepo),
		settings:     NewSettingsService(salonRepo),
		auth:         NewAuthService(userRepo, salonRepo, db),
	}
}

func (e *testEnv) newSalon(t *testing.T) uuid.UUID {
	t.Helper()
	salon := &model.Salon{Name: "Marcenaria Teste"}
	require.NoError(t, e.db.Create(salon).Error)
	return salon.ID
}

func (e *testEnv) newClient(t *testing.T, salonID uuid.UUID, name, phone string, clientType model.ClientType) *model.Client {
	t.Helper()
	client := &model.Client{SalonID: salonID, Name: name, Phone: phone, Type: clientType}
	require.NoError(t, e.db.Create(client).Error)
	return client
}

func (e *testEnv) newMaterial(t *testing.T, salonID uuid.UUID, name string) *model.Material {
	t.Helper()
	material := &model.Material{SalonID: salonID, Name: name, Unit: model.UnitUN, Active: true}
	require.NoError(t, e.db.Create(material).Error)
	return material
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"marcenaria-api/internal/handler"
	"marcenaria-api/internal/middleware"
	"marcenaria-api/internal/model"
	"marcenaria-api/internal/repository"
	"marcenaria-api/internal/service"
	"marcenaria-api/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.Salon{}, &model.User{},
		&model.Client{}, &model.Service{}, &model.Appointment{},
		&model.Order{}, &model.OrderItem{},
		&model.Budget{}, &model.BudgetItem{}, &model.BudgetInstallment{},
		&model.Receivable{}, &model.ReceivableInstallment{},
		&model.Payable{}, &model.PayableInstallment{},
		&model.Cost{},
		&model.Material{}, &model.MaterialMovement{}, &model.MaterialSupplierPrice{},
		&model.CashCategory{}, &model.CashTransaction{},
	)

	// 3. Dependency Injection (Wiring Layers)
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

	authService := service.NewAuthService(userRepo, salonRepo, db)
	clientService := service.NewClientService(clientRepo, orderRepo)
	catalogService := service.NewCatalogService(serviceRepo)
	apptService := service.NewAppointmentService(apptRepo, clientRepo, serviceRepo, salonRepo)
	orderService := service.NewOrderService(orderRepo, clientRepo, receivableRepo, db)
	budgetService := service.NewBudgetService(budgetRepo, orderRepo, clientRepo, receivableRepo, db)
	receivableService := service.NewReceivableService(receivableRepo, clientRepo, db)
	payableService := service.NewPayableService(payableRepo, clientRepo, db)
	costService := service.NewCostService(costRepo, clientRepo, db)
	materialService := service.NewMaterialService(materialRepo, clientRepo, payableRepo, costRepo, db)
	financeService := service.NewFinanceService(receivableRepo, payableRepo, costRepo, cashRepo, apptRepo)
	dashboardService := service.NewDashboardService(clientRepo, orderRepo, receivableRepo, payableRepo)
	settingsService := service.NewSettingsService(salonRepo)

	authHandler := handler.NewAuthHandler(authService)
	clientHandler := handler.NewClientHandler(clientService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	apptHandler := handler.NewAppointmentHandler(apptService)
	orderHandler := handler.NewOrderHandler(orderService)
	budgetHandler := handler.NewBudgetHandler(budgetService)
	receivableHandler := handler.NewReceivableHandler(receivableService)
	payableHandler := handler.NewPayableHandler(payableService)
	costHandler := handler.NewCostHandler(costService)
	materialHandler := handler.NewMaterialHandler(materialService)
	financeHandler := handler.NewFinanceHandler(financeService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	settingsHandler := handler.NewSettingsHandler(settingsService)

	// 4. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Marcenaria API v1.0",
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// 5. Routes
	api := app.Group("/api")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.RequireAuth(), authHandler.Me)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth())

	protected.Get("/dashboard/overview", dashboardHandler.Overview)

	protected.Get("/settings", settingsHandler.Get)
	protected.Patch("/settings", settingsHandler.Patch)

	protected.Post("/clients", clientHandler.Create)
	protected.Get("/clients", clientHandler.List)
	protected.Get("/clients/:id", clientHandler.Get)
	protected.Put("/clients/:id", clientHandler.Update)
	protected.Delete("/clients/:id", clientHandler.Delete)
	protected.Get("/clients/:id/metrics", clientHandler.Metrics)
	protected.Get("/clients/:id/orders", clientHandler.Orders)

	protected.Post("/services", catalogHandler.Create)
	protected.Get("/services", catalogHandler.List)
	protected.Get("/services/:id", catalogHandler.Get)
	protected.Put("/services/:id", catalogHandler.Update)
	protected.Patch("/services/:id/toggle", catalogHandler.Toggle)
	protected.Delete("/services/:id", catalogHandler.Delete)

	protected.Post("/appointments", apptHandler.Create)
	protected.Get("/appointments", apptHandler.List)
	protected.Get("/appointments/:id", apptHandler.Get)
	protected.Patch("/appointments/:id", apptHandler.Patch)
	protected.Delete("/appointments/:id", apptHandler.Delete)

	protected.Post("/orders", orderHandler.Create)
	protected.Get("/orders", orderHandler.List)
	protected.Get("/orders/:id", orderHandler.Get)
	protected.Patch("/orders/:id", orderHandler.Patch)
	protected.Post("/orders/:id/cancel", orderHandler.Cancel)
	protected.Delete("/orders/:id", orderHandler.Delete)

	protected.Post("/budgets", budgetHandler.Create)
	protected.Get("/budgets", budgetHandler.List)
	protected.Get("/budgets/:id", budgetHandler.Get)
	protected.Get("/budgets/:id/full", budgetHandler.GetFull)
	protected.Patch("/budgets/:id", budgetHandler.Patch)
	protected.Patch("/budgets/:id/full", budgetHandler.Patch)
	protected.Post("/budgets/:id/send", budgetHandler.Send)
	protected.Post("/budgets/:id/approve", budgetHandler.Approve)
	protected.Post("/budgets/:id/cancel", budgetHandler.Cancel)
	protected.Delete("/budgets/:id", budgetHandler.Delete)

	protected.Post("/receivables", receivableHandler.Create)
	protected.Get("/receivables", receivableHandler.List)
	protected.Get("/receivables/:id", receivableHandler.Get)
	protected.Patch("/receivables/:id", receivableHandler.Patch)
	protected.Patch("/receivables/:id/installments/:installmentId", receivableHandler.PatchInstallment)
	protected.Delete("/receivables/:id", receivableHandler.Delete)

	protected.Post("/payables", payableHandler.Create)
	protected.Get("/payables", payableHandler.List)
	protected.Get("/payables/:id", payableHandler.Get)
	protected.Patch("/payables/:id", payableHandler.Patch)
	protected.Patch("/payables/:id/installments/:installmentId", payableHandler.PatchInstallment)
	protected.Delete("/payables/:id", payableHandler.Delete)

	protected.Post("/costs", costHandler.Create)
	protected.Get("/costs", costHandler.List)
	protected.Get("/costs/summary", costHandler.Summary)
	protected.Get("/costs/:id", costHandler.Get)
	protected.Patch("/costs/:id", costHandler.Patch)
	protected.Delete("/costs/:id", costHandler.Delete)

	// Fixed material paths go before /:id.
	protected.Post("/materials/movements", materialHandler.CreateMovement)
	protected.Get("/materials/movements", materialHandler.ListMovements)
	protected.Get("/materials/stock", materialHandler.Stock)
	protected.Get("/materials/summary", materialHandler.Summary)
	protected.Post("/materials", materialHandler.Create)
	protected.Get("/materials", materialHandler.List)
	protected.Get("/materials/:id", materialHandler.Get)
	protected.Put("/materials/:id", materialHandler.Update)
	protected.Delete("/materials/:id", materialHandler.Delete)
	protected.Get("/materials/:id/suppliers", materialHandler.SupplierPrices)

	protected.Get("/finance/summary", financeHandler.Summary)
	protected.Get("/finance/flow", financeHandler.Flow)
	protected.Get("/finance/cashflow", financeHandler.Cashflow)
	protected.Get("/finance/receivables/month", financeHandler.ReceivablesMonth)
	protected.Get("/finance/payables/month", financeHandler.PayablesMonth)
	protected.Get("/finance/cost-categories", financeHandler.CostCategories)
	protected.Post("/finance/transactions", financeHandler.CreateTransaction)
	protected.Get("/finance/transactions", financeHandler.ListTransactions)
	protected.Delete("/finance/transactions/:id", financeHandler.DeleteTransaction)
	protected.Post("/finance/categories", financeHandler.CreateCategory)
	protected.Get("/finance/categories", financeHandler.ListCategories)
	protected.Delete("/finance/categories/:id", financeHandler.DeleteCategory)

	// 6. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

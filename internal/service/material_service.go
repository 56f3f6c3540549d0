package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"marcenaria-api/internal/apperr"
	"marcenaria-api/internal/billing"
	"marcenaria-api/internal/model"
	"marcenaria-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// stockCostGroupPrefix tags the expense rows spawned by stock
// purchases so the recurring backfill leaves them alone.
const stockCostGroupPrefix = "ESTOQUE:"

type MaterialSupplierInput struct {
	SupplierID    uuid.UUID `json:"supplierId"`
	UnitCostCents int64     `json:"unitCostCents"`
}

type MaterialRequest struct {
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Category string  `json:"category"`
	MinStock float64 `json:"minStock"`
	Notes    string  `json:"notes"`

	// Optional supplier list; on update a non-nil list fully replaces
	// the stored one.
	Suppliers []MaterialSupplierInput `json:"suppliers"`
}

type MovementRequest struct {
	MaterialID uuid.UUID  `json:"materialId"`
	Type       string     `json:"type"`
	Quantity   float64    `json:"quantity"`
	OccurredAt *time.Time `json:"occurredAt"`
	Notes      string     `json:"notes"`

	// Purchase fields, IN only
	SupplierID        *uuid.UUID `json:"supplierId"`
	UnitCostCents     int64      `json:"unitCostCents"`
	NfNumber          string     `json:"nfNumber"`
	GeneratePayable   bool       `json:"generatePayable"`
	InstallmentsCount int        `json:"installmentsCount"`
	FirstDueDate      *time.Time `json:"firstDueDate"`
	PaidNow           bool       `json:"paidNow"`
}

// StockEntry is one material with its computed balance.
type StockEntry struct {
	Material model.Material `json:"material"`
	Quantity float64        `json:"quantity"`
	BelowMin bool           `json:"belowMin"`
}

// MaterialSummary is the inventory overview for a month.
type MaterialSummary struct {
	Materials      int64 `json:"materials"`
	LowStock       int   `json:"lowStock"`
	PurchasesCents int64 `json:"purchasesCents"`
}

type MaterialService interface {
	Create(salonID uuid.UUID, req MaterialRequest) (*model.Material, error)
	List(salonID uuid.UUID, f repository.MaterialFilter) ([]model.Material, error)
	Get(salonID, id uuid.UUID) (*model.Material, error)
	Update(salonID, id uuid.UUID, req MaterialRequest) (*model.Material, error)
	Delete(salonID, id uuid.UUID) error

	RecordMovement(salonID uuid.UUID, req MovementRequest) (*model.MaterialMovement, error)
	ListMovements(salonID uuid.UUID, f repository.MovementFilter) ([]model.MaterialMovement, error)
	Stock(salonID uuid.UUID) ([]StockEntry, error)
	SupplierPrices(salonID, materialID uuid.UUID) ([]model.MaterialSupplierPrice, error)
	Summary(salonID uuid.UUID, yearMonth string) (*MaterialSummary, error)
}

type materialService struct {
	materialRepo repository.MaterialRepository
	clientRepo   repository.ClientRepository
	payableRepo  repository.PayableRepository
	costRepo     repository.CostRepository
	db           *gorm.DB
}

func NewMaterialService(
	materialRepo repository.MaterialRepository,
	clientRepo repository.ClientRepository,
	payableRepo repository.PayableRepository,
	costRepo repository.CostRepository,
	db *gorm.DB,
) MaterialService {
	return &materialService{
		materialRepo: materialRepo,
		clientRepo:   clientRepo,
		payableRepo:  payableRepo,
		costRepo:     costRepo,
		db:           db,
	}
}

func validateMaterialRequest(req *MaterialRequest) (model.MaterialUnit, error) {
	req.Name = strings.TrimSpace(req.Name)
	if len(req.Name) < 2 {
		return "", apperr.Invalid("name must have at least 2 characters")
	}
	unit := model.MaterialUnit(strings.ToUpper(strings.TrimSpace(req.Unit)))
	if unit == "" {
		unit = model.UnitUN
	}
	if !model.ValidMaterialUnit(unit) {
		return "", apperr.Invalid("invalid unit")
	}
	if req.MinStock < 0 {
		return "", apperr.Invalid("minStock must be >= 0")
	}
	return unit, nil
}

// resolveSupplierPrices validates and dedups the submitted supplier
// list; the last entry wins for a repeated supplier.
func (s *materialService) resolveSupplierPrices(salonID, materialID uuid.UUID, inputs []MaterialSupplierInput, now time.Time) ([]model.MaterialSupplierPrice, error) {
	byID := make(map[uuid.UUID]model.MaterialSupplierPrice)
	order := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		if in.UnitCostCents < 0 {
			return nil, apperr.Invalid("unitCostCents must be >= 0")
		}
		supplier, err := s.clientRepo.FindByID(salonID, in.SupplierID)
		if err != nil {
			return nil, apperr.NotFound("supplier not found")
		}
		if !supplier.Type.IsSupplier() {
			return nil, apperr.Invalid("contact is not registered as a supplier")
		}
		if _, seen := byID[in.SupplierID]; !seen {
			order = append(order, in.SupplierID)
		}
		byID[in.SupplierID] = model.MaterialSupplierPrice{
			SalonID:        salonID,
			MaterialID:     materialID,
			SupplierID:     in.SupplierID,
			UnitCostCents:  in.UnitCostCents,
			LastPurchaseAt: now,
		}
	}

	prices := make([]model.MaterialSupplierPrice, 0, len(order))
	for _, id := range order {
		prices = append(prices, byID[id])
	}
	return prices, nil
}

func (s *materialService) Create(salonID uuid.UUID, req MaterialRequest) (*model.Material, error) {
	unit, err := validateMaterialRequest(&req)
	if err != nil {
		return nil, err
	}
	count, err := s.materialRepo.CountByName(salonID, req.Name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Conflict("a material with this name already exists")
	}

	material := &model.Material{
		SalonID:  salonID,
		Name:     req.Name,
		Unit:     unit,
		Category: strings.TrimSpace(req.Category),
		MinStock: req.MinStock,
		Active:   true,
		Notes:    req.Notes,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.materialRepo.Create(tx, material); err != nil {
			return err
		}
		if len(req.Suppliers) == 0 {
			return nil
		}
		prices, err := s.resolveSupplierPrices(salonID, material.ID, req.Suppliers, time.Now().UTC())
		if err != nil {
			return err
		}
		return s.materialRepo.ReplaceSupplierPrices(tx, salonID, material.ID, prices)
	})
	if err != nil {
		return nil, err
	}
	return material, nil
}

func (s *materialService) List(salonID uuid.UUID, f repository.MaterialFilter) ([]model.Material, error) {
	return s.materialRepo.FindAll(salonID, f)
}

func (s *materialService) Get(salonID, id uuid.UUID) (*model.Material, error) {
	material, err := s.materialRepo.FindByID(salonID, id)
	if err == gorm.ErrRecordNotFound {
		return nil, apperr.NotFound("material not found")
	}
	return material, err
}

func (s *materialService) Update(salonID, id uuid.UUID, req MaterialRequest) (*model.Material, error) {
	material, err := s.Get(salonID, id)
	if err != nil {
		return nil, err
	}
	unit, err := validateMaterialRequest(&req)
	if err != nil {
		return nil, err
	}
	count, err := s.materialRepo.CountByName(salonID, req.Name, id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Conflict("a material with this name already exists")
	}

	material.Name = req.Name
	material.Unit = unit
	material.Category = strings.TrimSpace(req.Category)
	material.MinStock = req.MinStock
	material.Notes = req.Notes

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(material).Error; err != nil {
			return err
		}
		if req.Suppliers == nil {
			return nil
		}
		prices, err := s.resolveSupplierPrices(salonID, material.ID, req.Suppliers, time.Now().UTC())
		if err != nil {
			return err
		}
		return s.materialRepo.ReplaceSupplierPrices(tx, salonID, material.ID, prices)
	})
	if err != nil {
		return nil, err
	}
	return material, nil
}

// Delete deactivates the material. The movement ledger stays intact, so
// the row is never physically removed.
func (s *materialService) Delete(salonID, id uuid.UUID) error {
	material, err := s.Get(salonID, id)
	if err != nil {
		return err
	}
	material.Active = false
	return s.materialRepo.Update(material)
}

// RecordMovement writes one ledger entry. A purchase (IN) also
// refreshes the supplier price, books a VARIAVEL stock cost and, when
// asked, spawns the payable, all inside one transaction.
func (s *materialService) RecordMovement(salonID uuid.UUID, req MovementRequest) (*model.MaterialMovement, error) {
	material, err := s.Get(salonID, req.MaterialID)
	if err != nil {
		return nil, err
	}

	movType := model.MovementType(strings.ToUpper(strings.TrimSpace(req.Type)))
	switch movType {
	case model.MovementIn, model.MovementOut:
		if req.Quantity <= 0 {
			return nil, apperr.Invalid("quantity must be > 0")
		}
	case model.MovementAdjust:
		if req.Quantity == 0 {
			return nil, apperr.Invalid("quantity must not be 0")
		}
	default:
		return nil, apperr.Invalid("type must be IN, OUT or ADJUST")
	}

	occurredAt := time.Now().UTC()
	if req.OccurredAt != nil && !req.OccurredAt.IsZero() {
		occurredAt = req.OccurredAt.UTC()
	}

	movement := &model.MaterialMovement{
		SalonID:    salonID,
		MaterialID: material.ID,
		Type:       movType,
		Source:     model.SourceManual,
		Quantity:   req.Quantity,
		OccurredAt: occurredAt,
		Notes:      req.Notes,
	}

	var supplier *model.Client
	switch movType {
	case model.MovementIn:
		if req.SupplierID == nil {
			return nil, apperr.Invalid("supplierId is required for IN movements")
		}
		if req.UnitCostCents <= 0 {
			return nil, apperr.Invalid("unitCostCents must be > 0 for IN movements")
		}
		supplier, err = s.clientRepo.FindByID(salonID, *req.SupplierID)
		if err != nil {
			return nil, apperr.NotFound("supplier not found")
		}
		if !supplier.Type.IsSupplier() {
			return nil, apperr.Invalid("contact is not registered as a supplier")
		}
		movement.Source = model.SourcePurchase
		movement.SupplierID = req.SupplierID
		movement.UnitCostCents = req.UnitCostCents
		movement.TotalCostCents = int64(math.Round(req.Quantity * float64(req.UnitCostCents)))
		movement.NfNumber = strings.TrimSpace(req.NfNumber)

	case model.MovementOut:
		balance, err := s.materialRepo.Balance(salonID, material.ID)
		if err != nil {
			return nil, err
		}
		if balance < req.Quantity {
			return nil, apperr.Conflict("insufficient stock")
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if movType == model.MovementIn {
			if err := s.recordPurchase(tx, salonID, material, supplier, movement, req, occurredAt); err != nil {
				return err
			}
		}
		return s.materialRepo.CreateMovement(tx, movement)
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

func (s *materialService) recordPurchase(tx *gorm.DB, salonID uuid.UUID, material *model.Material, supplier *model.Client, movement *model.MaterialMovement, req MovementRequest, occurredAt time.Time) error {
	if err := s.materialRepo.UpsertSupplierPrice(tx, &model.MaterialSupplierPrice{
		SalonID:        salonID,
		MaterialID:     material.ID,
		SupplierID:     supplier.ID,
		UnitCostCents:  movement.UnitCostCents,
		LastPurchaseAt: occurredAt,
	}); err != nil {
		return err
	}

	if req.GeneratePayable {
		payable, err := s.buildPurchasePayable(salonID, material, supplier, movement, req, occurredAt)
		if err != nil {
			return err
		}
		if err := s.payableRepo.Create(tx, payable); err != nil {
			return err
		}
		movement.PayableID = &payable.ID
	}

	cost := &model.Cost{
		SalonID:     salonID,
		Name:        "Compra de material - " + material.Name,
		Type:        model.CostVariavel,
		Category:    "Estoque",
		AmountCents: movement.TotalCostCents,
		YearMonth:   billing.MonthKey(occurredAt),
		OccurredAt:  occurredAt,
		SupplierID:  &supplier.ID,
		RecurringGroupID: fmt.Sprintf("%s%s:%s:%s",
			stockCostGroupPrefix, supplier.ID, movement.NfNumber, material.Name),
		Active: true,
		Notes:  movement.Notes,
	}
	return s.costRepo.Create(tx, cost)
}

func (s *materialService) buildPurchasePayable(salonID uuid.UUID, material *model.Material, supplier *model.Client, movement *model.MaterialMovement, req MovementRequest, occurredAt time.Time) (*model.Payable, error) {
	count := req.InstallmentsCount
	if count < 1 {
		count = 1
	}
	if count > billing.MaxPayableInstallments {
		return nil, apperr.Invalid(fmt.Sprintf("installmentsCount must be at most %d", billing.MaxPayableInstallments))
	}

	firstDue := occurredAt
	if req.FirstDueDate != nil && !req.FirstDueDate.IsZero() {
		firstDue = *req.FirstDueDate
	}

	paidNow := req.PaidNow && count == 1
	schedule := billing.BuildSchedule(movement.TotalCostCents, count, firstDue, "", paidNow, time.Now().UTC())

	payable := &model.Payable{
		SalonID:     salonID,
		SupplierID:  &supplier.ID,
		Description: "Compra de material - " + material.Name,
		Category:    "Estoque",
		TotalCents:  movement.TotalCostCents,
		Notes:       strings.TrimSpace("NF " + movement.NfNumber),
	}
	for _, e := range schedule {
		payable.Installments = append(payable.Installments, model.PayableInstallment{
			Number:      e.Number,
			DueDate:     e.DueDate,
			AmountCents: e.AmountCents,
			Status:      e.Status,
			PaidAt:      e.PaidAt,
		})
	}
	return payable, nil
}

func (s *materialService) ListMovements(salonID uuid.UUID, f repository.MovementFilter) ([]model.MaterialMovement, error) {
	return s.materialRepo.FindMovements(salonID, f)
}

// Stock joins the catalog with the computed balances.
func (s *materialService) Stock(salonID uuid.UUID) ([]StockEntry, error) {
	materials, err := s.materialRepo.FindAll(salonID, repository.MaterialFilter{})
	if err != nil {
		return nil, err
	}
	balances, err := s.materialRepo.Balances(salonID)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]float64, len(balances))
	for _, b := range balances {
		byID[b.MaterialID] = b.Quantity
	}

	entries := make([]StockEntry, 0, len(materials))
	for _, m := range materials {
		qty := byID[m.ID]
		entries = append(entries, StockEntry{
			Material: m,
			Quantity: qty,
			BelowMin: m.MinStock > 0 && qty < m.MinStock,
		})
	}
	return entries, nil
}

func (s *materialService) SupplierPrices(salonID, materialID uuid.UUID) ([]model.MaterialSupplierPrice, error) {
	if _, err := s.Get(salonID, materialID); err != nil {
		return nil, err
	}
	return s.materialRepo.FindSupplierPrices(salonID, materialID)
}

func (s *materialService) Summary(salonID uuid.UUID, yearMonth string) (*MaterialSummary, error) {
	from, to, err := billing.MonthRange(yearMonth)
	if err != nil {
		return nil, apperr.Invalid(err.Error())
	}

	stock, err := s.Stock(salonID)
	if err != nil {
		return nil, err
	}
	purchases, err := s.materialRepo.SumPurchasesBetween(salonID, from, to)
	if err != nil {
		return nil, err
	}

	summary := &MaterialSummary{
		Materials:      int64(len(stock)),
		PurchasesCents: purchases,
	}
	for _, e := range stock {
		if e.BelowMin {
			summary.LowStock++
		}
	}
	return summary, nil
}

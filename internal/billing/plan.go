package billing

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Payment modes, methods and installment statuses as stored and served.
// The values are the business vocabulary and are not translated.
type PaymentMode string

const (
	ModeAvista    PaymentMode = "AVISTA"
	ModeParcelado PaymentMode = "PARCELADO"
)

type PaymentMethod string

const (
	MethodPix          PaymentMethod = "PIX"
	MethodCartao       PaymentMethod = "CARTAO"
	MethodDinheiro     PaymentMethod = "DINHEIRO"
	MethodBoleto       PaymentMethod = "BOLETO"
	MethodTransferencia PaymentMethod = "TRANSFERENCIA"
	MethodOutro        PaymentMethod = "OUTRO"
)

type InstallmentStatus string

const (
	InstallmentPendente  InstallmentStatus = "PENDENTE"
	InstallmentPago      InstallmentStatus = "PAGO"
	InstallmentAtrasado  InstallmentStatus = "ATRASADO"
	InstallmentCancelado InstallmentStatus = "CANCELADO"
)

const (
	// Installment count bounds for PARCELADO orders and budgets.
	MinInstallments = 2
	MaxInstallments = 24

	// Payables spawned from stock purchases accept a wider range.
	MaxPayableInstallments = 48
)

// NormalizeMode uppercases and checks a payment mode. Empty input yields
// the empty mode with ok=true so callers can apply their own default.
func NormalizeMode(v string) (PaymentMode, bool) {
	s := strings.ToUpper(strings.TrimSpace(v))
	if s == "" {
		return "", true
	}
	m := PaymentMode(s)
	return m, m == ModeAvista || m == ModeParcelado
}

// NormalizeMethod uppercases and checks a payment method; empty is allowed.
func NormalizeMethod(v string) (PaymentMethod, bool) {
	s := strings.ToUpper(strings.TrimSpace(v))
	if s == "" {
		return "", true
	}
	m := PaymentMethod(s)
	switch m {
	case MethodPix, MethodCartao, MethodDinheiro, MethodBoleto, MethodTransferencia, MethodOutro:
		return m, true
	}
	return "", false
}

// NormalizeInstallmentStatus uppercases and checks a settlement status.
func NormalizeInstallmentStatus(v string) (InstallmentStatus, bool) {
	s := InstallmentStatus(strings.ToUpper(strings.TrimSpace(v)))
	switch s {
	case InstallmentPendente, InstallmentPago, InstallmentAtrasado, InstallmentCancelado:
		return s, true
	}
	return "", false
}

// ScheduleEntry is one generated installment, ready to persist.
type ScheduleEntry struct {
	Number      int
	DueDate     time.Time
	AmountCents int64
	Status      InstallmentStatus
	PaidAt      *time.Time
	Method      PaymentMethod
}

// BuildSchedule generates the monthly installment plan for a total:
// count parts via SplitInstallments, due dates advancing one calendar
// month per installment from firstDue. When paidNow is set the first
// (and only meaningful for AVISTA, where count is 1) installment is
// created already settled at now.
func BuildSchedule(totalCents int64, count int, firstDue time.Time, method PaymentMethod, paidNow bool, now time.Time) []ScheduleEntry {
	amounts := SplitInstallments(totalCents, count)
	entries := make([]ScheduleEntry, 0, len(amounts))
	for i, amt := range amounts {
		e := ScheduleEntry{
			Number:      i + 1,
			DueDate:     AddMonths(firstDue, i),
			AmountCents: amt,
			Status:      InstallmentPendente,
			Method:      method,
		}
		if paidNow && i == 0 {
			e.Status = InstallmentPago
			paid := now
			e.PaidAt = &paid
		}
		entries = append(entries, e)
	}
	return entries
}

// CustomInstallment is a caller-supplied due date and amount.
type CustomInstallment struct {
	DueDate     time.Time
	AmountCents int64
}

// ValidateCustomInstallments checks an explicit installment list against the
// expected total: at least MinInstallments entries, every amount a positive
// integer, and the sum equal to totalCents exactly. The accepted list is
// sorted by due date and renumbered 1..N.
func ValidateCustomInstallments(installments []CustomInstallment, totalCents int64) ([]ScheduleEntry, error) {
	if len(installments) < MinInstallments {
		return nil, fmt.Errorf("installments must have at least %d entries", MinInstallments)
	}

	list := make([]CustomInstallment, len(installments))
	copy(list, installments)
	for i, p := range list {
		if p.DueDate.IsZero() {
			return nil, fmt.Errorf("installment %d: invalid dueDate", i+1)
		}
		if p.AmountCents <= 0 {
			return nil, fmt.Errorf("installment %d: invalid amountCents", i+1)
		}
	}

	sort.SliceStable(list, func(i, j int) bool { return list[i].DueDate.Before(list[j].DueDate) })

	var sum int64
	for _, p := range list {
		sum += p.AmountCents
	}
	if sum != totalCents {
		return nil, fmt.Errorf("installments sum (%d) differs from total (%d) by %d", sum, totalCents, sum-totalCents)
	}

	entries := make([]ScheduleEntry, len(list))
	for i, p := range list {
		entries[i] = ScheduleEntry{
			Number:      i + 1,
			DueDate:     p.DueDate,
			AmountCents: p.AmountCents,
			Status:      InstallmentPendente,
		}
	}
	return entries, nil
}

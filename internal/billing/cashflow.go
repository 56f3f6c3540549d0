package billing

// Flow is an income/expense pairing over some window.
type Flow struct {
	InCents      int64 `json:"inCents"`
	OutCents     int64 `json:"outCents"`
	BalanceCents int64 `json:"balanceCents"`
}

// NewFlow derives the balance from the two legs.
func NewFlow(in, out int64) Flow {
	return Flow{InCents: in, OutCents: out, BalanceCents: in - out}
}

// Add merges another flow into f.
func (f Flow) Add(other Flow) Flow {
	return NewFlow(f.InCents+other.InCents, f.OutCents+other.OutCents)
}

// OpenCents is the unsettled part of an expected total, never negative.
// Settled amounts can exceed expectations when installments are edited
// after payment.
func OpenCents(expectedCents, settledCents int64) int64 {
	if open := expectedCents - settledCents; open > 0 {
		return open
	}
	return 0
}

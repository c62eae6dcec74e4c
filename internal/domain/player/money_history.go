package player

import (
	"github.com/andrescamacho/factorysim-go/internal/domain/shared"
)

// MoneyPoint is one (day, balance) snapshot
type MoneyPoint struct {
	Day     int
	Balance int
}

// MoneyHistory is the capped, ordered series of end-of-day balance snapshots.
// Observational only: nothing in the simulation reads it back.
type MoneyHistory struct {
	cap    int
	points []MoneyPoint
}

// NewMoneyHistory creates an empty history retaining at most cap points
func NewMoneyHistory(cap int) (*MoneyHistory, error) {
	if cap <= 0 {
		return nil, shared.NewValidationError("cap", "money history retention must be positive")
	}
	return &MoneyHistory{cap: cap}, nil
}

// ReconstructMoneyHistory restores a history from persisted points, trimming
// to the retention cap
func ReconstructMoneyHistory(cap int, points []MoneyPoint) (*MoneyHistory, error) {
	h, err := NewMoneyHistory(cap)
	if err != nil {
		return nil, err
	}
	if len(points) > cap {
		points = points[len(points)-cap:]
	}
	h.points = make([]MoneyPoint, len(points))
	copy(h.points, points)
	return h, nil
}

// Append records a snapshot, evicting the oldest point beyond the cap
func (h *MoneyHistory) Append(day, balance int) {
	h.points = append(h.points, MoneyPoint{Day: day, Balance: balance})
	if len(h.points) > h.cap {
		h.points = h.points[len(h.points)-h.cap:]
	}
}

// Points returns the series, oldest first
func (h *MoneyHistory) Points() []MoneyPoint {
	points := make([]MoneyPoint, len(h.points))
	copy(points, h.points)
	return points
}

// Len returns the number of retained points
func (h *MoneyHistory) Len() int {
	return len(h.points)
}

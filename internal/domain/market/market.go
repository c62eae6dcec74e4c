package market

import (
	"math"
	"math/rand"

	"github.com/andrescamacho/factorysim-go/internal/domain/shared"
)

// Listing describes one tracked item when building a market
type Listing struct {
	Key         shared.ItemKey
	DisplayName string
	Side        shared.Side
	BasePrice   int
}

// Quote is a read-only snapshot of one tracked item's pricing
type Quote struct {
	Key         shared.ItemKey
	DisplayName string
	Side        shared.Side
	Price       int
	BasePrice   int
	History     []int
}

type entry struct {
	key         shared.ItemKey
	displayName string
	side        shared.Side
	basePrice   int
	price       int
	history     []int
}

// Market maintains the current buy/sell price per tracked item and applies a
// bounded random walk on a fixed tick interval. Each item's walk is
// independent; prices never drop below 1. Transactions against the warehouse
// and purse are coordinated by the simulation layer, which reads prices from
// here.
type Market struct {
	entries      []*entry
	byKey        map[shared.ItemKey]*entry
	volatility   float64
	historyCap   int
	rng          *rand.Rand
	repriceCount int
}

// NewMarket creates a market with validation. The rng drives repricing and is
// injected so tests and replays stay deterministic.
func NewMarket(listings []Listing, volatility float64, historyCap int, rng *rand.Rand) (*Market, error) {
	if volatility < 0 || volatility >= 1 {
		return nil, shared.NewValidationError("volatility", "volatility must be in [0, 1)")
	}
	if historyCap <= 0 {
		return nil, shared.NewValidationError("history_cap", "price history cap must be positive")
	}
	if rng == nil {
		return nil, shared.NewValidationError("rng", "random source cannot be nil")
	}

	m := &Market{
		volatility: volatility,
		historyCap: historyCap,
		rng:        rng,
		byKey:      make(map[shared.ItemKey]*entry, len(listings)),
	}
	for _, listing := range listings {
		if listing.Key.IsZero() {
			return nil, shared.NewValidationError("listings", "listing key cannot be empty")
		}
		if listing.BasePrice < 1 {
			return nil, shared.NewValidationError("listings", "base price must be at least 1")
		}
		if !listing.Side.IsValid() {
			return nil, shared.NewValidationError("listings", "listing side is invalid")
		}
		if _, exists := m.byKey[listing.Key]; exists {
			return nil, shared.NewValidationError("listings", "duplicate listing "+listing.Key.String())
		}
		e := &entry{
			key:         listing.Key,
			displayName: listing.DisplayName,
			side:        listing.Side,
			basePrice:   listing.BasePrice,
			price:       listing.BasePrice,
			history:     []int{listing.BasePrice},
		}
		m.entries = append(m.entries, e)
		m.byKey[listing.Key] = e
	}
	return m, nil
}

// Has checks if the market tracks the given item
func (m *Market) Has(key shared.ItemKey) bool {
	_, ok := m.byKey[key]
	return ok
}

// Price returns the current price of a tracked item
func (m *Market) Price(key shared.ItemKey) (int, error) {
	e, ok := m.byKey[key]
	if !ok {
		return 0, shared.NewNotFoundError("market item", key.String())
	}
	return e.price, nil
}

// SideOf returns which warehouse side a tracked item trades on
func (m *Market) SideOf(key shared.ItemKey) (shared.Side, error) {
	e, ok := m.byKey[key]
	if !ok {
		return "", shared.NewNotFoundError("market item", key.String())
	}
	return e.side, nil
}

// History returns the bounded price history of an item, most-recent-last
func (m *Market) History(key shared.ItemKey) ([]int, error) {
	e, ok := m.byKey[key]
	if !ok {
		return nil, shared.NewNotFoundError("market item", key.String())
	}
	history := make([]int, len(e.history))
	copy(history, e.history)
	return history, nil
}

// Reprice applies one independent bounded random walk step to every tracked
// item: a uniform factor in [-volatility, +volatility] relative to the
// current price, rounded to the nearest integer and floored at 1. The new
// price is appended to the item's history, evicting the oldest point beyond
// the cap.
func (m *Market) Reprice() {
	for _, e := range m.entries {
		variation := (m.rng.Float64() - 0.5) * 2 * m.volatility
		newPrice := int(math.Round(float64(e.price) * (1 + variation)))
		if newPrice < 1 {
			newPrice = 1
		}
		e.price = newPrice
		e.history = append(e.history, newPrice)
		if len(e.history) > m.historyCap {
			e.history = e.history[len(e.history)-m.historyCap:]
		}
	}
	m.repriceCount++
}

// RepriceCount returns how many repricing rounds have run
func (m *Market) RepriceCount() int {
	return m.repriceCount
}

// Quotes returns a snapshot of every tracked item in listing order
func (m *Market) Quotes() []Quote {
	quotes := make([]Quote, 0, len(m.entries))
	for _, e := range m.entries {
		history := make([]int, len(e.history))
		copy(history, e.history)
		quotes = append(quotes, Quote{
			Key:         e.key,
			DisplayName: e.displayName,
			Side:        e.side,
			Price:       e.price,
			BasePrice:   e.basePrice,
			History:     history,
		})
	}
	return quotes
}

// QuotesFor returns the snapshot filtered to one side, in listing order
func (m *Market) QuotesFor(side shared.Side) []Quote {
	quotes := make([]Quote, 0, len(m.entries))
	for _, q := range m.Quotes() {
		if q.Side == side {
			quotes = append(quotes, q)
		}
	}
	return quotes
}

// LoadPrice overwrites an item's current price and history from a saved game.
// Unknown keys are reported so the caller can drop stale records; saved
// prices below 1 are clamped to keep the price invariant.
func (m *Market) LoadPrice(key shared.ItemKey, price int, history []int) bool {
	e, ok := m.byKey[key]
	if !ok {
		return false
	}
	if price < 1 {
		price = 1
	}
	e.price = price
	if len(history) > 0 {
		if len(history) > m.historyCap {
			history = history[len(history)-m.historyCap:]
		}
		e.history = make([]int, len(history))
		copy(e.history, history)
	}
	return true
}

// SetRepriceCount restores the repricing counter from a saved game
func (m *Market) SetRepriceCount(count int) {
	if count < 0 {
		count = 0
	}
	m.repriceCount = count
}

package production

import (
	"fmt"
	"strconv"

	"github.com/andrescamacho/factorysim-go/internal/domain/catalog"
	"github.com/andrescamacho/factorysim-go/internal/domain/shared"
)

// CompletionEvent records one machine finishing its recipe during an update
type CompletionEvent struct {
	MachineID int
	Recipe    catalog.Recipe
}

// StartEvent records one machine auto-starting its default recipe
type StartEvent struct {
	MachineID int
	Recipe    catalog.Recipe
}

// UpdateReport summarizes what one scheduler pass did
type UpdateReport struct {
	Completed   []CompletionEvent
	AutoStarted []StartEvent
	Stalled     []int // machine IDs past duration that could not deposit output
}

// Hall owns the bounded collection of machine instances and advances them
// each tick. Machines are always visited in creation order, so stalled
// completions and auto-starts competing for scarce space or materials resolve
// deterministically in favor of earlier machines.
type Hall struct {
	capacity int
	machines []*Machine
	nextID   int
	catalog  *catalog.Catalog
}

// NewHall creates an empty hall with the given slot capacity
func NewHall(capacity int, cat *catalog.Catalog) (*Hall, error) {
	if capacity < 0 {
		return nil, shared.NewValidationError("capacity", "hall capacity cannot be negative")
	}
	if cat == nil {
		return nil, shared.NewValidationError("catalog", "catalog cannot be nil")
	}
	return &Hall{capacity: capacity, nextID: 1, catalog: cat}, nil
}

// ReconstructHall restores a hall from persisted machines. nextID must be
// beyond every restored ID so IDs are never reused.
func ReconstructHall(capacity int, cat *catalog.Catalog, machines []*Machine, nextID int) (*Hall, error) {
	hall, err := NewHall(capacity, cat)
	if err != nil {
		return nil, err
	}
	if len(machines) > capacity {
		return nil, shared.NewValidationError("machines", "machine count exceeds hall capacity")
	}
	if nextID < 1 {
		nextID = 1
	}
	seen := make(map[int]bool, len(machines))
	for _, m := range machines {
		if seen[m.ID()] {
			return nil, shared.NewValidationError("machines", fmt.Sprintf("duplicate machine id %d", m.ID()))
		}
		seen[m.ID()] = true
		if m.ID() >= nextID {
			nextID = m.ID() + 1
		}
	}
	hall.machines = make([]*Machine, len(machines))
	copy(hall.machines, machines)
	hall.nextID = nextID
	return hall, nil
}

// Capacity returns the current slot limit
func (h *Hall) Capacity() int {
	return h.capacity
}

// Count returns the number of installed machines
func (h *Hall) Count() int {
	return len(h.machines)
}

// AvailableSlots returns how many machines can still be installed
func (h *Hall) AvailableSlots() int {
	return h.capacity - len(h.machines)
}

// NextID returns the next machine ID to be assigned
func (h *Hall) NextID() int {
	return h.nextID
}

// Machines returns the machines in creation order
func (h *Hall) Machines() []*Machine {
	machines := make([]*Machine, len(h.machines))
	copy(machines, h.machines)
	return machines
}

// Machine returns the machine with the given id
func (h *Hall) Machine(id int) (*Machine, error) {
	for _, m := range h.machines {
		if m.ID() == id {
			return m, nil
		}
	}
	return nil, shared.NewNotFoundError("machine", strconv.Itoa(id))
}

// AddMachine installs a new Idle machine of the given type. The purchase
// debit happens in the simulation layer before this is called.
func (h *Hall) AddMachine(typeKey shared.MachineTypeKey) (*Machine, error) {
	if len(h.machines) >= h.capacity {
		return nil, NewHallFullError(h.capacity)
	}
	if _, err := h.catalog.MachineType(typeKey); err != nil {
		return nil, err
	}
	m := newMachine(h.nextID, typeKey)
	h.nextID++
	h.machines = append(h.machines, m)
	return m, nil
}

// RemoveMachine uninstalls a machine for sale. Working machines cannot be
// sold; the only way to free one is letting its job finish.
func (h *Hall) RemoveMachine(id int) (*Machine, error) {
	for i, m := range h.machines {
		if m.ID() != id {
			continue
		}
		if m.IsWorking() {
			return nil, NewMachineBusyError(id)
		}
		h.machines = append(h.machines[:i], h.machines[i+1:]...)
		return m, nil
	}
	return nil, shared.NewNotFoundError("machine", strconv.Itoa(id))
}

// ExpandCapacity grows the slot limit. The limit never decreases.
func (h *Hall) ExpandCapacity(slots int) error {
	if slots <= 0 {
		return shared.NewValidationError("slots", "expansion slots must be positive")
	}
	h.capacity += slots
	return nil
}

// SetDefaultRecipe configures the auto-start recipe of a machine. An empty
// key clears it. Pure configuration: no resource check happens here.
func (h *Hall) SetDefaultRecipe(id int, recipeKey shared.RecipeKey) error {
	m, err := h.Machine(id)
	if err != nil {
		return err
	}
	if recipeKey.IsZero() {
		m.setDefaultRecipe("")
		return nil
	}
	if _, err := h.catalog.Recipe(m.TypeKey(), recipeKey); err != nil {
		return err
	}
	m.setDefaultRecipe(recipeKey)
	return nil
}

// ToggleAutoStart flips a machine's auto-start flag and returns the new value
func (h *Hall) ToggleAutoStart(id int) (bool, error) {
	m, err := h.Machine(id)
	if err != nil {
		return false, err
	}
	return m.toggleAutoStart(), nil
}

// StartProduction starts a recipe on an Idle machine. Type match, combined
// input availability and output space are all checked before anything is
// consumed, so a failed start has no side effects.
func (h *Hall) StartProduction(id int, recipeKey shared.RecipeKey, inv Inventory, tick int) (catalog.Recipe, error) {
	m, err := h.Machine(id)
	if err != nil {
		return catalog.Recipe{}, err
	}
	if !m.IsIdle() {
		return catalog.Recipe{}, NewMachineBusyError(id)
	}
	recipe, err := h.catalog.Recipe(m.TypeKey(), recipeKey)
	if err != nil {
		return catalog.Recipe{}, err
	}
	if err := h.startOn(m, recipe, inv, tick); err != nil {
		return catalog.Recipe{}, err
	}
	return recipe, nil
}

func (h *Hall) startOn(m *Machine, recipe catalog.Recipe, inv Inventory, tick int) error {
	if !inv.HasEnough(recipe.Inputs()) {
		// Consume fails without side effects and carries the shortfall detail
		return inv.Consume(recipe.Inputs())
	}
	if space := inv.AvailableSpace(shared.SideProduct); space < recipe.OutputQuantity() {
		return NewNoOutputSpaceError(recipe.OutputQuantity(), space)
	}
	if err := inv.Consume(recipe.Inputs()); err != nil {
		return err
	}
	return m.start(recipe, tick)
}

// Update advances every machine for the given tick, in creation order.
// Working machines recompute progress from tick minus start tick and attempt
// completion once the duration has elapsed; a machine whose full output batch
// does not fit stays Working and retries every tick. Idle machines with
// auto-start and a default recipe silently start when inputs and output
// space allow it.
func (h *Hall) Update(tick int, inv Inventory) UpdateReport {
	var report UpdateReport
	for _, m := range h.machines {
		switch {
		case m.IsWorking():
			m.advance(tick)
			if !m.done() {
				continue
			}
			recipe := m.recipe
			if inv.AvailableSpace(shared.SideProduct) < recipe.OutputQuantity() {
				report.Stalled = append(report.Stalled, m.ID())
				continue
			}
			inv.AddProduct(recipe.Output(), recipe.OutputQuantity())
			m.finish()
			report.Completed = append(report.Completed, CompletionEvent{MachineID: m.ID(), Recipe: recipe})

		case m.IsIdle():
			if recipe, ok := h.tryAutoStart(m, inv, tick); ok {
				report.AutoStarted = append(report.AutoStarted, StartEvent{MachineID: m.ID(), Recipe: recipe})
			}
		}
	}
	return report
}

// tryAutoStart silently starts the default recipe when eligible. Failures
// are normal (missing materials, full output) and never surface to the user.
func (h *Hall) tryAutoStart(m *Machine, inv Inventory, tick int) (catalog.Recipe, bool) {
	if !m.AutoStart() || m.DefaultRecipe().IsZero() {
		return catalog.Recipe{}, false
	}
	recipe, err := h.catalog.Recipe(m.TypeKey(), m.DefaultRecipe())
	if err != nil {
		return catalog.Recipe{}, false
	}
	if !inv.HasEnough(recipe.Inputs()) {
		return catalog.Recipe{}, false
	}
	if err := h.startOn(m, recipe, inv, tick); err != nil {
		return catalog.Recipe{}, false
	}
	return recipe, true
}

// StatusCounts tallies machines per status
type StatusCounts struct {
	Idle    int
	Working int
}

// Counts returns the machine tally per status
func (h *Hall) Counts() StatusCounts {
	var counts StatusCounts
	for _, m := range h.machines {
		if m.IsWorking() {
			counts.Working++
		} else {
			counts.Idle++
		}
	}
	return counts
}

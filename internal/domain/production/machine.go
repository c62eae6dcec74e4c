package production

import (
	"fmt"

	"github.com/andrescamacho/factorysim-go/internal/domain/catalog"
	"github.com/andrescamacho/factorysim-go/internal/domain/shared"
)

// Status is the machine state. There are exactly two states: a machine is
// either waiting for work or running one recipe. Completion folds straight
// back to Idle within the update pass that deposits the output.
type Status string

const (
	// StatusIdle means no active recipe and zero progress
	StatusIdle Status = "IDLE"

	// StatusWorking means exactly one active recipe with progress in
	// [0, recipe duration], or beyond it while stalled on output space
	StatusWorking Status = "WORKING"
)

// IsValid checks if the status is one of the two known states
func (s Status) IsValid() bool {
	return s == StatusIdle || s == StatusWorking
}

// Machine is one purchased machine instance. IDs are assigned monotonically
// by the hall and never reused.
type Machine struct {
	id            int
	typeKey       shared.MachineTypeKey
	status        Status
	recipe        catalog.Recipe // zero value when idle
	startTick     int
	progress      int
	defaultRecipe shared.RecipeKey // zero value when none configured
	autoStart     bool
}

func newMachine(id int, typeKey shared.MachineTypeKey) *Machine {
	return &Machine{
		id:      id,
		typeKey: typeKey,
		status:  StatusIdle,
	}
}

// ReconstructMachine restores a machine from persisted state, revalidating
// the status invariants.
func ReconstructMachine(
	id int,
	typeKey shared.MachineTypeKey,
	status Status,
	recipe catalog.Recipe,
	startTick int,
	progress int,
	defaultRecipe shared.RecipeKey,
	autoStart bool,
) (*Machine, error) {
	if id <= 0 {
		return nil, shared.NewValidationError("id", "machine id must be positive")
	}
	if typeKey.IsZero() {
		return nil, shared.NewValidationError("type", "machine type key cannot be empty")
	}
	if !status.IsValid() {
		return nil, shared.NewValidationError("status", fmt.Sprintf("unknown machine status: %s", status))
	}
	if status == StatusIdle && !recipe.IsZero() {
		return nil, shared.NewValidationError("recipe", "idle machine cannot have an active recipe")
	}
	if status == StatusWorking && recipe.IsZero() {
		return nil, shared.NewValidationError("recipe", "working machine must have an active recipe")
	}
	m := &Machine{
		id:            id,
		typeKey:       typeKey,
		status:        status,
		recipe:        recipe,
		startTick:     startTick,
		progress:      progress,
		defaultRecipe: defaultRecipe,
		autoStart:     autoStart,
	}
	if status == StatusIdle {
		m.startTick = 0
		m.progress = 0
	}
	return m, nil
}

func (m *Machine) ID() int {
	return m.id
}

func (m *Machine) TypeKey() shared.MachineTypeKey {
	return m.typeKey
}

func (m *Machine) Status() Status {
	return m.status
}

// IsWorking returns true while a recipe is running (or stalled)
func (m *Machine) IsWorking() bool {
	return m.status == StatusWorking
}

// IsIdle returns true when the machine can accept a new recipe
func (m *Machine) IsIdle() bool {
	return m.status == StatusIdle
}

// ActiveRecipe returns the running recipe; ok is false when idle
func (m *Machine) ActiveRecipe() (catalog.Recipe, bool) {
	if m.status != StatusWorking {
		return catalog.Recipe{}, false
	}
	return m.recipe, true
}

// Progress returns elapsed ticks since the recipe started (0 when idle).
// While stalled the value stays pinned at or above the recipe duration.
func (m *Machine) Progress() int {
	return m.progress
}

// StartTick returns the tick the active recipe started on (0 when idle)
func (m *Machine) StartTick() int {
	return m.startTick
}

// DefaultRecipe returns the configured auto-start recipe (zero when none)
func (m *Machine) DefaultRecipe() shared.RecipeKey {
	return m.defaultRecipe
}

// AutoStart returns whether the machine starts its default recipe on its own
func (m *Machine) AutoStart() bool {
	return m.autoStart
}

// start transitions Idle -> Working. Inputs must already be consumed.
func (m *Machine) start(recipe catalog.Recipe, tick int) error {
	if m.status != StatusIdle {
		return NewMachineBusyError(m.id)
	}
	m.status = StatusWorking
	m.recipe = recipe
	m.startTick = tick
	m.progress = 0
	return nil
}

// advance recomputes progress from the current tick. The recompute is
// idempotent: updating twice for the same tick yields the same progress.
func (m *Machine) advance(tick int) {
	if m.status != StatusWorking {
		return
	}
	m.progress = tick - m.startTick
}

// done reports whether the active recipe has run its full duration
func (m *Machine) done() bool {
	return m.status == StatusWorking && m.progress >= m.recipe.Duration()
}

// finish transitions Working -> Idle after the output batch was deposited
func (m *Machine) finish() {
	m.status = StatusIdle
	m.recipe = catalog.Recipe{}
	m.startTick = 0
	m.progress = 0
}

func (m *Machine) setDefaultRecipe(key shared.RecipeKey) {
	m.defaultRecipe = key
}

func (m *Machine) toggleAutoStart() bool {
	m.autoStart = !m.autoStart
	return m.autoStart
}

func (m *Machine) String() string {
	if m.status == StatusWorking {
		return fmt.Sprintf("Machine[#%d %s %s: %s %d/%d]",
			m.id, m.typeKey, m.status, m.recipe.Key(), m.progress, m.recipe.Duration())
	}
	return fmt.Sprintf("Machine[#%d %s %s]", m.id, m.typeKey, m.status)
}

package warehouse

import (
	"fmt"

	"github.com/andrescamacho/factorysim-go/internal/domain/shared"
	"github.com/andrescamacho/factorysim-go/pkg/utils"
)

// Store is the two-sided, capacity-limited inventory: an inbound side for raw
// materials and an outbound side for manufactured products. Quantities are
// never negative and the sum of a side never exceeds its capacity. Capacities
// only grow.
//
// Adds and removes clamp to the possible quantity and report what was actually
// moved; Consume is the only all-or-nothing operation.
type Store struct {
	materialCapacity int
	productCapacity  int
	materials        map[shared.ItemKey]int
	products         map[shared.ItemKey]int
}

// NewStore creates an empty store with the given side capacities. The item
// keys are registered with zero quantity; once registered, a key is never
// deleted.
func NewStore(materialCapacity, productCapacity int, materialKeys, productKeys []shared.ItemKey) (*Store, error) {
	if materialCapacity < 0 {
		return nil, shared.NewValidationError("material_capacity", "capacity cannot be negative")
	}
	if productCapacity < 0 {
		return nil, shared.NewValidationError("product_capacity", "capacity cannot be negative")
	}

	s := &Store{
		materialCapacity: materialCapacity,
		productCapacity:  productCapacity,
		materials:        make(map[shared.ItemKey]int, len(materialKeys)),
		products:         make(map[shared.ItemKey]int, len(productKeys)),
	}
	for _, key := range materialKeys {
		s.materials[key] = 0
	}
	for _, key := range productKeys {
		s.products[key] = 0
	}
	return s, nil
}

// ReconstructStore restores a store from persisted quantities, revalidating
// the capacity invariants.
func ReconstructStore(materialCapacity, productCapacity int, materials, products map[shared.ItemKey]int) (*Store, error) {
	s := &Store{
		materialCapacity: materialCapacity,
		productCapacity:  productCapacity,
		materials:        make(map[shared.ItemKey]int, len(materials)),
		products:         make(map[shared.ItemKey]int, len(products)),
	}
	for key, qty := range materials {
		if qty < 0 {
			return nil, shared.NewValidationError("materials", fmt.Sprintf("negative quantity for %s", key))
		}
		s.materials[key] = qty
	}
	for key, qty := range products {
		if qty < 0 {
			return nil, shared.NewValidationError("products", fmt.Sprintf("negative quantity for %s", key))
		}
		s.products[key] = qty
	}
	if s.Used(shared.SideMaterial) > materialCapacity {
		return nil, shared.NewValidationError("materials", "stored quantity exceeds capacity")
	}
	if s.Used(shared.SideProduct) > productCapacity {
		return nil, shared.NewValidationError("products", "stored quantity exceeds capacity")
	}
	return s, nil
}

// RegisterMaterial ensures a material key exists (no-op when already present)
func (s *Store) RegisterMaterial(key shared.ItemKey) {
	if _, ok := s.materials[key]; !ok {
		s.materials[key] = 0
	}
}

// RegisterProduct ensures a product key exists (no-op when already present)
func (s *Store) RegisterProduct(key shared.ItemKey) {
	if _, ok := s.products[key]; !ok {
		s.products[key] = 0
	}
}

// AddMaterial admits up to qty units on the material side, clamped to the
// free space. Returns the quantity actually admitted (0..qty).
func (s *Store) AddMaterial(key shared.ItemKey, qty int) int {
	return add(s.materials, key, qty, s.AvailableSpace(shared.SideMaterial))
}

// AddProduct admits up to qty units on the product side, clamped to the free
// space. Returns the quantity actually admitted (0..qty).
func (s *Store) AddProduct(key shared.ItemKey, qty int) int {
	return add(s.products, key, qty, s.AvailableSpace(shared.SideProduct))
}

// RemoveMaterial removes up to qty units, clamped to the held quantity.
// Returns the quantity actually removed.
func (s *Store) RemoveMaterial(key shared.ItemKey, qty int) int {
	return remove(s.materials, key, qty)
}

// RemoveProduct removes up to qty units, clamped to the held quantity.
// Returns the quantity actually removed.
func (s *Store) RemoveProduct(key shared.ItemKey, qty int) int {
	return remove(s.products, key, qty)
}

func add(side map[shared.ItemKey]int, key shared.ItemKey, qty, space int) int {
	if qty <= 0 {
		return 0
	}
	admitted := utils.Min(qty, space)
	if admitted > 0 {
		side[key] += admitted
	}
	return admitted
}

func remove(side map[shared.ItemKey]int, key shared.ItemKey, qty int) int {
	if qty <= 0 {
		return 0
	}
	removed := utils.Min(qty, side[key])
	if removed > 0 {
		side[key] -= removed
	}
	return removed
}

// MaterialQuantity returns the held quantity on the material side (0 for
// unknown keys)
func (s *Store) MaterialQuantity(key shared.ItemKey) int {
	return s.materials[key]
}

// ProductQuantity returns the held quantity on the product side (0 for
// unknown keys)
func (s *Store) ProductQuantity(key shared.ItemKey) int {
	return s.products[key]
}

// CombinedQuantity returns an item's quantity summed across both sides.
// Recipe input checks use this: products may substitute as inputs for
// higher-tier recipes.
func (s *Store) CombinedQuantity(key shared.ItemKey) int {
	return s.materials[key] + s.products[key]
}

// Capacity returns the capacity of a side
func (s *Store) Capacity(side shared.Side) int {
	if side == shared.SideMaterial {
		return s.materialCapacity
	}
	return s.productCapacity
}

// Used returns the total quantity stored on a side
func (s *Store) Used(side shared.Side) int {
	total := 0
	for _, qty := range s.sideMap(side) {
		total += qty
	}
	return total
}

// AvailableSpace returns capacity minus used for a side
func (s *Store) AvailableSpace(side shared.Side) int {
	return s.Capacity(side) - s.Used(side)
}

// ExpandCapacity grows a side's capacity by delta. Capacities never shrink.
func (s *Store) ExpandCapacity(side shared.Side, delta int) error {
	if delta < 0 {
		return shared.NewValidationError("delta", "capacity expansion cannot be negative")
	}
	if side == shared.SideMaterial {
		s.materialCapacity += delta
	} else {
		s.productCapacity += delta
	}
	return nil
}

// HasEnough reports whether every requirement is met by the combined
// material-plus-product quantity of that item.
func (s *Store) HasEnough(requirements map[shared.ItemKey]int) bool {
	for key, required := range requirements {
		if s.CombinedQuantity(key) < required {
			return false
		}
	}
	return true
}

// Consume atomically removes the required quantities, drawing from the
// material side first and covering any shortfall from the product side.
// All-or-nothing: when the combined stock cannot cover every requirement,
// nothing is removed.
func (s *Store) Consume(requirements map[shared.ItemKey]int) error {
	if !s.HasEnough(requirements) {
		missing := make(map[shared.ItemKey]int)
		for key, required := range requirements {
			if held := s.CombinedQuantity(key); held < required {
				missing[key] = required - held
			}
		}
		return NewInsufficientMaterialsError(missing)
	}

	for key, required := range requirements {
		fromMaterials := s.RemoveMaterial(key, required)
		if shortfall := required - fromMaterials; shortfall > 0 {
			s.RemoveProduct(key, shortfall)
		}
	}
	return nil
}

// TransferProductToInput moves units of a product onto the material side so
// they can feed further production. The full requested quantity must be in
// stock; the move itself clamps to the material side's free space and a
// partial move is reported through the returned count.
func (s *Store) TransferProductToInput(key shared.ItemKey, qty int) (int, error) {
	if qty <= 0 {
		return 0, shared.NewValidationError("quantity", "transfer quantity must be positive")
	}
	available := s.ProductQuantity(key)
	if available < qty {
		return 0, NewInsufficientStockError(key, qty, available)
	}

	moved := utils.Min(qty, s.AvailableSpace(shared.SideMaterial))
	if moved == 0 {
		return 0, NewNoSpaceError(shared.SideMaterial)
	}

	s.RemoveProduct(key, moved)
	s.RegisterMaterial(key)
	s.materials[key] += moved
	return moved, nil
}

// MaterialKeys returns the registered material keys (unordered)
func (s *Store) MaterialKeys() []shared.ItemKey {
	return keysOf(s.materials)
}

// ProductKeys returns the registered product keys (unordered)
func (s *Store) ProductKeys() []shared.ItemKey {
	return keysOf(s.products)
}

// Materials returns a copy of the material side quantities
func (s *Store) Materials() map[shared.ItemKey]int {
	return copyMap(s.materials)
}

// Products returns a copy of the product side quantities
func (s *Store) Products() map[shared.ItemKey]int {
	return copyMap(s.products)
}

func (s *Store) sideMap(side shared.Side) map[shared.ItemKey]int {
	if side == shared.SideMaterial {
		return s.materials
	}
	return s.products
}

func keysOf(m map[shared.ItemKey]int) []shared.ItemKey {
	keys := make([]shared.ItemKey, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	return keys
}

func copyMap(m map[shared.ItemKey]int) map[shared.ItemKey]int {
	out := make(map[shared.ItemKey]int, len(m))
	for key, qty := range m {
		out[key] = qty
	}
	return out
}

// SideReport is a read-only snapshot of one storage side
type SideReport struct {
	Capacity  int
	Used      int
	Available int
	Items     map[shared.ItemKey]int
}

// Report returns a snapshot of a side for the presentation layer
func (s *Store) Report(side shared.Side) SideReport {
	return SideReport{
		Capacity:  s.Capacity(side),
		Used:      s.Used(side),
		Available: s.AvailableSpace(side),
		Items:     copyMap(s.sideMap(side)),
	}
}

package backend

import (
	"fmt"
	"slices"

	"github.com/roach88/numconform/internal/scenario"
)

// Op names an adapter operation.
type Op string

const (
	OpFormat        Op = "format"
	OpToPattern     Op = "toPattern"
	OpParse         Op = "parse"
	OpParseCurrency Op = "parseCurrency"
)

// Ops dispatches an operation by name.
var Ops = map[Op]func(Adapter, *scenario.Scenario) (Outcome, error){
	OpFormat:        Adapter.Format,
	OpToPattern:     Adapter.ToPattern,
	OpParse:         Adapter.Parse,
	OpParseCurrency: Adapter.ParseCurrency,
}

// Invoke runs op on a.
func Invoke(a Adapter, op Op, s *scenario.Scenario) (Outcome, error) {
	fn, ok := Ops[op]
	if !ok {
		return Outcome{}, fmt.Errorf("unknown operation %q", op)
	}
	return fn(a, s)
}

// Applicable lists the operations a scenario asks for, in a fixed order.
// A parse input with an expected currency is checked as a currency parse
// instead of a plain parse.
func Applicable(s *scenario.Scenario) []Op {
	var ops []Op
	if s.Format.IsSet() {
		ops = append(ops, OpFormat)
	}
	if s.ToPattern.IsSet() || s.ToLocalizedPattern.IsSet() {
		ops = append(ops, OpToPattern)
	}
	if s.Parse.IsSet() {
		if s.OutputCurrency.IsSet() {
			ops = append(ops, OpParseCurrency)
		} else {
			ops = append(ops, OpParse)
		}
	}
	return ops
}

// Registry holds adapters by ID in registration order.
type Registry struct {
	adapters map[ID]Adapter
	order    []ID
}

// NewRegistry returns a registry holding adapters. It panics on a
// duplicate ID.
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[ID]Adapter)}
	for _, a := range adapters {
		if err := r.Register(a); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a. Registering an ID twice is an error.
func (r *Registry) Register(a Adapter) error {
	if _, dup := r.adapters[a.ID()]; dup {
		return fmt.Errorf("backend %q already registered", a.ID())
	}
	r.adapters[a.ID()] = a
	r.order = append(r.order, a.ID())
	return nil
}

// Get returns the adapter for id.
func (r *Registry) Get(id ID) (Adapter, bool) {
	a, ok := r.adapters[id]
	return a, ok
}

// IDs returns registered IDs in registration order.
func (r *Registry) IDs() []ID {
	return slices.Clone(r.order)
}

// Select returns the adapters for ids, or every adapter when ids is empty.
func (r *Registry) Select(ids ...ID) ([]Adapter, error) {
	if len(ids) == 0 {
		ids = r.order
	}
	out := make([]Adapter, 0, len(ids))
	for _, id := range ids {
		a, ok := r.adapters[id]
		if !ok {
			return nil, fmt.Errorf("unknown backend %q (registered: %v)", id, r.order)
		}
		out = append(out, a)
	}
	return out, nil
}

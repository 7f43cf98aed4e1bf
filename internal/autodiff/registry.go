package autodiff

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// VJPContext is the immutable record a VJP maker builds from a call. Apply
// maps an output cotangent to the cotangent of one input slot.
type VJPContext interface {
	Apply(g *Node) *Node
}

// VJPMaker builds the VJP context for one input slot of a call.
//
// MakeVJP is cheap: it only captures what Apply will need. The expensive
// work (for example a linear solve) happens in Apply, which the engine only
// calls when that slot's gradient is actually requested.
type VJPMaker interface {
	MakeVJP(call *Call) VJPContext
}

// VJPFunc adapts a plain function to VJPMaker. Its context is the call itself.
type VJPFunc func(call *Call, g *Node) *Node

// MakeVJP implements VJPMaker.
func (f VJPFunc) MakeVJP(call *Call) VJPContext {
	return boundVJP{call: call, fn: f}
}

type boundVJP struct {
	call *Call
	fn   VJPFunc
}

func (b boundVJP) Apply(g *Node) *Node {
	return b.fn(b.call, g)
}

// JVPRule maps the tangent of input slot to the tangent of the call's output.
type JVPRule interface {
	JVP(call *Call, slot int, tangent *Node) *Node
}

// JVPFunc adapts a plain function to JVPRule.
type JVPFunc func(call *Call, slot int, tangent *Node) *Node

// JVP implements JVPRule.
func (f JVPFunc) JVP(call *Call, slot int, tangent *Node) *Node {
	return f(call, slot, tangent)
}

// Same is the "same" forward rule: re-apply the primitive with identical
// parameters, substituting the tangent for the input in that slot. It is
// exact for every slot the primitive is linear in.
var Same JVPRule = JVPFunc(func(call *Call, slot int, tangent *Node) *Node {
	return call.Prim.Apply(call.Params, call.WithInput(slot, tangent)...)
})

// Registry maps primitives to their differentiation rules.
//
// Lifecycle: rules are defined during start-up, then Freeze makes the table
// read-only for the rest of the process. Lookups after Freeze take no lock.
type Registry struct {
	mu     sync.Mutex
	frozen atomic.Bool
	vjps   map[*Primitive][]VJPMaker
	jvps   map[*Primitive][]JVPRule
}

// NewRegistry creates a registry holding only the engine intrinsics.
func NewRegistry() *Registry {
	r := &Registry{
		vjps: make(map[*Primitive][]VJPMaker),
		jvps: make(map[*Primitive][]JVPRule),
	}
	registerIntrinsics(r)
	return r
}

// DefVJP attaches one VJP maker per input slot. A nil maker means no
// gradient is propagated to that argument; missing trailing slots are nil.
func (r *Registry) DefVJP(p *Primitive, makers ...VJPMaker) error {
	if len(makers) > p.nin {
		return fmt.Errorf("%s: %w: %d VJP makers for %d inputs", p.name, ErrArity, len(makers), p.nin)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen.Load() {
		return fmt.Errorf("DefVJP %s: %w", p.name, ErrRegistryFrozen)
	}
	if _, exists := r.vjps[p]; exists {
		return fmt.Errorf("DefVJP %s: %w", p.name, ErrAlreadyDefined)
	}
	slots := make([]VJPMaker, p.nin)
	copy(slots, makers)
	r.vjps[p] = slots
	return nil
}

// DefJVP attaches one JVP rule per input slot. A nil rule means the
// primitive has no forward-mode derivative in that slot.
func (r *Registry) DefJVP(p *Primitive, rules ...JVPRule) error {
	if len(rules) > p.nin {
		return fmt.Errorf("%s: %w: %d JVP rules for %d inputs", p.name, ErrArity, len(rules), p.nin)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen.Load() {
		return fmt.Errorf("DefJVP %s: %w", p.name, ErrRegistryFrozen)
	}
	if _, exists := r.jvps[p]; exists {
		return fmt.Errorf("DefJVP %s: %w", p.name, ErrAlreadyDefined)
	}
	slots := make([]JVPRule, p.nin)
	copy(slots, rules)
	r.jvps[p] = slots
	return nil
}

// Freeze ends the registration phase.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen.Store(true)
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	return r.frozen.Load()
}

// vjp returns the maker for a slot. ok is false when the primitive has no
// VJP rules at all.
func (r *Registry) vjp(p *Primitive, slot int) (maker VJPMaker, ok bool) {
	if !r.frozen.Load() {
		r.mu.Lock()
		defer r.mu.Unlock()
	}
	slots, ok := r.vjps[p]
	if !ok {
		return nil, false
	}
	return slots[slot], true
}

// jvp returns the forward rule for a slot, or nil.
func (r *Registry) jvp(p *Primitive, slot int) JVPRule {
	if !r.frozen.Load() {
		r.mu.Lock()
		defer r.mu.Unlock()
	}
	slots, ok := r.jvps[p]
	if !ok {
		return nil
	}
	return slots[slot]
}

// HasVJP reports whether VJP rules are defined for p.
func (r *Registry) HasVJP(p *Primitive) bool {
	if !r.frozen.Load() {
		r.mu.Lock()
		defer r.mu.Unlock()
	}
	_, ok := r.vjps[p]
	return ok
}

// HasJVP reports whether a JVP rule is defined for any slot of p.
func (r *Registry) HasJVP(p *Primitive) bool {
	for slot := 0; slot < p.nin; slot++ {
		if r.jvp(p, slot) != nil {
			return true
		}
	}
	return false
}

// Package witness is a sample host implementation of the two
// callbacks order.Order needs: resolving a metaclass to the type it
// constructs, and witnessing whether a candidate type structurally
// satisfies a protocol. A real type checker would derive both from
// its own class table; this registry is the map-backed stand-in a
// demo or test can populate directly.
package witness

import "github.com/arborlang/typeorder/internal/order"

// protocolWitness records one accepted (protocol, candidate) pair and
// the concrete parameters the candidate witnesses the protocol's
// declared generics as.
type protocolWitness struct {
	candidateName string
	parameters    []order.Type
}

// Registry implements order.Constructor and order.Implements by
// table lookup, keyed by the dotted primitive name on each side.
type Registry struct {
	constructors map[string]order.Type
	protocols    map[string][]protocolWitness
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		constructors: make(map[string]order.Type),
		protocols:    make(map[string][]protocolWitness),
	}
}

// RegisterConstructor records that the metaclass named metaclassName
// constructs instance.
func (r *Registry) RegisterConstructor(metaclassName string, instance order.Type) {
	r.constructors[metaclassName] = instance
}

// RegisterProtocolWitness records that candidateName structurally
// satisfies protocolName, instantiating its declared generics as
// parameters.
func (r *Registry) RegisterProtocolWitness(protocolName, candidateName string, parameters []order.Type) {
	r.protocols[protocolName] = append(r.protocols[protocolName], protocolWitness{
		candidateName: candidateName,
		parameters:    parameters,
	})
}

// Constructor implements order.Constructor.
func (r *Registry) Constructor(t order.Type) (order.Type, bool) {
	name, _, ok := order.Split(t)
	if !ok {
		return nil, false
	}
	instance, ok := r.constructors[name]
	return instance, ok
}

// Implements implements order.Implements.
func (r *Registry) Implements(protocol, candidate order.Type) order.ImplementsResult {
	protocolName, _, ok := order.Split(protocol)
	if !ok {
		return order.DoesNotImplement
	}
	candidateName, _, ok := order.Split(candidate)
	if !ok {
		return order.DoesNotImplement
	}
	for _, w := range r.protocols[protocolName] {
		if w.candidateName == candidateName {
			return order.ImplementsResult{Implements: true, Parameters: w.parameters}
		}
	}
	return order.DoesNotImplement
}

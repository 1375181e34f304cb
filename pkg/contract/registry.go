// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contract

import (
	"github.com/luxfi/geth/common"
	"github.com/luxfi/math/set"
)

// Registry is an append-only, duplicate-free list of addresses kept in insertion order.
// It is not safe for concurrent use; owners guard it with their own lock.
type Registry struct {
	order []common.Address
	seen  set.Set[common.Address]
}

func NewRegistry(addrs ...common.Address) *Registry {
	r := &Registry{seen: set.Of[common.Address]()}
	for _, addr := range addrs {
		r.Add(addr)
	}
	return r
}

// Add appends addr unless already present, and reports whether it was appended
func (r *Registry) Add(addr common.Address) bool {
	if r.seen.Contains(addr) {
		return false
	}
	r.seen.Add(addr)
	r.order = append(r.order, addr)
	return true
}

func (r *Registry) Contains(addr common.Address) bool {
	return r.seen.Contains(addr)
}

// At returns the i-th registered address
func (r *Registry) At(i int) (common.Address, bool) {
	if i < 0 || i >= len(r.order) {
		return common.Address{}, false
	}
	return r.order[i], true
}

func (r *Registry) Len() int {
	return len(r.order)
}

// List returns a copy of the registered addresses
func (r *Registry) List() []common.Address {
	out := make([]common.Address, len(r.order))
	copy(out, r.order)
	return out
}

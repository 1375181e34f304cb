// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package contract

import (
	"slices"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/math/set"
)

// AccessList tracks whitelisted and blacklisted addresses. A blacklisted address is
// never allowed, whether or not it was whitelisted first.
// It is not safe for concurrent use.
type AccessList struct {
	whitelist set.Set[common.Address]
	blacklist set.Set[common.Address]
}

func NewAccessList() *AccessList {
	return &AccessList{
		whitelist: set.Of[common.Address](),
		blacklist: set.Of[common.Address](),
	}
}

func (l *AccessList) Whitelist(addrs ...common.Address) {
	l.whitelist.Add(addrs...)
}

func (l *AccessList) Blacklist(addrs ...common.Address) {
	l.blacklist.Add(addrs...)
}

func (l *AccessList) IsWhitelisted(addr common.Address) bool {
	return l.whitelist.Contains(addr)
}

func (l *AccessList) IsBlacklisted(addr common.Address) bool {
	return l.blacklist.Contains(addr)
}

// Allowed reports whether addr is whitelisted and not blacklisted
func (l *AccessList) Allowed(addr common.Address) bool {
	return l.IsWhitelisted(addr) && !l.IsBlacklisted(addr)
}

// Whitelisted returns the whitelisted addresses, sorted
func (l *AccessList) Whitelisted() []common.Address {
	return sorted(l.whitelist)
}

// Blacklisted returns the blacklisted addresses, sorted
func (l *AccessList) Blacklisted() []common.Address {
	return sorted(l.blacklist)
}

func sorted(s set.Set[common.Address]) []common.Address {
	addrs := s.List()
	slices.SortFunc(addrs, func(a, b common.Address) int {
		return a.Cmp(b)
	})
	return addrs
}

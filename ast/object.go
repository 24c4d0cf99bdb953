// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"iter"

	"github.com/creachadair/mds/mapset"
)

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// Field constructs an object member with the given key and value.
func Field(key string, val Value) Member { return Member{Key: key, Value: val} }

// An Object is a collection of key-value members. Keys are unique, and
// members are kept in the order their keys were first added.
//
// No key has special meaning to an Object: every key, including the names in
// ReservedKeys, is stored as an ordinary member that can be read, replaced,
// and deleted like any other.
type Object struct {
	members []Member
	index   map[string]int // offsets of members by key; nil for small objects
}

// indexThreshold is the member count at which an object builds a key index.
// Below this, lookups scan the members directly.
const indexThreshold = 8

// NewObject constructs an object with the given members. If a key occurs
// more than once, the last value for that key wins.
func NewObject(ms ...Member) *Object {
	o := &Object{members: make([]Member, 0, len(ms))}
	for _, m := range ms {
		o.Set(m.Key, m.Value)
	}
	return o
}

// Len returns the number of members in o.
func (o *Object) Len() int { return len(o.members) }

// At returns the member of o at offset i, in insertion order.
// It panics if i is out of range.
func (o *Object) At(i int) Member { return o.members[i] }

// Keys returns the keys of o in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.Key
	}
	return keys
}

// All is a range function over the members of o in insertion order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, m := range o.members {
			if !yield(m.Key, m.Value) {
				return
			}
		}
	}
}

// Get returns the value associated with key in o, and reports whether it was
// present.
func (o *Object) Get(key string) (Value, bool) {
	if i := o.find(key); i >= 0 {
		return o.members[i].Value, true
	}
	return nil, false
}

// Set associates val with key in o. If key is already present, its value is
// replaced and its position is unchanged; otherwise a new member is added at
// the end.
func (o *Object) Set(key string, val Value) {
	if i := o.find(key); i >= 0 {
		o.members[i].Value = val
		return
	}
	o.members = append(o.members, Member{Key: key, Value: val})
	if o.index != nil {
		o.index[key] = len(o.members) - 1
	} else if len(o.members) >= indexThreshold {
		o.reindex(0)
	}
}

// Delete removes key from o, and reports whether it was present.
func (o *Object) Delete(key string) bool {
	i := o.find(key)
	if i < 0 {
		return false
	}
	o.members = append(o.members[:i], o.members[i+1:]...)
	if o.index != nil {
		delete(o.index, key)
		o.reindex(i)
	}
	return true
}

// Equal reports whether o and p have the same keys in the same order, mapped
// to equal values.
func (o *Object) Equal(p *Object) bool {
	if o == nil || p == nil {
		return o == p
	}
	if len(o.members) != len(p.members) {
		return false
	}
	for i, m := range o.members {
		if n := p.members[i]; m.Key != n.Key || !Equal(m.Value, n.Value) {
			return false
		}
	}
	return true
}

// JSON satisfies the Value interface.
func (o *Object) JSON() string { return string(appendJSON(nil, o)) }

func (o *Object) find(key string) int {
	if o.index != nil {
		if i, ok := o.index[key]; ok {
			return i
		}
		return -1
	}
	for i, m := range o.members {
		if m.Key == key {
			return i
		}
	}
	return -1
}

// reindex updates the key index for members at offsets from i onward.
func (o *Object) reindex(i int) {
	if o.index == nil {
		o.index = make(map[string]int, len(o.members))
	}
	for j := i; j < len(o.members); j++ {
		o.index[o.members[j].Key] = j
	}
}

// ReservedKeys are object keys that alter the prototype linkage or
// constructor reference of an object when assigned in a prototype-based
// runtime. Values produced by this package store them as ordinary members;
// the list is for callers that re-export values to such runtimes.
var ReservedKeys = []string{"__proto__", "constructor"}

var reservedKeys = mapset.New(ReservedKeys...)

// IsReservedKey reports whether key is one of the ReservedKeys.
func IsReservedKey(key string) bool { return reservedKeys.Has(key) }

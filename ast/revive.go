// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package ast

import "strconv"

// A Key identifies a value within its holder: an object key or an array
// index.
type Key struct {
	Name    string // the object key, if !IsIndex
	Index   int    // the array offset, if IsIndex
	IsIndex bool
}

// String renders k as a holder-relative key. An array index is rendered in
// decimal.
func (k Key) String() string {
	if k.IsIndex {
		return strconv.Itoa(k.Index)
	}
	return k.Name
}

// A Reviver is called by Revive for each value in a tree. The holder is the
// *Object or *Array that contains v under key. The reviver returns the value
// to store in place of v, and true; or false to delete v from its holder.
//
// The holder of the root value is an object whose only key is "".
type Reviver func(holder Value, key Key, v Value) (Value, bool)

// Revive transforms the tree rooted at root by calling r for each value in
// the tree, children before their containers. Members of an object are
// visited in order, and elements of an array in order of index. The result
// of r replaces the value in its holder, so that r sees the already-revived
// children when it is called for a container.
//
// If r deletes an object member, the member is removed. If r deletes an
// array element, the element is replaced by Null, since arrays have no holes.
// Revive returns the revived root, or false if r deleted the root.
//
// Revive modifies the containers of the tree in place.
func Revive(root Value, r Reviver) (Value, bool) {
	holder := NewObject(Field("", root))
	stk := []reviveFrame{{holder: holder, key: Key{}, val: root, n: -1}}

	for len(stk) != 0 {
		f := &stk[len(stk)-1]

		// On the first visit to a container, record the children to visit.
		// Children added or removed by r during the walk do not change this.
		if f.n < 0 {
			switch t := f.val.(type) {
			case *Object:
				f.keys = t.Keys()
				f.n = len(f.keys)
			case *Array:
				f.n = len(t.Values)
			default:
				f.n = 0
			}
		}

		if f.next < f.n {
			i := f.next
			f.next++
			switch t := f.val.(type) {
			case *Object:
				if v, ok := t.Get(f.keys[i]); ok {
					stk = append(stk, reviveFrame{holder: t, key: Key{Name: f.keys[i]}, val: v, n: -1})
				}
			case *Array:
				if i < len(t.Values) {
					stk = append(stk, reviveFrame{holder: t, key: Key{Index: i, IsIndex: true}, val: t.Values[i], n: -1})
				}
			}
			continue
		}

		// All children are done; revive the value itself.
		v, keep := r(f.holder, f.key, f.val)
		store(f.holder, f.key, v, keep)
		stk = stk[:len(stk)-1]
	}
	return holder.Get("")
}

// A reviveFrame records the progress of Revive through one value.
type reviveFrame struct {
	holder Value    // the container of val
	key    Key      // the key of val in holder
	val    Value    // the value being revived
	keys   []string // object keys to visit
	n      int      // number of children to visit; -1 before the first visit
	next   int      // offset of the next child to visit
}

// store records the result of reviving the value at key in holder.
func store(holder Value, key Key, v Value, keep bool) {
	switch h := holder.(type) {
	case *Object:
		if keep {
			h.Set(key.Name, v)
		} else {
			h.Delete(key.Name)
		}
	case *Array:
		if key.Index >= len(h.Values) {
			return
		}
		if keep {
			h.Values[key.Index] = v
		} else {
			h.Values[key.Index] = Null{}
		}
	}
}

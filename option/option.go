// Package option implements the heterogeneous, selector-independent part
// of the configuration system: typed option handles, the type-erased
// storage cell that remembers how to combine/clone/deduplicate whatever
// value type first occupied it, and the collection that maps option keys
// to cells.
//
// The selector-filtered, transitively-propagated resolution of
// collections across a project graph lives in package project; this
// package only knows about a single flat bag of values.
package option

import (
	"fmt"
	"reflect"

	"go.forgebuild.dev/forge/stringid"
)

// Option is a compile-time-constant typed handle into a Collection. T is a
// phantom type: no Option[T] value ever stores a T itself, it only carries
// the key used to find the matching cell.
type Option[T any] struct {
	key stringid.ID
}

// New declares a new option under name. User code and framework code
// declare options the same way; nothing about the Collection needs to
// change to support a new option.
func New[T any](name string) Option[T] {
	return Option[T]{key: stringid.Intern(name)}
}

// Key returns the interned key backing the option.
func (o Option[T]) Key() stringid.ID {
	return o.key
}

// cell is a type-erased value slot. Once materialized for some T, combine,
// clone and dedup are bound to that T and never change; mixing types under
// one key is undefined, per the option system's invariants.
type cell struct {
	ptr     any // always *T for the T the cell was materialized with
	combine func(dst, src *cell)
	clone   func(src *cell) *cell
	dedup   func(c *cell)
}

func materialize[T any]() *cell {
	c := &cell{ptr: new(T)}
	c.combine = func(dst, src *cell) {
		combineValue(dst.ptr.(*T), src.ptr.(*T))
	}
	c.clone = func(src *cell) *cell {
		nv := new(T)
		cloneValue(nv, src.ptr.(*T))
		return &cell{ptr: nv, combine: src.combine, clone: src.clone, dedup: src.dedup}
	}
	c.dedup = func(c *cell) {
		dedupValue(c.ptr.(*T))
	}
	return c
}

// combineValue implements the three documented combine behaviors:
// ordered sequences append, maps merge first-writer-wins, everything else
// replaces.
func combineValue[T any](dst, src *T) {
	rv := reflect.ValueOf(dst).Elem()
	sv := reflect.ValueOf(*src)
	switch rv.Kind() {
	case reflect.Slice:
		if sv.IsNil() {
			return
		}
		rv.Set(reflect.AppendSlice(rv, sv))
	case reflect.Map:
		if sv.IsNil() {
			return
		}
		if rv.IsNil() {
			rv.Set(reflect.MakeMapWithSize(rv.Type(), sv.Len()))
		}
		iter := sv.MapRange()
		for iter.Next() {
			if !rv.MapIndex(iter.Key()).IsValid() {
				rv.SetMapIndex(iter.Key(), iter.Value())
			}
		}
	default:
		rv.Set(sv)
	}
}

func cloneValue[T any](dst, src *T) {
	rv := reflect.ValueOf(src).Elem()
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return
		}
		nv := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		reflect.Copy(nv, rv)
		reflect.ValueOf(dst).Elem().Set(nv)
	case reflect.Map:
		if rv.IsNil() {
			return
		}
		nv := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			nv.SetMapIndex(iter.Key(), iter.Value())
		}
		reflect.ValueOf(dst).Elem().Set(nv)
	default:
		*dst = *src
	}
}

// dedupValue removes later occurrences of equal elements from an ordered
// sequence, preserving first-seen order. No-op for non-slice types.
func dedupValue[T any](v *T) {
	rv := reflect.ValueOf(v).Elem()
	if rv.Kind() != reflect.Slice || rv.Len() == 0 {
		return
	}
	seen := make(map[string]bool, rv.Len())
	kept := reflect.MakeSlice(rv.Type(), 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i)
		k := fmt.Sprintf("%#v", elem.Interface())
		if seen[k] {
			continue
		}
		seen[k] = true
		kept = reflect.Append(kept, elem)
	}
	rv.Set(kept)
}

// Collection is a type-erased mapping from option key to option value
// cell. The zero value is ready to use.
type Collection struct {
	cells map[stringid.ID]*cell
}

// NewCollection returns an empty, ready-to-use Collection.
func NewCollection() *Collection {
	return &Collection{cells: map[stringid.ID]*cell{}}
}

// Get returns a stable pointer into the collection's cell for opt,
// materializing a zero-valued T the first time opt is accessed.
func Get[T any](c *Collection, opt Option[T]) *T {
	if c.cells == nil {
		c.cells = map[stringid.ID]*cell{}
	}
	cl, ok := c.cells[opt.key]
	if !ok {
		cl = materialize[T]()
		c.cells[opt.key] = cl
	}
	return cl.ptr.(*T)
}

// Extend is the named replacement for the source language's overloaded
// `+=`: it appends one or more values of T to the ordered sequence option
// opt, preserving order. It is the only sanctioned way user build
// descriptions accumulate flags, source files, and libraries.
func Extend[T any](c *Collection, opt Option[[]T], values ...T) {
	p := Get(c, opt)
	*p = append(*p, values...)
}

// Combine merges other into c: for every key present in other, c's cell is
// combined with (or, if absent, cloned from) other's cell. Combine is
// associative for ordered-sequence options since append is associative.
func (c *Collection) Combine(other *Collection) {
	if other == nil {
		return
	}
	if c.cells == nil {
		c.cells = map[stringid.ID]*cell{}
	}
	for k, oc := range other.cells {
		if dc, ok := c.cells[k]; ok {
			dc.combine(dc, oc)
		} else {
			c.cells[k] = oc.clone(oc)
		}
	}
}

// Deduplicate runs each cell's deduplicator. Idempotent: deduplicating an
// already-deduplicated collection is a no-op.
func (c *Collection) Deduplicate() {
	for _, cl := range c.cells {
		cl.dedup(cl)
	}
}

// Keys returns the set of option keys materialized in c, in no particular
// order. Useful for diagnostics and tests; callers needing a deterministic
// order should sort the result with stringid.ID.Less.
func (c *Collection) Keys() []stringid.ID {
	keys := make([]stringid.ID, 0, len(c.cells))
	for k := range c.cells {
		keys = append(keys, k)
	}
	return keys
}

package core

import (
	"reflect"
	"slices"
)

type stateSlot[T any] struct {
	value T
}

type effectSlot struct {
	deps    []any
	cleanup func()
	ran     bool
}

// UseState returns the current value of the component's next state slot and
// a setter for it. The slot is initialized to initial on the first render of
// the component's identity; later renders ignore initial.
//
// Example:
//
//	func Counter(ctx *core.Context, _ core.Props) *core.VNode {
//	    count, setCount := core.UseState(ctx, 0)
//	    return core.H("button", core.Props{
//	        "onClick": func() { setCount.Update(func(n int) int { return n + 1 }) },
//	    }, core.Textf("%d", count))
//	}
//
// Calling UseState with a different T than an earlier render used for the
// same slot panics.
func UseState[T any](ctx *Context, initial T) (T, Setter[T]) {
	index := ctx.claim()
	slot := ctx.slots.slot(index, func() any {
		return &stateSlot[T]{value: initial}
	}).(*stateSlot[T])
	return slot.value, Setter[T]{session: ctx.session, slots: ctx.slots, index: index}
}

// Setter updates one state slot and requests a re-render. It stays bound to
// the slot it was created for, so handlers captured during an earlier render
// still update the right component.
//
// Setter is not safe for concurrent use with rendering; call it from the
// goroutine that runs the host's frames.
type Setter[T any] struct {
	session *Session
	slots   *SlotList
	index   int
}

// Set stores v and requests a re-render.
func (s Setter[T]) Set(v T) {
	s.state().value = v
	s.session.request()
}

// Update stores fn applied to the current value and requests a re-render.
func (s Setter[T]) Update(fn func(T) T) {
	slot := s.state()
	slot.value = fn(slot.value)
	s.session.request()
}

// Value returns the slot's current value.
func (s Setter[T]) Value() T {
	return s.state().value
}

func (s Setter[T]) state() *stateSlot[T] {
	return s.slots.slots[s.index].(*stateSlot[T])
}

// UseEffect runs effect on the first render of the component's next effect
// slot, and again on every render where an element of deps differs
// positionally from the previous render's. Before re-running, the cleanup
// returned by the previous run is called. Effects run synchronously during
// the render pass.
//
// Comparable dependencies are compared with ==. Slices and maps compare by
// identity, functions always count as changed, and other non-comparable
// values are compared deeply.
func UseEffect(ctx *Context, effect func() func(), deps ...any) {
	index := ctx.claim()
	slot := ctx.slots.slot(index, func() any {
		return &effectSlot{}
	}).(*effectSlot)

	if slot.ran && !depsChanged(slot.deps, deps) {
		return
	}
	if slot.cleanup != nil {
		cleanup := slot.cleanup
		slot.cleanup = nil
		cleanup()
	}
	slot.cleanup = effect()
	slot.deps = slices.Clone(deps)
	slot.ran = true
}

func depsChanged(prev, next []any) bool {
	if len(prev) != len(next) {
		return true
	}
	for i := range prev {
		if !sameDep(prev[i], next[i]) {
			return true
		}
	}
	return false
}

func sameDep(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch ta.Kind() {
	case reflect.Func:
		return false
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Map:
		return va.Pointer() == vb.Pointer()
	}
	if va.Comparable() && vb.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

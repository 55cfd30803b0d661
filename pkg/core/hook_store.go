package core

import (
	"fmt"
	"reflect"
	"runtime"
	"slices"
)

// componentID identifies an unkeyed component by its code pointer. It is
// unexported so user keys can never collide with it.
type componentID uintptr

func (id componentID) String() string {
	if fn := runtime.FuncForPC(uintptr(id)); fn != nil {
		return fn.Name()
	}
	return fmt.Sprintf("component@%#x", uintptr(id))
}

// identityOf returns the hook storage identity of a component description:
// its stability key if one is set, otherwise the component function.
//
// Unkeyed invocations of the same component share one slot list. The
// component is identified by its code pointer, which closures of one
// function literal have in common.
func identityOf(v *VNode) any {
	if key := v.Props.Key(); key != nil {
		return key
	}
	return componentID(reflect.ValueOf(v.Component).Pointer())
}

// SlotList is the ordered hook storage of one component identity.
type SlotList struct {
	slots []any
}

// Len returns the number of claimed slots.
func (l *SlotList) Len() int {
	return len(l.slots)
}

// slot returns the entry at index, creating it with create on first use.
// Entries are never replaced once created.
func (l *SlotList) slot(index int, create func() any) any {
	for len(l.slots) <= index {
		l.slots = append(l.slots, nil)
	}
	if l.slots[index] == nil {
		l.slots[index] = create()
	}
	return l.slots[index]
}

// HookStore maps component identities to their slot lists. It is owned by
// one render session and is not safe for concurrent use.
type HookStore struct {
	lists map[any]*SlotList
}

// NewHookStore returns an empty store.
func NewHookStore() *HookStore {
	return &HookStore{lists: make(map[any]*SlotList)}
}

// Lookup returns the slot list for id, creating it on first encounter.
func (h *HookStore) Lookup(id any) *SlotList {
	if l, ok := h.lists[id]; ok {
		return l
	}
	l := &SlotList{}
	h.lists[id] = l
	return l
}

// Get returns the slot list for id without creating it.
func (h *HookStore) Get(id any) (*SlotList, bool) {
	l, ok := h.lists[id]
	return l, ok
}

// Len returns the number of identities with storage.
func (h *HookStore) Len() int {
	return len(h.lists)
}

// Prune drops every slot list whose identity is not in keep and returns how
// many were dropped. Effect cleanups of dropped lists are not run.
func (h *HookStore) Prune(keep map[any]struct{}) int {
	pruned := 0
	for id := range h.lists {
		if _, ok := keep[id]; !ok {
			delete(h.lists, id)
			pruned++
		}
	}
	return pruned
}

// Describe returns one "identity: N slots" line per stored identity, sorted.
func (h *HookStore) Describe() []string {
	lines := make([]string, 0, len(h.lists))
	for id, l := range h.lists {
		lines = append(lines, fmt.Sprintf("%v: %d slots", id, l.Len()))
	}
	slices.Sort(lines)
	return lines
}

// Package memhost provides an in-memory forms.Host for headless runs and tests.
package memhost

import (
	"fmt"
	"sync"

	"github.com/BrianJOC/ndx-builder/forms"
)

// Host records mounted elements and counts every mount and unmount.
//
// By default AfterSettled runs its callback immediately. A Host created with
// Deferred queues callbacks until Settle is called, which mimics a renderer
// that finishes its first paint asynchronously.
type Host struct {
	mu       sync.Mutex
	deferred bool
	mounted  []forms.Element
	mounts   map[string]int
	unmounts map[string]int
	pending  []func()
}

// New returns a host that settles synchronously.
func New() *Host {
	return &Host{
		mounts:   make(map[string]int),
		unmounts: make(map[string]int),
	}
}

// Deferred returns a host whose AfterSettled callbacks wait for Settle.
func Deferred() *Host {
	h := New()
	h.deferred = true
	return h
}

// Mount implements forms.Host. Mounting an element twice panics.
func (h *Host) Mount(el forms.Element) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, m := range h.mounted {
		if m == el {
			panic(fmt.Sprintf("memhost: element %s mounted twice", el.ID()))
		}
	}
	h.mounted = append(h.mounted, el)
	h.mounts[el.ID()]++
}

// Unmount implements forms.Host. Unmounting an element that is not mounted panics.
func (h *Host) Unmount(el forms.Element) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, m := range h.mounted {
		if m == el {
			h.mounted = append(h.mounted[:i], h.mounted[i+1:]...)
			h.unmounts[el.ID()]++
			return
		}
	}
	panic(fmt.Sprintf("memhost: element %s is not mounted", el.ID()))
}

// AfterSettled implements forms.Host.
func (h *Host) AfterSettled(fn func()) {
	h.mu.Lock()
	if h.deferred {
		h.pending = append(h.pending, fn)
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()
	fn()
}

// Settle runs every queued AfterSettled callback in order.
func (h *Host) Settle() {
	h.mu.Lock()
	pending := h.pending
	h.pending = nil
	h.mu.Unlock()
	for _, fn := range pending {
		fn()
	}
}

// Mounted returns the IDs of mounted elements in mount order.
func (h *Host) Mounted() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	ids := make([]string, 0, len(h.mounted))
	for _, el := range h.mounted {
		ids = append(ids, el.ID())
	}
	return ids
}

// Active returns the visible mounted element, or nil when none is shown. The
// most recently mounted visible element wins, so a nested chain shadows its
// parent.
func (h *Host) Active() forms.Element {
	h.mu.Lock()
	mounted := append([]forms.Element{}, h.mounted...)
	h.mu.Unlock()
	for i := len(mounted) - 1; i >= 0; i-- {
		if mounted[i].Visible() {
			return mounted[i]
		}
	}
	return nil
}

// Element returns the mounted element with id.
func (h *Host) Element(id string) (forms.Element, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, el := range h.mounted {
		if el.ID() == id {
			return el, true
		}
	}
	return nil, false
}

// Mounts returns how many times the element with id was mounted.
func (h *Host) Mounts(id string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.mounts[id]
}

// Unmounts returns how many times the element with id was unmounted.
func (h *Host) Unmounts(id string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.unmounts[id]
}

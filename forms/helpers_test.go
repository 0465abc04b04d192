package forms

type record struct {
	Name string
	Doc  string
	Kind string
}

// textUnit is a single-field unit bound to one field of record.
type textUnit struct {
	name  string
	get   func(record) string
	set   func(record, string) record
	field string

	visible  bool
	shows    int
	filled   []record
	progress []*Progress
	events   *[]string
}

func newTextUnit(name string, events *[]string, get func(record) string, set func(record, string) record) *textUnit {
	return &textUnit{name: name, get: get, set: set, events: events}
}

func nameUnit(events *[]string) *textUnit {
	return newTextUnit("name", events,
		func(r record) string { return r.Name },
		func(r record, v string) record { r.Name = v; return r },
	)
}

func docUnit(events *[]string) *textUnit {
	return newTextUnit("doc", events,
		func(r record) string { return r.Doc },
		func(r record, v string) record { r.Doc = v; return r },
	)
}

func kindUnit(events *[]string) *textUnit {
	return newTextUnit("kind", events,
		func(r record) string { return r.Kind },
		func(r record, v string) record { r.Kind = v; return r },
	)
}

func (u *textUnit) Fill(value record, progress *Progress) {
	u.filled = append(u.filled, value)
	u.progress = append(u.progress, progress)
	if v := u.get(value); v != "" {
		u.field = v
	}
}

func (u *textUnit) Transform(value record) record {
	if u.field == "" {
		return value
	}
	return u.set(value, u.field)
}

func (u *textUnit) Clear() {
	u.field = ""
}

func (u *textUnit) ShowAndFocus(visible bool) {
	u.visible = visible
	if visible {
		u.shows++
	}
	if u.events != nil {
		state := "hide"
		if visible {
			state = "show"
		}
		*u.events = append(*u.events, state+":"+u.name)
	}
}

func (u *textUnit) lastFilled() record {
	if len(u.filled) == 0 {
		return record{}
	}
	return u.filled[len(u.filled)-1]
}

// outcome records how a launcher run ended.
type outcome struct {
	abandoned int
	completed []record
}

func (o *outcome) abandon() {
	o.abandoned++
}

func (o *outcome) complete(r record) {
	o.completed = append(o.completed, r)
}

func recoverPanic(fn func()) (v any) {
	defer func() {
		v = recover()
	}()
	fn()
	return nil
}

// fakeHost is an in-package Host that records mounts. forms/memhost cannot be
// imported here without a cycle.
type fakeHost struct {
	deferred bool
	mounted  []Element
	mounts   map[string]int
	unmounts map[string]int
	pending  []func()
}

func newFakeHost() *fakeHost {
	return &fakeHost{mounts: make(map[string]int), unmounts: make(map[string]int)}
}

func newDeferredHost() *fakeHost {
	h := newFakeHost()
	h.deferred = true
	return h
}

func (h *fakeHost) Mount(el Element) {
	for _, m := range h.mounted {
		if m == el {
			panic("mounted twice: " + el.ID())
		}
	}
	h.mounted = append(h.mounted, el)
	h.mounts[el.ID()]++
}

func (h *fakeHost) Unmount(el Element) {
	for i, m := range h.mounted {
		if m == el {
			h.mounted = append(h.mounted[:i], h.mounted[i+1:]...)
			h.unmounts[el.ID()]++
			return
		}
	}
	panic("not mounted: " + el.ID())
}

func (h *fakeHost) AfterSettled(fn func()) {
	if h.deferred {
		h.pending = append(h.pending, fn)
		return
	}
	fn()
}

func (h *fakeHost) Settle() {
	pending := h.pending
	h.pending = nil
	for _, fn := range pending {
		fn()
	}
}

func (h *fakeHost) Mounted() []string {
	ids := make([]string, 0, len(h.mounted))
	for _, el := range h.mounted {
		ids = append(ids, el.ID())
	}
	return ids
}

func (h *fakeHost) Mounts(id string) int {
	return h.mounts[id]
}

func (h *fakeHost) Unmounts(id string) int {
	return h.unmounts[id]
}

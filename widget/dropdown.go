package widget

import "sync"

// ClickBus delivers document-level clicks to mounted listeners.
type ClickBus struct {
	mu        sync.Mutex
	next      int
	listeners map[int]func(target any)
}

func NewClickBus() *ClickBus {
	return &ClickBus{listeners: make(map[int]func(any))}
}

// Subscribe registers fn and returns the function that removes it.
func (b *ClickBus) Subscribe(fn func(target any)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	b.listeners[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.listeners, id)
	}
}

// Click dispatches a click on target to every listener.
func (b *ClickBus) Click(target any) {
	b.mu.Lock()
	fns := make([]func(any), 0, len(b.listeners))
	for _, fn := range b.listeners {
		fns = append(fns, fn)
	}
	b.mu.Unlock()
	for _, fn := range fns {
		fn(target)
	}
}

// Listeners is the number of live subscriptions.
func (b *ClickBus) Listeners() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}

// Dropdown is a single-choice select. It is either closed or open; selecting
// an option or clicking outside closes it.
type Dropdown struct {
	Options     []Option
	Placeholder string
	OnChange    func(value string)

	open        bool
	selected    string
	unsubscribe func()
}

func NewDropdown(options []Option, placeholder string, onChange func(string)) *Dropdown {
	return &Dropdown{Options: options, Placeholder: placeholder, OnChange: onChange}
}

// Mount attaches the outside-click listener.
func (d *Dropdown) Mount(bus *ClickBus) {
	if d.unsubscribe != nil {
		return
	}
	d.unsubscribe = bus.Subscribe(func(target any) {
		if target != d {
			d.open = false
		}
	})
}

// Unmount detaches the outside-click listener.
func (d *Dropdown) Unmount() {
	if d.unsubscribe != nil {
		d.unsubscribe()
		d.unsubscribe = nil
	}
}

// Sync mirrors the bound value into the dropdown.
func (d *Dropdown) Sync(value string) { d.selected = value }

// Toggle handles a click on the dropdown header.
func (d *Dropdown) Toggle() { d.open = !d.open }

// Select picks value, notifies OnChange and closes the menu.
func (d *Dropdown) Select(value string) {
	d.selected = value
	d.open = false
	if d.OnChange != nil {
		d.OnChange(value)
	}
}

func (d *Dropdown) IsOpen() bool     { return d.open }
func (d *Dropdown) Selected() string { return d.selected }

// Label is the text shown in the closed header.
func (d *Dropdown) Label() string {
	if d.selected == "" {
		return d.Placeholder
	}
	return LabelFor(d.Options, d.selected)
}

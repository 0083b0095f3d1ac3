package ui

import "sync"

// Popover is the account menu in the page header. It closes on any click
// outside its element while attached to a bus.
type Popover struct {
	elementID string

	mu          sync.Mutex
	visible     bool
	unsubscribe func()
}

func NewPopover(elementID string) *Popover {
	return &Popover{elementID: elementID}
}

// Attach starts listening for outside clicks on bus.
func (p *Popover) Attach(bus *Bus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.unsubscribe != nil {
		return
	}
	p.unsubscribe = bus.Subscribe("click", p.onClick)
}

// Detach stops listening. The popover keeps its last state.
func (p *Popover) Detach() {
	p.mu.Lock()
	unsubscribe := p.unsubscribe
	p.unsubscribe = nil
	p.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (p *Popover) Toggle() {
	p.mu.Lock()
	p.visible = !p.visible
	p.mu.Unlock()
}

func (p *Popover) Visible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible
}

func (p *Popover) ElementID() string { return p.elementID }

func (p *Popover) onClick(e Event) {
	if e.Inside(p.elementID) {
		return
	}
	p.mu.Lock()
	p.visible = false
	p.mu.Unlock()
}

// Package widget holds the state behind the floating chat widget: whether
// the panel is open and how one visitor message becomes a reply turn.
package widget

import "sync"

const (
	IconChat  = "chat"
	IconClose = "close"
)

// Panel is the open/closed state of the chat window.
type Panel struct {
	mu   sync.Mutex
	open bool
}

func (p *Panel) Open() {
	p.mu.Lock()
	p.open = true
	p.mu.Unlock()
}

func (p *Panel) Close() {
	p.mu.Lock()
	p.open = false
	p.mu.Unlock()
}

// Toggle flips the state and returns whether the panel is now open.
func (p *Panel) Toggle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = !p.open
	return p.open
}

func (p *Panel) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open
}

// Icon is the toggle button icon: a close mark while open.
func (p *Panel) Icon() string {
	if p.IsOpen() {
		return IconClose
	}
	return IconChat
}

// PanelState is the serialisable view of a Panel.
type PanelState struct {
	Open bool   `json:"open"`
	Icon string `json:"icon"`
}

func (p *Panel) State() PanelState {
	p.mu.Lock()
	defer p.mu.Unlock()
	icon := IconChat
	if p.open {
		icon = IconClose
	}
	return PanelState{Open: p.open, Icon: icon}
}

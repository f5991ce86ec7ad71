package theme

import (
	"fmt"
	"sync"
)

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

func Parse(s string) (Theme, error) {
	switch t := Theme(s); t {
	case Light, Dark:
		return t, nil
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

// Preference is the process-wide light/dark setting. It is not persisted.
type Preference struct {
	mu      sync.RWMutex
	current Theme
}

func NewPreference(initial Theme) *Preference {
	if initial != Dark {
		initial = Light
	}
	return &Preference{current: initial}
}

func (p *Preference) Get() Theme {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

func (p *Preference) Set(t Theme) {
	p.mu.Lock()
	p.current = t
	p.mu.Unlock()
}

func (p *Preference) Toggle() Theme {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == Dark {
		p.current = Light
	} else {
		p.current = Dark
	}
	return p.current
}

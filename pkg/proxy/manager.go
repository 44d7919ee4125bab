package proxy

import (
	"fmt"
	"net/url"
)

// Manager hands out the proxy used for outgoing requests.
// Only the first configured proxy is used; there is no rotation.
type Manager struct {
	specs []Spec
}

// NewManager validates every spec up front so a bad entry fails at startup
func NewManager(specs []Spec) (*Manager, error) {
	for i, s := range specs {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("proxy #%d: %w", i+1, err)
		}
	}
	return &Manager{specs: specs}, nil
}

// ProxyURL returns the active proxy, or nil when none is configured
func (m *Manager) ProxyURL() *url.URL {
	if m == nil || len(m.specs) == 0 {
		return nil
	}
	u, err := m.specs[0].URL()
	if err != nil {
		return nil
	}
	return u
}

// Len returns the number of configured proxies
func (m *Manager) Len() int {
	if m == nil {
		return 0
	}
	return len(m.specs)
}

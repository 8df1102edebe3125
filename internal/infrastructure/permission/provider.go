package permission

import (
	"context"
	"sync"

	"snapvision/internal/domain/port"
)

// Provider — in-memory провайдер разрешения на камеру. Флаг deny позволяет
// эмулировать отказ пользователя; повторный запрос после отказа допустим.
type Provider struct {
	mu      sync.RWMutex
	granted bool
	deny    bool
}

// New создаёт провайдер. При deny=true все запросы отклоняются.
func New(deny bool) *Provider {
	return &Provider{deny: deny}
}

// Granted сообщает, выдано ли разрешение.
func (p *Provider) Granted() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.granted
}

// Request запрашивает разрешение и запоминает выдачу.
func (p *Provider) Request(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.deny {
		return false
	}
	p.granted = true
	return true
}

// Проверка реализации интерфейса
var _ port.PermissionProvider = (*Provider)(nil)

package port

import "context"

// PermissionProvider — интерфейс разрешения на доступ к камере.
type PermissionProvider interface {
	// Granted сообщает, выдано ли разрешение.
	Granted() bool

	// Request запрашивает разрешение у пользователя. Отказ восстановим:
	// запрос можно повторить.
	Request(ctx context.Context) bool
}

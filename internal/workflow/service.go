package workflow

import (
	"context"

	"github.com/calperm/calperm/internal/exchange"
)

// Service is the remote mailbox API the workflows drive. *exchange.Client
// implements it.
type Service interface {
	Connect(ctx context.Context, admin string) (*exchange.Session, error)
	Disconnect(s *exchange.Session) error
	ResolveMailbox(ctx context.Context, identity string) (*exchange.Mailbox, error)
	ListCalendars(ctx context.Context, mailbox string) ([]exchange.Calendar, error)
	ListPermissions(ctx context.Context, calendarPath string) ([]exchange.Permission, error)
	GrantPermission(ctx context.Context, change exchange.PermissionChange) error
	ModifyPermission(ctx context.Context, change exchange.PermissionChange) error
	RevokePermission(ctx context.Context, calendarPath, user string) error
}

var _ Service = (*exchange.Client)(nil)

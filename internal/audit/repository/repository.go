package repository

import (
	"context"

	"github.com/Rollin-123/belafrica-node-sub000/internal/audit/domain"
)

// Repository defines persistence for audit logs.
type Repository interface {
	Create(ctx context.Context, a *domain.AuditLog) error
}

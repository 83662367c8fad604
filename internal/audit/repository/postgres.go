package repository

import (
	"context"
	"database/sql"

	"github.com/Rollin-123/belafrica-node-sub000/internal/audit/domain"
)

const insertAuditLog = `INSERT INTO audit_logs (id, user_id, subject, action, resource, ip, metadata, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns an audit log repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create persists the audit log to the database. The audit log must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, a *domain.AuditLog) error {
	meta := sql.NullString{String: a.Metadata, Valid: a.Metadata != ""}
	_, err := r.db.ExecContext(ctx, insertAuditLog, a.ID, a.UserID, a.Subject, a.Action, a.Resource, a.IP, meta, a.CreatedAt)
	return err
}


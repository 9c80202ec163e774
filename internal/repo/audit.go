package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mheller/wayfarer/internal/domain"
)

// AuditRepo persists audit facts. It satisfies service.AuditRecorder.
// Facts are write-once; there is no read path in the engine.
type AuditRepo interface {
	Record(ctx context.Context, fact domain.AuditFact) error
}

// pgAuditRepo is the Postgres implementation of AuditRepo.
type pgAuditRepo struct {
	db db
}

// NewAuditRepo constructs an AuditRepo backed by the provided db connection.
func NewAuditRepo(db db) AuditRepo {
	return &pgAuditRepo{db: db}
}

func (r *pgAuditRepo) Record(ctx context.Context, fact domain.AuditFact) error {
	const q = `
		INSERT INTO audit_facts (action, entity_type, entity_id, actor_id, detail)
		VALUES (@action, @entity_type, @entity_id, @actor_id, @detail)`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{
		"action":      fact.Action,
		"entity_type": fact.EntityType,
		"entity_id":   fact.EntityID,
		"actor_id":    fact.ActorID,
		"detail":      fact.Detail,
	})
	if err != nil {
		return fmt.Errorf("repo.AuditRepo.Record: %w", err)
	}
	return nil
}

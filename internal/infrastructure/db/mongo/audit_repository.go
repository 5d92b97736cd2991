package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ecomstore/commerce-api/internal/core/domain"
)

const auditCollection = "auth_audit"

// AuditRepository appends authentication events to the auth_audit collection.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuthEvent struct {
	Username string `bson:"username,omitempty"`
	Action   string `bson:"action"`
	Success  bool   `bson:"success"`
	Path     string `bson:"path,omitempty"`
	At       int64  `bson:"at"`
}

func (r *AuditRepository) Record(ctx context.Context, event domain.AuthEvent) error {
	doc := mongoAuthEvent{
		Username: event.Username,
		Action:   string(event.Action),
		Success:  event.Success,
		Path:     event.Path,
		At:       event.At.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

package mongodb

import (
	"context"
	"fmt"

	"kyarte_server/core/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionAuditRecords = "analysis_audit"

// AuditAdapter implements out.AnalysisAuditStore using MongoDB. Raw
// engine responses can be large and schemaless, which is why they live
// here instead of PostgreSQL.
type AuditAdapter struct {
	collection *mongo.Collection
}

func NewAuditAdapter(db *mongo.Database) *AuditAdapter {
	return &AuditAdapter{collection: db.Collection(collectionAuditRecords)}
}

// EnsureIndexes creates the indexes the audit queries need.
func (a *AuditAdapter) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "note_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}
	if _, err := a.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create audit indexes: %w", err)
	}
	return nil
}

// Save stores one analysis audit record.
func (a *AuditAdapter) Save(ctx context.Context, record *domain.AnalysisAuditRecord) error {
	if _, err := a.collection.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert audit record: %w", err)
	}
	return nil
}

// RecentByNote returns the newest audit records for a note.
func (a *AuditAdapter) RecentByNote(ctx context.Context, noteID int64, limit int) ([]*domain.AnalysisAuditRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := a.collection.Find(ctx, bson.M{"note_id": noteID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*domain.AnalysisAuditRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode audit records: %w", err)
	}
	return records, nil
}

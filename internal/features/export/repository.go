package export

import (
	"context"
	"time"

	"reportdesk/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type HistoryRepository interface {
	Create(ctx context.Context, entry *ExportHistory) error
	List(ctx context.Context, limit int64) ([]ExportHistory, error)
}

type HistoryRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewHistoryRepository(db *database.MongodbDB) HistoryRepository {
	return &HistoryRepositoryImpl{
		Collection: db.DB.Collection("export_history"),
	}
}

func (r *HistoryRepositoryImpl) Create(ctx context.Context, entry *ExportHistory) error {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	entry.CreatedAt = time.Now()
	_, err := r.Collection.InsertOne(ctx, entry)
	return err
}

func (r *HistoryRepositoryImpl) List(ctx context.Context, limit int64) ([]ExportHistory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)

	cursor, err := r.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []ExportHistory
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

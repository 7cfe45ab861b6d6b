package report

import (
	"context"

	"reportdesk/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReportRepository interface {
	Find(ctx context.Context, query bson.M, sort bson.D, skip, limit int64) ([]ReportRecord, error)
	Count(ctx context.Context, query bson.M) (int64, error)
	InsertMany(ctx context.Context, records []ReportRecord) error
}

type ReportRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewReportRepository(db *database.MongodbDB) ReportRepository {
	return &ReportRepositoryImpl{
		Collection: db.DB.Collection("reports"),
	}
}

func (r *ReportRepositoryImpl) Find(ctx context.Context, query bson.M, sort bson.D, skip, limit int64) ([]ReportRecord, error) {
	opts := options.Find().SetSort(sort).SetSkip(skip).SetLimit(limit)

	cursor, err := r.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []ReportRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *ReportRepositoryImpl) Count(ctx context.Context, query bson.M) (int64, error) {
	return r.Collection.CountDocuments(ctx, query)
}

func (r *ReportRepositoryImpl) InsertMany(ctx context.Context, records []ReportRecord) error {
	docs := make([]interface{}, 0, len(records))
	for _, rec := range records {
		docs = append(docs, rec)
	}
	_, err := r.Collection.InsertMany(ctx, docs)
	return err
}

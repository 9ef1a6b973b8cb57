// internal/interface/repository/penalty_repo.go
package repository

import (
	"context"
	"errors"
	"time"

	"cezatakip-service/internal/domain/entity"
	"cezatakip-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPenaltyRepository implements the PenaltyRepository interface
type MongoPenaltyRepository struct {
	collection *mongo.Collection
}

// NewMongoPenaltyRepository creates a new MongoDB penalty repository
func NewMongoPenaltyRepository(db *mongo.Database) repository.PenaltyRepository {
	collection := db.Collection("trafficPenalties")

	// Create indexes for better performance
	ctx := context.Background()

	numberIndex := mongo.IndexModel{
		Keys:    bson.M{"penaltyNumber": 1},
		Options: options.Index().SetUnique(true),
	}

	// Secondary indexes backing the read endpoints
	eventDateIndex := mongo.IndexModel{
		Keys: bson.M{"eventDate": -1},
	}
	driverNameIndex := mongo.IndexModel{
		Keys: bson.M{"driver.name": 1},
	}
	passengerNameIndex := mongo.IndexModel{
		Keys: bson.M{"passenger.name": 1},
	}
	flaggedIndex := mongo.IndexModel{
		Keys: bson.M{"isFlagged": 1},
	}
	taxiIndex := mongo.IndexModel{
		Keys: bson.M{"isTaxiPenalty": 1},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		numberIndex,
		eventDateIndex,
		driverNameIndex,
		passengerNameIndex,
		flaggedIndex,
		taxiIndex,
	})

	return &MongoPenaltyRepository{
		collection: collection,
	}
}

// InsertBatch submits records as one unordered InsertMany. Per-document
// write errors (duplicate key, validation) are absorbed into the failed
// count so sibling documents still land.
func (r *MongoPenaltyRepository) InsertBatch(ctx context.Context, records []*entity.PenaltyRecord) (int, int, error) {
	if len(records) == 0 {
		return 0, 0, nil
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(records))
	for _, record := range records {
		record.ID = primitive.NewObjectID().Hex()
		record.CreatedAt = now
		record.UpdatedAt = now
		docs = append(docs, record)
	}

	result, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		var bulkErr mongo.BulkWriteException
		if errors.As(err, &bulkErr) {
			failed := len(bulkErr.WriteErrors)
			return len(docs) - failed, failed, nil
		}
		return 0, 0, err
	}
	return len(result.InsertedIDs), 0, nil
}

// UpdateBatch submits records as one unordered BulkWrite of per-key $set
// updates, replacing every mapped field and refreshing updatedAt.
func (r *MongoPenaltyRepository) UpdateBatch(ctx context.Context, records []*entity.PenaltyRecord) error {
	if len(records) == 0 {
		return nil
	}

	now := time.Now()
	models := make([]mongo.WriteModel, 0, len(records))
	for _, record := range records {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"penaltyNumber": record.PenaltyNumber}).
			SetUpdate(bson.M{"$set": updateDoc(record, now)}))
	}

	_, err := r.collection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	return err
}

func updateDoc(record *entity.PenaltyRecord, now time.Time) bson.M {
	return bson.M{
		"eventDate":     record.EventDate,
		"eventTime":     record.EventTime,
		"receiptTime":   record.ReceiptTime,
		"place":         record.Place,
		"coordinates":   record.Coordinates,
		"address":       record.Address,
		"district":      record.District,
		"city":          record.City,
		"passenger":     record.Passenger,
		"driver":        record.Driver,
		"vehicle":       record.Vehicle,
		"isFlagged":     record.IsFlagged,
		"isTaxiPenalty": record.IsTaxiPenalty,
		"updatedAt":     now,
	}
}

// PageNumbers returns up to limit penalty numbers greater than after in
// ascending order, projecting only the key field.
func (r *MongoPenaltyRepository) PageNumbers(ctx context.Context, after int64, limit int64) ([]int64, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"penaltyNumber": bson.M{"$gt": after}},
		options.Find().
			SetSort(bson.D{{Key: "penaltyNumber", Value: 1}}).
			SetLimit(limit).
			SetProjection(bson.M{"penaltyNumber": 1, "_id": 0}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var page []struct {
		PenaltyNumber int64 `bson:"penaltyNumber"`
	}
	if err := cursor.All(ctx, &page); err != nil {
		return nil, err
	}

	numbers := make([]int64, 0, len(page))
	for _, p := range page {
		numbers = append(numbers, p.PenaltyNumber)
	}
	return numbers, nil
}

// DeleteAll wipes the collection
func (r *MongoPenaltyRepository) DeleteAll(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{})
	return err
}

// FindByNumber finds a penalty record by its penalty number
func (r *MongoPenaltyRepository) FindByNumber(ctx context.Context, number int64) (*entity.PenaltyRecord, error) {
	var record entity.PenaltyRecord
	err := r.collection.FindOne(ctx, bson.M{"penaltyNumber": number}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// Find lists penalty records matching the filter, newest event first
func (r *MongoPenaltyRepository) Find(ctx context.Context, filter repository.PenaltyFilter) ([]*entity.PenaltyRecord, int64, error) {
	query := bson.M{}
	if filter.DriverName != "" {
		query["driver.name"] = primitive.Regex{Pattern: filter.DriverName, Options: "i"}
	}
	if filter.PassengerName != "" {
		query["passenger.name"] = primitive.Regex{Pattern: filter.PassengerName, Options: "i"}
	}
	if filter.Flagged != nil {
		query["isFlagged"] = *filter.Flagged
	}
	if filter.Taxi != nil {
		query["isTaxiPenalty"] = *filter.Taxi
	}

	dateRange := bson.M{}
	if from, err := time.Parse("2006-01-02", filter.DateFrom); err == nil {
		dateRange["$gte"] = from
	}
	if to, err := time.Parse("2006-01-02", filter.DateTo); err == nil {
		dateRange["$lte"] = to
	}
	if len(dateRange) > 0 {
		query["eventDate"] = dateRange
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 200 {
		limit = 50
	}

	cursor, err := r.collection.Find(ctx, query, options.Find().
		SetSort(bson.D{{Key: "eventDate", Value: -1}}).
		SetSkip((page-1)*limit).
		SetLimit(limit))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var records []*entity.PenaltyRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// Stats aggregates the overview counters
func (r *MongoPenaltyRepository) Stats(ctx context.Context) (*entity.PenaltyStats, error) {
	stats := &entity.PenaltyStats{}

	var err error
	if stats.Total, err = r.collection.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if stats.Flagged, err = r.collection.CountDocuments(ctx, bson.M{"isFlagged": true}); err != nil {
		return nil, err
	}
	if stats.Taxi, err = r.collection.CountDocuments(ctx, bson.M{"isTaxiPenalty": true}); err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"eventDate": bson.M{"$ne": nil}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$dateToString": bson.M{"format": "%Y-%m", "date": "$eventDate"}},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &stats.Monthly); err != nil {
		return nil, err
	}
	return stats, nil
}

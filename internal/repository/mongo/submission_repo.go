// internal/repository/mongo/submission_repo.go
package mongo

import (
	"context"
	"errors"
	"log"

	"github.com/akeath18/HPE-assets/internal/domain"
	"github.com/akeath18/HPE-assets/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const submissionCollectionName = "submissions"

// mongoSubmissionRepository implements repository.SubmissionRepository
type mongoSubmissionRepository struct {
	collection *mongo.Collection
}

// NewMongoSubmissionRepository creates a Mongo-backed submission repository.
func NewMongoSubmissionRepository(db *mongo.Database) repository.SubmissionRepository {
	return &mongoSubmissionRepository{
		collection: db.Collection(submissionCollectionName),
	}
}

// Insert stores a new submission. The submission id doubles as the _id, so a
// duplicate insert fails on the primary key.
func (r *mongoSubmissionRepository) Insert(ctx context.Context, submission *domain.Submission) error {
	if submission.ID == "" {
		return errors.New("submission requires an id")
	}

	_, err := r.collection.InsertOne(ctx, submission)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicateID
	}
	return err
}

// GetByID retrieves a single submission by its id.
func (r *mongoSubmissionRepository) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	var submission domain.Submission
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&submission)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &submission, nil
}

// Update replaces the stored record for the submission's id.
func (r *mongoSubmissionRepository) Update(ctx context.Context, submission *domain.Submission) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": submission.ID}, submission)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListPending returns pending submissions, newest submission first.
func (r *mongoSubmissionRepository) ListPending(ctx context.Context) ([]domain.Submission, error) {
	filter := bson.M{"status": domain.StatusPending}
	findOptions := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}})
	return r.list(ctx, filter, findOptions)
}

// ListHistory returns reviewed submissions, newest review first. Records
// missing a reviewedAt fall back to their submittedAt in the sort key, same
// as the file store.
func (r *mongoSubmissionRepository) ListHistory(ctx context.Context) ([]domain.Submission, error) {
	filter := bson.M{"status": bson.M{"$ne": domain.StatusPending}}
	findOptions := options.Find().SetSort(bson.D{
		{Key: "reviewedAt", Value: -1},
		{Key: "submittedAt", Value: -1},
	})
	return r.list(ctx, filter, findOptions)
}

func (r *mongoSubmissionRepository) list(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Submission, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	submissions := make([]domain.Submission, 0)
	if err := cursor.All(ctx, &submissions); err != nil {
		return nil, err
	}
	return submissions, nil
}

// EnsureSubmissionIndexes creates necessary indexes. Call during startup.
func EnsureSubmissionIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Main pending-queue query: status filter sorted by submission time
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "submittedAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "reviewedAt", Value: -1}},
			Options: options.Index().SetSparse(true),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}

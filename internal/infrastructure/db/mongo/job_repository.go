package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/solosphere/jobs-api/internal/core/domain"
)

const DefaultJobsCollection = "solosphereJOBS"

type JobRepository struct {
	col *mongo.Collection
}

func NewJobRepository(db *mongo.Database, collection string) *JobRepository {
	if collection == "" {
		collection = DefaultJobsCollection
	}
	return &JobRepository{col: db.Collection(collection)}
}

// FindAll returns every job in natural order.
func (r *JobRepository) FindAll(ctx context.Context) ([]domain.Job, error) {
	return r.find(ctx, bson.M{})
}

// FindPage runs a composed listing query.
func (r *JobRepository) FindPage(ctx context.Context, q domain.ListingQuery) ([]domain.Job, error) {
	filter, opts := listingFind(q)
	return r.find(ctx, filter, opts)
}

// FindByBuyer returns the jobs posted by the given buyer email.
func (r *JobRepository) FindByBuyer(ctx context.Context, email string) ([]domain.Job, error) {
	return r.find(ctx, bson.M{"buyer.email": email})
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var job domain.Job
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&job); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return &job, nil
}

// Create inserts a new job document and returns its generated id.
func (r *JobRepository) Create(ctx context.Context, job *domain.Job) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, job)
	if err != nil {
		return "", fmt.Errorf("insert job: %w", err)
	}
	return hexID(res.InsertedID), nil
}

func (r *JobRepository) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := objectID(id)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("delete job: %w", err)
	}
	return res.DeletedCount, nil
}

// Upsert sets the non-empty fields of job on the document with the given id,
// inserting the document when it does not exist.
func (r *JobRepository) Upsert(ctx context.Context, id string, job *domain.Job) (*domain.UpsertResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	set, err := setDocument(job)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return nil, fmt.Errorf("upsert job: %w", err)
	}

	return &domain.UpsertResult{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedID:    hexID(res.UpsertedID),
	}, nil
}

// Count returns the number of jobs matching predicate.
func (r *JobRepository) Count(ctx context.Context, predicate map[string]any) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, filterDocument(predicate))
	if err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates the indexes used by listing and owner lookups.
func (r *JobRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "deadline", Value: 1}}},
		{Keys: bson.D{{Key: "buyer.email", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *JobRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find jobs: %w", err)
	}

	jobs := make([]domain.Job, 0)
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}
	return jobs, nil
}

// listingFind translates a listing query into a filter and find options.
func listingFind(q domain.ListingQuery) (bson.M, *options.FindOptions) {
	opts := options.Find().
		SetSkip(q.Skip).
		SetLimit(q.Limit)
	if q.Sort != nil {
		opts.SetSort(bson.D{{Key: q.Sort.Field, Value: q.Sort.Direction}})
	}
	return filterDocument(q.Predicate), opts
}

func filterDocument(predicate map[string]any) bson.M {
	if predicate == nil {
		return bson.M{}
	}
	return bson.M(predicate)
}

// setDocument renders job as a $set document, dropping _id and empty fields.
func setDocument(job *domain.Job) (bson.M, error) {
	raw, err := bson.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("encode job: %w", err)
	}

	set := bson.M{}
	if err := bson.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("encode job: %w", err)
	}
	delete(set, "_id")

	if len(set) == 0 {
		return nil, domain.ErrEmptyUpdate
	}
	return set, nil
}

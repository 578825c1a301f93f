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

const DefaultBidsCollection = "solosphereBIDJOBS"

const bidUniqueIndex = "email_title_unique"

type BidRepository struct {
	col *mongo.Collection
}

func NewBidRepository(db *mongo.Database, collection string) *BidRepository {
	if collection == "" {
		collection = DefaultBidsCollection
	}
	return &BidRepository{col: db.Collection(collection)}
}

func (r *BidRepository) FindAll(ctx context.Context) ([]domain.Bid, error) {
	return r.find(ctx, bson.M{})
}

// FindByBidder returns the bids placed by email.
func (r *BidRepository) FindByBidder(ctx context.Context, email string) ([]domain.Bid, error) {
	return r.find(ctx, bson.M{"email": email})
}

// FindByBuyer returns the bids placed on jobs owned by email.
func (r *BidRepository) FindByBuyer(ctx context.Context, email string) ([]domain.Bid, error) {
	return r.find(ctx, bson.M{"buyer.email": email})
}

// Exists reports whether email already bid on a job titled title.
func (r *BidRepository) Exists(ctx context.Context, email, title string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx,
		bson.M{"email": email, "title": title},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, fmt.Errorf("find bid: %w", err)
	}
	return n > 0, nil
}

// Create inserts a bid. A violation of the (email, title) unique index is
// reported as domain.ErrDuplicateBid.
func (r *BidRepository) Create(ctx context.Context, bid *domain.Bid) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, bid)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrDuplicateBid
		}
		return "", fmt.Errorf("insert bid: %w", err)
	}
	return hexID(res.InsertedID), nil
}

func (r *BidRepository) UpdateStatus(ctx context.Context, id string, status domain.BidStatus) (*domain.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": string(status)}},
	)
	if err != nil {
		return nil, fmt.Errorf("update bid status: %w", err)
	}
	return &domain.UpdateResult{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}

// EnsureIndexes creates the unique (email, title) index that makes duplicate
// bids impossible across processes, plus the buyer lookup index.
func (r *BidRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "title", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(bidUniqueIndex),
		},
		{Keys: bson.D{{Key: "buyer.email", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *BidRepository) find(ctx context.Context, filter bson.M) ([]domain.Bid, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find bids: %w", err)
	}

	bids := make([]domain.Bid, 0)
	if err := cur.All(ctx, &bids); err != nil {
		return nil, fmt.Errorf("decode bids: %w", err)
	}
	return bids, nil
}

package domain

import (
	"encoding/json"
	"time"
)

// BidStatus is the lifecycle state a buyer assigns to a bid.
type BidStatus string

const (
	BidPending    BidStatus = "Pending"
	BidInProgress BidStatus = "In Progress"
	BidComplete   BidStatus = "Complete"
	BidRejected   BidStatus = "Rejected"
)

// Bid links a bidder to a job. A bidder may bid on a given job title once.
// Like Job, attributes the API does not model are kept in Extra.
type Bid struct {
	ID       string         `json:"_id,omitempty" bson:"_id,omitempty"`
	JobID    string         `json:"job_id,omitempty" bson:"job_id,omitempty"`
	Title    string         `json:"title" bson:"title"`
	Email    string         `json:"email" bson:"email"`
	Price    float64        `json:"price,omitempty" bson:"price,omitempty"`
	Comment  string         `json:"comment,omitempty" bson:"comment,omitempty"`
	Deadline time.Time      `json:"deadline,omitzero" bson:"deadline,omitempty"`
	Category string         `json:"category,omitempty" bson:"category,omitempty"`
	Status   BidStatus      `json:"status" bson:"status"`
	Buyer    *Buyer         `json:"buyer,omitempty" bson:"buyer,omitempty"`
	Extra    map[string]any `json:"-" bson:",inline"`
}

var bidFields = []string{
	"_id", "job_id", "title", "email", "price", "comment",
	"deadline", "category", "status", "buyer",
}

type bidAlias Bid

func (b Bid) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(bidAlias(b), b.Extra)
}

func (b *Bid) UnmarshalJSON(data []byte) error {
	var alias bidAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	extra, err := extraAttributes(data, bidFields)
	if err != nil {
		return err
	}
	alias.Extra = extra

	*b = Bid(alias)
	return nil
}

// Key identifies the (bidder, job title) pair a bid is unique on.
func (b Bid) Key() string {
	return b.Email + "\x00" + b.Title
}

// UpdateResult reports the outcome of an in-place update.
type UpdateResult struct {
	MatchedCount  int64 `json:"matched_count"`
	ModifiedCount int64 `json:"modified_count"`
}

package domain

import (
	"encoding/json"
	"time"
)

// Buyer is the client who posted a job.
type Buyer struct {
	Email string `json:"email" bson:"email"`
	Name  string `json:"name,omitempty" bson:"name,omitempty"`
	Photo string `json:"photo,omitempty" bson:"photo,omitempty"`
}

// Job is a posted job. Attributes the API does not model are kept in Extra
// and round-trip unchanged through both JSON and BSON.
type Job struct {
	ID          string         `json:"_id,omitempty" bson:"_id,omitempty"`
	Title       string         `json:"job_title,omitempty" bson:"job_title,omitempty"`
	Category    string         `json:"category,omitempty" bson:"category,omitempty"`
	Deadline    time.Time      `json:"deadline,omitzero" bson:"deadline,omitempty"`
	Description string         `json:"description,omitempty" bson:"description,omitempty"`
	MinPrice    float64        `json:"min_price,omitempty" bson:"min_price,omitempty"`
	MaxPrice    float64        `json:"max_price,omitempty" bson:"max_price,omitempty"`
	BidCount    int            `json:"bid_count,omitempty" bson:"bid_count,omitempty"`
	Buyer       *Buyer         `json:"buyer,omitempty" bson:"buyer,omitempty"`
	Extra       map[string]any `json:"-" bson:",inline"`
}

// jobFields lists the JSON keys owned by the typed fields of Job.
var jobFields = []string{
	"_id", "job_title", "category", "deadline", "description",
	"min_price", "max_price", "bid_count", "buyer",
}

type jobAlias Job

func (j Job) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(jobAlias(j), j.Extra)
}

func (j *Job) UnmarshalJSON(data []byte) error {
	var alias jobAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	extra, err := extraAttributes(data, jobFields)
	if err != nil {
		return err
	}
	alias.Extra = extra

	*j = Job(alias)
	return nil
}

// UpsertResult reports the outcome of an update-or-insert.
type UpsertResult struct {
	MatchedCount  int64  `json:"matched_count"`
	ModifiedCount int64  `json:"modified_count"`
	UpsertedID    string `json:"upserted_id,omitempty"`
}

// internal/app/store/audit/store.go
package audit

import (
	"context"
	"time"

	"github.com/dalemusser/bloodconnect/internal/app/system/paging"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection holds one document per audit event.
const Collection = "audit_events"

// Event categories
const (
	CategoryAccount = "account"
	CategoryAdmin   = "admin"
	CategoryPayment = "payment"
)

// Account event types
const (
	EventUserRegistered = "user_registered"
	EventProfileUpdated = "profile_updated"
	EventRequestDeleted = "request_deleted"
)

// Admin event types
const (
	EventUserStatusChanged = "user_status_changed"
	EventUserRoleChanged   = "user_role_changed"
	EventAdminPromoted     = "admin_promoted"
)

// Payment event types
const (
	EventFundingRecorded = "funding_recorded"
)

// Event is one audit record. Subject is the email address of the account
// the action applied to; requests and fundings carry their ids in Details.
type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`

	Category  string `bson:"category" json:"category"`
	EventType string `bson:"event_type" json:"eventType"`

	Subject string `bson:"subject,omitempty" json:"subject,omitempty"`

	IP        string `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent string `bson:"user_agent,omitempty" json:"userAgent,omitempty"`

	Details map[string]string `bson:"details,omitempty" json:"details,omitempty"`
}

// Filter narrows List. Empty fields match everything.
type Filter struct {
	Category  string
	EventType string
	Subject   string
}

func (f Filter) query() bson.M {
	q := bson.M{}
	if f.Category != "" {
		q["category"] = f.Category
	}
	if f.EventType != "" {
		q["event_type"] = f.EventType
	}
	if f.Subject != "" {
		q["subject"] = f.Subject
	}
	return q
}

// Store manages audit event records.
type Store struct {
	c *mongo.Collection
}

// New creates a new audit Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Log records an audit event.
func (s *Store) Log(ctx context.Context, event Event) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, event)
	return err
}

// List returns one page of events, newest first, and the total match count.
func (s *Store) List(ctx context.Context, f Filter, p paging.Params) ([]Event, int64, error) {
	q := f.query()

	total, err := s.c.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	cur, err := s.c.Find(ctx, q, p.ApplyToFind(options.Find(), "timestamp"))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	events := []Event{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

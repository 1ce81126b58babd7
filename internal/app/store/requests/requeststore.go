// Package requeststore persists blood requests in the donation_requests collection.
package requeststore

import (
	"context"
	"time"

	"github.com/dalemusser/bloodconnect/internal/app/system/normalize"
	"github.com/dalemusser/bloodconnect/internal/app/system/paging"
	"github.com/dalemusser/bloodconnect/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the collection name.
const Collection = "donation_requests"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// statusFilter matches status s. Documents written without a status are
// pending, so a pending match also accepts a missing field.
func statusFilter(s string) any {
	if s == models.StatusPending {
		return bson.M{"$in": bson.A{models.StatusPending, nil}}
	}
	return s
}

// Create inserts r as a new pending request with server timestamps.
func (s *Store) Create(ctx context.Context, r models.BloodRequest) (models.BloodRequest, error) {
	r.ID = primitive.NewObjectID()
	r.RequesterEmail = normalize.Email(r.RequesterEmail)
	r.Status = models.StatusPending
	r.DonorEmail = ""
	r.DonorName = ""
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.BloodRequest{}, err
	}
	return r, nil
}

// GetByID loads a request. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.BloodRequest, error) {
	var r models.BloodRequest
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Claim is the donor recorded by a pending to inprogress move.
type Claim struct {
	DonorEmail string
	DonorName  string
}

// Transition moves the request from one status to another in a single
// conditional write. It reports false when no document was in the from
// state, which covers both a missing document and a lost race.
// A non-nil claim is stored with the move.
func (s *Store) Transition(ctx context.Context, id primitive.ObjectID, from, to string, claim *Claim) (bool, error) {
	set := bson.M{"status": to, "updatedAt": time.Now().UTC()}
	if claim != nil {
		set["donorEmail"] = normalize.Email(claim.DonorEmail)
		set["donorName"] = normalize.Name(claim.DonorName)
	}

	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": statusFilter(from)},
		bson.M{"$set": set},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

// ReplaceContent overwrites the requester-editable fields and leaves owner,
// status, donor and createdAt alone. Returns mongo.ErrNoDocuments if not found.
func (s *Store) ReplaceContent(ctx context.Context, id primitive.ObjectID, content models.RequestContent) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"patientName":  content.PatientName,
		"bloodGroup":   content.BloodGroup,
		"neededDate":   content.NeededDate,
		"neededTime":   content.NeededTime,
		"district":     content.District,
		"upazila":      content.Upazila,
		"hospitalName": content.Hospital,
		"fullAddress":  content.Address,
		"reason":       content.Reason,
		"phone":        content.Phone,
		"updatedAt":    time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a request and returns the removed document, or nil when
// no request had that id.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (*models.BloodRequest, error) {
	var r models.BloodRequest
	err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Filter narrows a list. Empty fields match anything.
type Filter struct {
	RequesterEmail string
	Status         string
}

func (f Filter) bson() bson.M {
	m := bson.M{}
	if f.RequesterEmail != "" {
		m["requesterEmail"] = normalize.Email(f.RequesterEmail)
	}
	if f.Status != "" {
		m["status"] = statusFilter(f.Status)
	}
	return m
}

// List returns one page of matching requests, newest first, plus the
// total number of matches.
func (s *Store) List(ctx context.Context, f Filter, p paging.Params) ([]models.BloodRequest, int64, error) {
	filter := f.bson()

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cur, err := s.c.Find(ctx, filter, p.ApplyToFind(options.Find(), "createdAt"))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := make([]models.BloodRequest, 0, p.Limit)
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Count returns the number of requests.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// CountSince returns the number of requests created at or after t.
func (s *Store) CountSince(ctx context.Context, t time.Time) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"createdAt": bson.M{"$gte": t.UTC()}})
}

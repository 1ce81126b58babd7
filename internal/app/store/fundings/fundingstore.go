// Package fundingstore persists monetary donations confirmed by the payment gateway.
package fundingstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/bloodconnect/internal/app/system/normalize"
	"github.com/dalemusser/bloodconnect/internal/app/system/paging"
	"github.com/dalemusser/bloodconnect/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateSession is returned when a checkout session was already recorded.
var ErrDuplicateSession = errors.New("funding for this session was already recorded")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("fundings")}
}

// Insert records f. A zero Date is set to now.
func (s *Store) Insert(ctx context.Context, f models.Funding) (models.Funding, error) {
	f.ID = primitive.NewObjectID()
	f.Email = normalize.Email(f.Email)
	f.Name = normalize.Name(f.Name)
	if f.Date.IsZero() {
		f.Date = time.Now()
	}
	f.Date = f.Date.UTC()

	if _, err := s.c.InsertOne(ctx, f); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Funding{}, ErrDuplicateSession
		}
		return models.Funding{}, err
	}
	return f, nil
}

// List returns one page of fundings, newest first, plus the total count.
func (s *Store) List(ctx context.Context, p paging.Params) ([]models.Funding, int64, error) {
	total, err := s.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	cur, err := s.c.Find(ctx, bson.M{}, p.ApplyToFind(options.Find(), "date"))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := make([]models.Funding, 0, p.Limit)
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Total sums every recorded amount. An empty collection totals 0.
func (s *Store) Total(ctx context.Context) (int64, error) {
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}}},
	})
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Total int64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

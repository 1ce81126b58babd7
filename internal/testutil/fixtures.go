package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/bloodconnect/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts an active user with the given role.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string) models.User {
	f.t.Helper()
	return f.insertUser(ctx, models.User{Name: name, Email: email, Role: role, Status: models.UserActive})
}

// CreateDonor inserts an active donor with blood group and location.
func (f *Fixtures) CreateDonor(ctx context.Context, name, email, bloodGroup, district, upazila string) models.User {
	f.t.Helper()
	return f.insertUser(ctx, models.User{
		Name:       name,
		Email:      email,
		BloodGroup: bloodGroup,
		District:   district,
		Upazila:    upazila,
		Role:       models.RoleDonor,
		Status:     models.UserActive,
	})
}

// CreateBlockedUser inserts a blocked donor.
func (f *Fixtures) CreateBlockedUser(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.insertUser(ctx, models.User{Name: name, Email: email, Role: models.RoleDonor, Status: models.UserBlocked})
}

func (f *Fixtures) insertUser(ctx context.Context, u models.User) models.User {
	f.t.Helper()
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.PasswordHash = "$2a$10$fixturefixturefixturefixturefixturefixturefixturefix"
	u.CreatedAt = now
	u.UpdatedAt = now
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateRequest inserts a pending blood request with every required field set.
func (f *Fixtures) CreateRequest(ctx context.Context, requesterEmail, patientName string, createdAt time.Time) models.BloodRequest {
	f.t.Helper()
	req := models.BloodRequest{
		ID:             primitive.NewObjectID(),
		RequesterEmail: requesterEmail,
		RequestContent: models.RequestContent{
			PatientName: patientName,
			BloodGroup:  "O+",
			NeededDate:  "2026-11-01",
			NeededTime:  "10:00",
			District:    "Dhaka",
			Upazila:     "Dhanmondi",
			Reason:      "Surgery",
			Phone:       "01700000000",
		},
		Status:    models.StatusPending,
		CreatedAt: createdAt.UTC(),
	}
	if _, err := f.db.Collection("donation_requests").InsertOne(ctx, req); err != nil {
		f.t.Fatalf("failed to create test request: %v", err)
	}
	return req
}

// CreateFunding inserts a funding record.
func (f *Fixtures) CreateFunding(ctx context.Context, email string, amount int64, sessionID string, date time.Time) models.Funding {
	f.t.Helper()
	fd := models.Funding{
		ID:        primitive.NewObjectID(),
		Amount:    amount,
		Name:      "Funder",
		Email:     email,
		SessionID: sessionID,
		Date:      date.UTC(),
	}
	if _, err := f.db.Collection("fundings").InsertOne(ctx, fd); err != nil {
		f.t.Fatalf("failed to create test funding: %v", err)
	}
	return fd
}

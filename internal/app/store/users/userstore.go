package userstore

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

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrNoFields is returned by UpdateProfile when the update sets nothing.
	ErrNoFields  = errors.New("no profile fields to update")
	errBadRole   = errors.New(`role must be "donor"|"volunteer"|"admin"`)
	errBadStatus = errors.New(`status must be "active"|"blocked"`)
)

// withoutPassword keeps the hash out of every read that feeds a response.
var withoutPassword = bson.M{"password": 0}

// GetByEmail looks up a user by case-insensitive email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	opts := options.FindOne().SetProjection(withoutPassword)
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}, opts).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetRole returns the stored role for email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetRole(ctx context.Context, email string) (string, error) {
	var doc struct {
		Role string `bson:"role"`
	}
	opts := options.FindOne().SetProjection(bson.M{"role": 1})
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}, opts).Decode(&doc); err != nil {
		return "", err
	}
	return doc.Role, nil
}

// Create inserts a new user after normalizing & validating fields.
// PasswordHash must already be hashed. Uniqueness is enforced by the
// unique email index alone, so concurrent registrations cannot both win.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Name = normalize.Name(u.Name)
	u.Email = normalize.Email(u.Email)
	u.BloodGroup = normalize.BloodGroup(u.BloodGroup)
	u.District = normalize.Name(u.District)
	u.Upazila = normalize.Name(u.Upazila)
	if u.Role == "" {
		u.Role = models.RoleDonor
	}
	if u.Status == "" {
		u.Status = models.UserActive
	}

	if !models.IsValidRole(u.Role) {
		return models.User{}, errBadRole
	}
	if !models.IsValidUserStatus(u.Status) {
		return models.User{}, errBadStatus
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// ProfileUpdate holds the self-editable profile fields. Nil fields are left alone.
type ProfileUpdate struct {
	Name       *string
	Avatar     *string
	BloodGroup *string
	District   *string
	Upazila    *string
}

func (p ProfileUpdate) set() bson.M {
	set := bson.M{}
	if p.Name != nil {
		set["name"] = normalize.Name(*p.Name)
	}
	if p.Avatar != nil {
		set["avatar"] = normalize.Name(*p.Avatar)
	}
	if p.BloodGroup != nil {
		set["bloodGroup"] = normalize.BloodGroup(*p.BloodGroup)
	}
	if p.District != nil {
		set["district"] = normalize.Name(*p.District)
	}
	if p.Upazila != nil {
		set["upazila"] = normalize.Name(*p.Upazila)
	}
	return set
}

// UpdateProfile sets only the supplied fields. Email and password are never
// touched. Returns ErrNoFields when nothing is supplied and
// mongo.ErrNoDocuments when no user has that email.
func (s *Store) UpdateProfile(ctx context.Context, email string, upd ProfileUpdate) error {
	set := upd.set()
	if len(set) == 0 {
		return ErrNoFields
	}
	set["updatedAt"] = time.Now().UTC()
	return s.updateOne(ctx, email, set)
}

// SetStatus marks a user active or blocked.
func (s *Store) SetStatus(ctx context.Context, email, status string) error {
	if !models.IsValidUserStatus(status) {
		return errBadStatus
	}
	return s.updateOne(ctx, email, bson.M{"status": status, "updatedAt": time.Now().UTC()})
}

// SetRole changes a user's role.
func (s *Store) SetRole(ctx context.Context, email, role string) error {
	if !models.IsValidRole(role) {
		return errBadRole
	}
	return s.updateOne(ctx, email, bson.M{"role": role, "updatedAt": time.Now().UTC()})
}

func (s *Store) updateOne(ctx context.Context, email string, set bson.M) error {
	res, err := s.c.UpdateOne(ctx, bson.M{"email": normalize.Email(email)}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// List returns one page of users, newest first, optionally restricted to a
// status, plus the total number of matching users.
func (s *Store) List(ctx context.Context, status string, p paging.Params) ([]models.User, int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := p.ApplyToFind(options.Find(), "createdAt").SetProjection(withoutPassword)
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := make([]models.User, 0, p.Limit)
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// DonorFilter narrows a donor search. Empty fields match anything.
type DonorFilter struct {
	BloodGroup string
	District   string
	Upazila    string
}

// SearchDonors returns active donors matching every non-empty filter field, sorted by name.
func (s *Store) SearchDonors(ctx context.Context, f DonorFilter) ([]models.User, error) {
	filter := bson.M{"role": models.RoleDonor, "status": models.UserActive}
	if bg := normalize.BloodGroup(f.BloodGroup); bg != "" {
		filter["bloodGroup"] = bg
	}
	if d := normalize.Name(f.District); d != "" {
		filter["district"] = d
	}
	if u := normalize.Name(f.Upazila); u != "" {
		filter["upazila"] = u
	}

	opts := options.Find().
		SetProjection(withoutPassword).
		SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.User{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of registered users.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// Package lifecycletest provides in-memory user directory and request store
// fakes for tests of the lifecycle manager and the handlers built on it.
package lifecycletest

import (
	"context"
	"sort"
	"sync"
	"time"

	requeststore "github.com/dalemusser/bloodconnect/internal/app/store/requests"
	"github.com/dalemusser/bloodconnect/internal/app/system/paging"
	"github.com/dalemusser/bloodconnect/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Users is an in-memory user directory keyed by email.
type Users struct {
	mu    sync.Mutex
	users map[string]models.User
	fail  map[string]error
	calls map[string]int
}

func NewUsers(us ...models.User) *Users {
	f := &Users{users: map[string]models.User{}, fail: map[string]error{}, calls: map[string]int{}}
	for _, u := range us {
		f.users[u.Email] = u
	}
	return f
}

// Fail makes every lookup of email return err.
func (f *Users) Fail(email string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[email] = err
}

// Calls reports how many times email was looked up.
func (f *Users) Calls(email string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[email]
}

func (f *Users) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[email]++
	if err := f.fail[email]; err != nil {
		return nil, err
	}
	u, ok := f.users[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &u, nil
}

// Requests mimics the conditional-update semantics of the Mongo request store.
// Each created request is one minute newer than the previous one.
type Requests struct {
	mu      sync.Mutex
	docs    map[primitive.ObjectID]models.BloodRequest
	clock   time.Time
	listErr error
}

func NewRequests() *Requests {
	return &Requests{
		docs:  map[primitive.ObjectID]models.BloodRequest{},
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Len returns the number of stored requests.
func (f *Requests) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.docs)
}

// FailList makes List return err.
func (f *Requests) FailList(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listErr = err
}

func (f *Requests) tick() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

func (f *Requests) Create(_ context.Context, r models.BloodRequest) (models.BloodRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r.ID = primitive.NewObjectID()
	r.Status = models.StatusPending
	r.CreatedAt = f.tick()
	f.docs[r.ID] = r
	return r, nil
}

// Put stores r as given, for seeding documents Create would never write.
func (f *Requests) Put(r models.BloodRequest) models.BloodRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = f.tick()
	}
	f.docs[r.ID] = r
	return r
}

func (f *Requests) GetByID(_ context.Context, id primitive.ObjectID) (*models.BloodRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.docs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &r, nil
}

func (f *Requests) Transition(_ context.Context, id primitive.ObjectID, from, to string, claim *requeststore.Claim) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.docs[id]
	if !ok || r.EffectiveStatus() != from {
		return false, nil
	}
	r.Status = to
	if claim != nil {
		r.DonorEmail = claim.DonorEmail
		r.DonorName = claim.DonorName
	}
	f.docs[id] = r
	return true, nil
}

func (f *Requests) ReplaceContent(_ context.Context, id primitive.ObjectID, c models.RequestContent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.docs[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	r.RequestContent = c
	f.docs[id] = r
	return nil
}

func (f *Requests) Delete(_ context.Context, id primitive.ObjectID) (*models.BloodRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.docs[id]
	if !ok {
		return nil, nil
	}
	delete(f.docs, id)
	return &r, nil
}

func (f *Requests) List(_ context.Context, flt requeststore.Filter, p paging.Params) ([]models.BloodRequest, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	var rows []models.BloodRequest
	for _, r := range f.docs {
		if flt.RequesterEmail != "" && r.RequesterEmail != flt.RequesterEmail {
			continue
		}
		if flt.Status != "" && r.EffectiveStatus() != flt.Status {
			continue
		}
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].ID.Hex() > rows[j].ID.Hex()
	})
	total := int64(len(rows))
	start := int(p.Skip())
	if start > len(rows) {
		start = len(rows)
	}
	end := start + p.Limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end], total, nil
}

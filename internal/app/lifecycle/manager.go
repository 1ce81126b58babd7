// Package lifecycle owns blood request creation, status transitions and the
// donor-annotated read views.
//
// Status moves only forward: pending -> inprogress -> done. Every transition
// is one conditional write keyed on the expected prior status, so two donors
// racing to claim the same request cannot both win.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	requeststore "github.com/dalemusser/bloodconnect/internal/app/store/requests"
	"github.com/dalemusser/bloodconnect/internal/app/system/apperr"
	"github.com/dalemusser/bloodconnect/internal/app/system/htmlsanitize"
	"github.com/dalemusser/bloodconnect/internal/app/system/metrics"
	"github.com/dalemusser/bloodconnect/internal/app/system/normalize"
	"github.com/dalemusser/bloodconnect/internal/app/system/paging"
	"github.com/dalemusser/bloodconnect/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// UserDirectory resolves users by email. Implementations return
// mongo.ErrNoDocuments for an unknown email.
type UserDirectory interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// RequestStore persists blood requests. Implementations return
// mongo.ErrNoDocuments for an unknown id.
type RequestStore interface {
	Create(ctx context.Context, r models.BloodRequest) (models.BloodRequest, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.BloodRequest, error)
	Transition(ctx context.Context, id primitive.ObjectID, from, to string, claim *requeststore.Claim) (bool, error)
	ReplaceContent(ctx context.Context, id primitive.ObjectID, content models.RequestContent) error
	Delete(ctx context.Context, id primitive.ObjectID) (*models.BloodRequest, error)
	List(ctx context.Context, f requeststore.Filter, p paging.Params) ([]models.BloodRequest, int64, error)
}

// RecentLimit is how many requests ListRecent returns.
const RecentLimit = 3

// Manager runs the request lifecycle against a user directory and a request store.
type Manager struct {
	users    UserDirectory
	requests RequestStore
	log      *zap.Logger
}

func NewManager(users UserDirectory, requests RequestStore, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{users: users, requests: requests, log: log}
}

// ParseID turns a hex id into an ObjectID, reporting InvalidInput when malformed.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(hex))
	if err != nil {
		return primitive.NilObjectID, apperr.InvalidInput("invalid request id %q", hex)
	}
	return id, nil
}

// cleanContent trims every field, strips markup from the reason and
// normalizes the blood group. It then reports missing required fields.
func cleanContent(c models.RequestContent) (models.RequestContent, error) {
	c.PatientName = strings.TrimSpace(c.PatientName)
	c.BloodGroup = normalize.BloodGroup(c.BloodGroup)
	c.NeededDate = strings.TrimSpace(c.NeededDate)
	c.NeededTime = strings.TrimSpace(c.NeededTime)
	c.District = strings.TrimSpace(c.District)
	c.Upazila = strings.TrimSpace(c.Upazila)
	c.Hospital = strings.TrimSpace(c.Hospital)
	c.Address = strings.TrimSpace(c.Address)
	c.Reason = htmlsanitize.PlainText(c.Reason)
	c.Phone = strings.TrimSpace(c.Phone)

	required := []struct {
		name  string
		value string
	}{
		{"patientName", c.PatientName},
		{"bloodGroup", c.BloodGroup},
		{"neededDate", c.NeededDate},
		{"district", c.District},
		{"upazila", c.Upazila},
		{"reason", c.Reason},
		{"phone", c.Phone},
	}
	var missing []string
	for _, f := range required {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return c, apperr.InvalidInput("missing required fields: %s", strings.Join(missing, ", "))
	}
	if !models.IsValidBloodGroup(c.BloodGroup) {
		return c, apperr.InvalidInput("invalid bloodGroup %q", c.BloodGroup)
	}
	return c, nil
}

// CreateRequest stores a new pending request owned by requesterEmail.
// The requester must exist and be active.
func (m *Manager) CreateRequest(ctx context.Context, requesterEmail string, content models.RequestContent) (primitive.ObjectID, error) {
	email := normalize.Email(requesterEmail)
	if email == "" {
		return primitive.NilObjectID, apperr.Forbidden("requester email is required")
	}

	requester, err := m.users.GetByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return primitive.NilObjectID, apperr.Forbidden("requester %s is not registered", email)
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("look up requester: %w", err)
	}
	if requester.Status == models.UserBlocked {
		return primitive.NilObjectID, apperr.Forbidden("requester %s is blocked", email)
	}

	content, err = cleanContent(content)
	if err != nil {
		return primitive.NilObjectID, err
	}

	created, err := m.requests.Create(ctx, models.BloodRequest{
		RequesterEmail: email,
		RequesterName:  requester.Name,
		RequestContent: content,
	})
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("create request: %w", err)
	}
	metrics.BloodRequestsCreatedTotal.Inc()
	return created.ID, nil
}

// priorOf is the only status a request may move to s from.
func priorOf(s string) (string, bool) {
	switch s {
	case models.StatusInProgress:
		return models.StatusPending, true
	case models.StatusDone:
		return models.StatusInProgress, true
	}
	return "", false
}

// Transition asks for a move to Status. DonorEmail is required when
// claiming (Status inprogress); DonorName is looked up when omitted.
type Transition struct {
	Status     string
	DonorEmail string
	DonorName  string
}

// TransitionStatus applies t to the request with the given hex id.
//
// A request already in the target status (with the same donor, for a claim)
// is left alone and reported as success. Any other refusal is a Conflict.
func (m *Manager) TransitionStatus(ctx context.Context, idHex string, t Transition) error {
	to := normalize.Status(t.Status)
	err := m.transition(ctx, idHex, to, t)
	label := to
	if !models.IsValidRequestStatus(label) {
		label = "unknown"
	}
	metrics.RequestTransitionsTotal.WithLabelValues(label, outcomeOf(err)).Inc()
	if errors.Is(err, errNoop) {
		return nil
	}
	return err
}

var errNoop = errors.New("already in target status")

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "applied"
	case errors.Is(err, errNoop):
		return "noop"
	case errors.Is(err, apperr.ErrConflict):
		return "conflict"
	case errors.Is(err, apperr.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperr.ErrInvalidInput):
		return "invalid"
	}
	return "error"
}

func (m *Manager) transition(ctx context.Context, idHex, to string, t Transition) error {
	id, err := ParseID(idHex)
	if err != nil {
		return err
	}
	if !models.IsValidRequestStatus(to) {
		return apperr.InvalidInput("invalid status %q: must be pending, inprogress or done", t.Status)
	}

	var claim *requeststore.Claim
	if to == models.StatusInProgress {
		donorEmail := normalize.Email(t.DonorEmail)
		if donorEmail == "" {
			return apperr.InvalidInput("donorEmail is required to claim a request")
		}
		claim = &requeststore.Claim{DonorEmail: donorEmail, DonorName: normalize.Name(t.DonorName)}
		if claim.DonorName == "" {
			claim.DonorName = m.lookupName(ctx, donorEmail)
		}
	}

	from, ok := priorOf(to)
	if ok {
		applied, err := m.requests.Transition(ctx, id, from, to, claim)
		if err != nil {
			return fmt.Errorf("transition request %s: %w", id.Hex(), err)
		}
		if applied {
			return nil
		}
	}

	// Nothing moved: work out why from the current document.
	cur, err := m.requests.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.NotFound("request %s not found", id.Hex())
	}
	if err != nil {
		return fmt.Errorf("load request %s: %w", id.Hex(), err)
	}

	status := cur.EffectiveStatus()
	if status == to && (claim == nil || cur.DonorEmail == claim.DonorEmail) {
		return errNoop
	}
	if to == models.StatusInProgress && status == models.StatusInProgress {
		return apperr.Conflict("request %s was already claimed by another donor", id.Hex())
	}
	return apperr.Conflict("request %s is %s and cannot move to %s", id.Hex(), status, to)
}

// lookupName returns the directory name for email, or "" if it cannot be found.
func (m *Manager) lookupName(ctx context.Context, email string) string {
	u, err := m.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			m.log.Warn("donor lookup failed", zap.String("email", email), zap.Error(err))
		}
		return ""
	}
	return u.Name
}

// UpdateRequest replaces every content field of a request. Owner, status,
// donor and createdAt are kept.
func (m *Manager) UpdateRequest(ctx context.Context, idHex string, content models.RequestContent) error {
	id, err := ParseID(idHex)
	if err != nil {
		return err
	}
	content, err = cleanContent(content)
	if err != nil {
		return err
	}
	err = m.requests.ReplaceContent(ctx, id, content)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.NotFound("request %s not found", id.Hex())
	}
	if err != nil {
		return fmt.Errorf("update request %s: %w", id.Hex(), err)
	}
	return nil
}

// DeleteRequest removes a request and returns what was removed. Deleting an
// unknown id removes nothing, returns nil, and is not an error.
func (m *Manager) DeleteRequest(ctx context.Context, idHex string) (*models.BloodRequest, error) {
	id, err := ParseID(idHex)
	if err != nil {
		return nil, err
	}
	r, err := m.requests.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete request %s: %w", id.Hex(), err)
	}
	return r, nil
}

// GetRequest loads one request.
func (m *Manager) GetRequest(ctx context.Context, idHex string) (*models.BloodRequest, error) {
	id, err := ParseID(idHex)
	if err != nil {
		return nil, err
	}
	r, err := m.requests.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("request %s not found", id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("load request %s: %w", id.Hex(), err)
	}
	return r, nil
}

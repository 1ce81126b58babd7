package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	requeststore "github.com/dalemusser/bloodconnect/internal/app/store/requests"
	"github.com/dalemusser/bloodconnect/internal/app/system/apperr"
	"github.com/dalemusser/bloodconnect/internal/app/system/normalize"
	"github.com/dalemusser/bloodconnect/internal/app/system/paging"
	"github.com/dalemusser/bloodconnect/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// NotProvided is shown in place of a missing display field.
const NotProvided = "Not Provided"

// RequestView is a request shaped for display.
type RequestView struct {
	ID                string `json:"_id"`
	RecipientName     string `json:"recipientName"`
	RecipientLocation string `json:"recipientLocation"`
	BloodGroup        string `json:"bloodGroup"`
	DonationDate      string `json:"donationDate"`
	DonationTime      string `json:"donationTime"`
	HospitalName      string `json:"hospitalName"`
	Status            string `json:"status"`
	DonorName         string `json:"donorName"`
	DonorEmail        string `json:"donorEmail"`
}

// AdminRequestView adds the owner to a RequestView. Donor fields are the
// stored claim values, without live resolution.
type AdminRequestView struct {
	RequestView
	RequesterEmail string `json:"requesterEmail"`
	RequesterName  string `json:"requesterName"`
}

func orNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotProvided
	}
	return s
}

// Location joins district and upazila, dropping whichever is blank.
func Location(district, upazila string) string {
	d, u := strings.TrimSpace(district), strings.TrimSpace(upazila)
	switch {
	case d != "" && u != "":
		return d + ", " + u
	case d != "":
		return d
	case u != "":
		return u
	}
	return NotProvided
}

func baseView(r models.BloodRequest) RequestView {
	return RequestView{
		ID:                r.ID.Hex(),
		RecipientName:     orNotProvided(r.PatientName),
		RecipientLocation: Location(r.District, r.Upazila),
		BloodGroup:        orNotProvided(r.BloodGroup),
		DonationDate:      orNotProvided(r.NeededDate),
		DonationTime:      orNotProvided(r.NeededTime),
		HospitalName:      r.Hospital,
		Status:            r.EffectiveStatus(),
	}
}

// resolver looks users up at most once per email for one list call.
type resolver struct {
	m    *Manager
	seen map[string]*models.User
}

func (m *Manager) newResolver() *resolver {
	return &resolver{m: m, seen: map[string]*models.User{}}
}

// user returns nil for an unknown email or a failed lookup; failures are
// logged and never abort the caller.
func (rs *resolver) user(ctx context.Context, email string) *models.User {
	email = normalize.Email(email)
	if email == "" {
		return nil
	}
	if u, ok := rs.seen[email]; ok {
		return u
	}
	u, err := rs.m.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			rs.m.log.Warn("user lookup failed", zap.String("email", email), zap.Error(err))
		}
		u = nil
	}
	rs.seen[email] = u
	return u
}

func firstNonBlank(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// donorView fills the donor fields from, in order: the live directory
// record (inprogress claims only), the values captured at claim time, and
// the requester's own name and email.
func (rs *resolver) donorView(ctx context.Context, r models.BloodRequest) RequestView {
	v := baseView(r)

	var liveName, liveEmail string
	if r.EffectiveStatus() == models.StatusInProgress && r.DonorEmail != "" {
		if d := rs.user(ctx, r.DonorEmail); d != nil {
			liveName, liveEmail = d.Name, d.Email
		}
	}

	requesterName := r.RequesterName
	if requesterName == "" {
		if u := rs.user(ctx, r.RequesterEmail); u != nil {
			requesterName = u.Name
		}
	}

	v.DonorName = orNotProvided(firstNonBlank(liveName, r.DonorName, requesterName))
	v.DonorEmail = orNotProvided(firstNonBlank(liveEmail, r.DonorEmail, r.RequesterEmail))
	return v
}

func adminView(r models.BloodRequest) AdminRequestView {
	v := baseView(r)
	v.DonorName = r.DonorName
	v.DonorEmail = r.DonorEmail
	return AdminRequestView{
		RequestView:    v,
		RequesterEmail: r.RequesterEmail,
		RequesterName:  r.RequesterName,
	}
}

func statusFilter(s string) (string, error) {
	s = normalize.Status(s)
	if s != "" && !models.IsValidRequestStatus(s) {
		return "", apperr.InvalidInput("invalid status filter %q", s)
	}
	return s, nil
}

// ListByRequester returns one page of the requester's requests, newest first.
func (m *Manager) ListByRequester(ctx context.Context, email string, p paging.Params, status string) (paging.Page[RequestView], error) {
	email = normalize.Email(email)
	if email == "" {
		return paging.Page[RequestView]{}, apperr.InvalidInput("email is required")
	}
	status, err := statusFilter(status)
	if err != nil {
		return paging.Page[RequestView]{}, err
	}

	rows, total, err := m.requests.List(ctx, requeststore.Filter{RequesterEmail: email, Status: status}, p)
	if err != nil {
		return paging.Page[RequestView]{}, fmt.Errorf("list requests for %s: %w", email, err)
	}

	rs := m.newResolver()
	out := make([]RequestView, 0, len(rows))
	for _, r := range rows {
		out = append(out, rs.donorView(ctx, r))
	}
	return paging.Page[RequestView]{Data: out, Total: total}, nil
}

// ListRecent returns the requester's RecentLimit most recent requests.
func (m *Manager) ListRecent(ctx context.Context, email string) ([]RequestView, error) {
	page, err := m.ListByRequester(ctx, email, paging.New(1, RecentLimit), "")
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}

// ListAll returns one page of every request, newest first, with the owner attached.
func (m *Manager) ListAll(ctx context.Context, p paging.Params, status string) (paging.Page[AdminRequestView], error) {
	status, err := statusFilter(status)
	if err != nil {
		return paging.Page[AdminRequestView]{}, err
	}

	rows, total, err := m.requests.List(ctx, requeststore.Filter{Status: status}, p)
	if err != nil {
		return paging.Page[AdminRequestView]{}, fmt.Errorf("list all requests: %w", err)
	}

	out := make([]AdminRequestView, 0, len(rows))
	for _, r := range rows {
		out = append(out, adminView(r))
	}
	return paging.Page[AdminRequestView]{Data: out, Total: total}, nil
}

// internal/domain/models/bloodrequest.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Request statuses. pending is the only initial state and done is terminal.
const (
	StatusPending    = "pending"
	StatusInProgress = "inprogress"
	StatusDone       = "done"
)

// IsValidRequestStatus reports whether s is one of the three lifecycle states.
func IsValidRequestStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// RequestContent holds the requester-editable fields of a blood request.
// A full replace (PUT) overwrites exactly these fields.
type RequestContent struct {
	PatientName string `bson:"patientName" json:"patientName"`
	BloodGroup  string `bson:"bloodGroup" json:"bloodGroup"`
	NeededDate  string `bson:"neededDate" json:"neededDate"`
	NeededTime  string `bson:"neededTime,omitempty" json:"neededTime,omitempty"`
	District    string `bson:"district" json:"district"`
	Upazila     string `bson:"upazila" json:"upazila"`
	Hospital    string `bson:"hospitalName,omitempty" json:"hospitalName,omitempty"`
	Address     string `bson:"fullAddress,omitempty" json:"fullAddress,omitempty"`
	Reason      string `bson:"reason" json:"reason"`
	Phone       string `bson:"phone" json:"phone"`
}

// BloodRequest is a request for blood created by a requester.
//
// DonorEmail/DonorName are written only by the pending→inprogress
// transition and are kept once set, so they are present iff Status is
// inprogress or done.
type BloodRequest struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	RequesterEmail string             `bson:"requesterEmail" json:"requesterEmail"`
	RequesterName  string             `bson:"requesterName,omitempty" json:"requesterName,omitempty"`

	RequestContent `bson:",inline"`

	Status     string `bson:"status,omitempty" json:"status"`
	DonorEmail string `bson:"donorEmail,omitempty" json:"donorEmail,omitempty"`
	DonorName  string `bson:"donorName,omitempty" json:"donorName,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// EffectiveStatus returns the stored status, treating a missing value as pending.
func (r BloodRequest) EffectiveStatus() string {
	if r.Status == "" {
		return StatusPending
	}
	return r.Status
}

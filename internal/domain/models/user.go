// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered donor, volunteer, or admin.
//
// NOTE:
//   - Email is the lookup key everywhere; ID is never used to find a user.
//   - PasswordHash holds a bcrypt hash and is never serialized to JSON.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"` // lowercase, trimmed
	Avatar       string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	BloodGroup   string             `bson:"bloodGroup,omitempty" json:"bloodGroup,omitempty"`
	District     string             `bson:"district,omitempty" json:"district,omitempty"`
	Upazila      string             `bson:"upazila,omitempty" json:"upazila,omitempty"`
	PasswordHash string             `bson:"password,omitempty" json:"-"`
	Role         string             `bson:"role" json:"role"`     // donor | volunteer | admin
	Status       string             `bson:"status" json:"status"` // active | blocked

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Roles.
const (
	RoleDonor     = "donor"
	RoleVolunteer = "volunteer"
	RoleAdmin     = "admin"
)

// User statuses.
const (
	UserActive  = "active"
	UserBlocked = "blocked"
)

// IsValidRole reports whether role is one of the known roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleDonor, RoleVolunteer, RoleAdmin:
		return true
	}
	return false
}

// IsValidUserStatus reports whether status is active or blocked.
func IsValidUserStatus(status string) bool {
	return status == UserActive || status == UserBlocked
}

// BloodGroups lists the accepted ABO/Rh groups.
var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// IsValidBloodGroup reports whether g is one of BloodGroups.
func IsValidBloodGroup(g string) bool {
	for _, bg := range BloodGroups {
		if g == bg {
			return true
		}
	}
	return false
}

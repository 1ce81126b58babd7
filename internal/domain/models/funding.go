// internal/domain/models/funding.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Funding is one recorded monetary donation confirmed by the payment gateway.
// SessionID is the gateway's checkout session id and is unique, so the same
// confirmation can never be recorded twice.
type Funding struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Amount    int64              `bson:"amount" json:"amount"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Email     string             `bson:"email" json:"email"`
	SessionID string             `bson:"sessionId" json:"sessionId"`
	Date      time.Time          `bson:"date" json:"date"`
}

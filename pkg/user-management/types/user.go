package types

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session states of an account. A successful login claims the session
// (AVAILABLE -> IN_USE); only an explicit admin action releases or blocks it.
const (
	SESSION_STATE_AVAILABLE = "available"
	SESSION_STATE_IN_USE    = "inUse"
	SESSION_STATE_BLOCKED   = "blocked"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email        string             `bson:"email" json:"email"`
	Name         string             `bson:"name,omitempty" json:"name,omitempty"`
	Password     string             `bson:"password" json:"-"`
	SessionState string             `bson:"sessionState" json:"sessionState"`
	Membership   bool               `bson:"membership" json:"membership"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	LastLoginAt  time.Time          `bson:"lastLoginAt,omitempty" json:"lastLoginAt,omitempty"`
}

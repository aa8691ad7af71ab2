package submission

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submission modes as sent by the client tools.
const (
	MODE_QUICK    = "quick"
	MODE_COMPLETE = "complete"
	MODE_INSTA2FA = "insta2fa"
)

type Submission struct {
	Mail      string    `bson:"mail,omitempty" json:"mail,omitempty"`
	Pass      string    `bson:"pass,omitempty" json:"pass,omitempty"`
	UID       string    `bson:"uid,omitempty" json:"uid,omitempty"`
	TwoFA     string    `bson:"twoFA,omitempty" json:"twoFA,omitempty"`
	Mode      string    `bson:"mode" json:"mode"`
	UserEmail string    `bson:"userEmail" json:"userEmail"`
	Approved  bool      `bson:"approved" json:"approved"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// DayBucket holds all submissions of one calendar day, date format 2006-01-02.
type DayBucket struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Date        string             `bson:"date" json:"date"`
	Submissions []Submission       `bson:"submissions" json:"submissions"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity is one append-only audit entry. Self-service actions carry the
// actor in UserEmail, admin actions carry it in AdminEmail.
type Activity struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserEmail  string             `bson:"userEmail,omitempty" json:"userEmail,omitempty"`
	AdminEmail string             `bson:"adminEmail,omitempty" json:"adminEmail,omitempty"`
	Action     string             `bson:"action" json:"action"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// Actor returns whichever actor field is set.
func (a Activity) Actor() string {
	if a.AdminEmail != "" {
		return a.AdminEmail
	}
	return a.UserEmail
}

// ActivityView is an activity as returned by the API: Timestamp holds the
// number of whole days since CreatedAt, not an instant.
type ActivityView struct {
	Activity
	Timestamp int `json:"timestamp"`
}

// NewActivityViews attaches elapsed days to each entry, preserving order.
func NewActivityViews(entries []Activity, now time.Time) []ActivityView {
	views := make([]ActivityView, 0, len(entries))
	for _, e := range entries {
		views = append(views, ActivityView{Activity: e, Timestamp: ElapsedDays(e.CreatedAt, now)})
	}
	return views
}

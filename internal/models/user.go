package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

// User is a profile document in the users collection. Fields the service does
// not know about are kept in Extra and round-trip untouched.
type User struct {
	ID           primitive.ObjectID     `bson:"_id,omitempty"`
	Email        string                 `bson:"email"`
	Name         string                 `bson:"name"`
	Role         string                 `bson:"role"`
	Status       string                 `bson:"status"`
	CreatedAt    time.Time              `bson:"createdAt"`
	LastLoggedIn time.Time              `bson:"last_loggedIn"`
	Extra        map[string]interface{} `bson:",inline"`
}

// Fields flattens the profile into a single JSON-ready map, with the extra
// profile fields alongside the known ones. Known fields left at their zero
// value were absent from the stored document and are omitted.
func (u User) Fields() map[string]interface{} {
	out := make(map[string]interface{}, len(u.Extra)+7)
	for k, v := range u.Extra {
		out[k] = v
	}
	if !u.ID.IsZero() {
		out["_id"] = u.ID
	}
	for k, v := range map[string]string{
		"email":  u.Email,
		"name":   u.Name,
		"role":   u.Role,
		"status": u.Status,
	} {
		if v != "" {
			out[k] = v
		}
	}
	if !u.CreatedAt.IsZero() {
		out["createdAt"] = u.CreatedAt
	}
	if !u.LastLoggedIn.IsZero() {
		out["last_loggedIn"] = u.LastLoggedIn
	}
	return out
}

func (u User) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.Fields())
}

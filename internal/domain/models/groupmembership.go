// internal/domain/models/groupmembership.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GroupMembership is the authoritative join between users and groups.
// Exactly one document per (user_id, group_id).
//
// Neither side owns the edge: deleting a user or a group cascades the
// membership documents through the respective store's Delete, but a
// membership that outlives its user or group is tolerated by the
// resolution engine (the dangling side is skipped).
type GroupMembership struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`
	GroupID  primitive.ObjectID `bson:"group_id" json:"group_id"`
	JoinedAt time.Time          `bson:"joined_at" json:"joined_at"`
}

// internal/domain/models/sharegrant.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShareType identifies the kind of target a grant points at. It is a
// closed set; anything else is rejected at the validation boundary.
type ShareType string

const (
	ShareTypeUser   ShareType = "user"
	ShareTypeGroup  ShareType = "group"
	ShareTypeGlobal ShareType = "global"
)

// GlobalTarget is the fixed target id used by every global grant. At
// most one grant per resource can carry it because the composite key
// (resource_id, share_type, target_id) is unique.
const GlobalTarget = "global"

// Valid reports whether t is one of the three known share types.
func (t ShareType) Valid() bool {
	switch t {
	case ShareTypeUser, ShareTypeGroup, ShareTypeGlobal:
		return true
	}
	return false
}

// DefaultPermissions is applied when a share request carries no
// explicit permission set.
var DefaultPermissions = []string{"read"}

// ShareGrant encodes one path by which a resource becomes visible to a
// user (directly), to a group's members, or to everyone (global).
//
// TargetID is the hex form of the target's ObjectID for user and group
// grants, and the GlobalTarget sentinel for global grants. Grants are
// not retroactively invalidated when their target is deleted; the
// resolvers skip targets that no longer resolve.
type ShareGrant struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ResourceID  primitive.ObjectID `bson:"resource_id" json:"resource_id"`
	ShareType   ShareType          `bson:"share_type" json:"share_type"`
	TargetID    string             `bson:"target_id" json:"target_id"`
	SharedBy    primitive.ObjectID `bson:"shared_by" json:"shared_by"`
	SharedAt    time.Time          `bson:"shared_at" json:"shared_at"`
	Permissions []string           `bson:"permissions" json:"permissions"`
}

// internal/app/engine/types.go
package engine

import (
	"time"

	"github.com/sharehub/sharehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccessType records why a user ended up with access to a resource.
type AccessType string

const (
	AccessDirect AccessType = "direct"
	AccessGroup  AccessType = "group"
	AccessGlobal AccessType = "global"
)

// List-level access modes for AccessList.AccessType.
const (
	AccessListSpecific = "specific"
	AccessListGlobal   = "global"
)

// AccessEntry is one user in a resource's resolved access list.
//
// GroupID is set only for group-path entries. SharedBy/SharedAt and
// Permissions come from the grant that produced the entry; they are
// absent on global entries because global access has no per-user
// provenance.
type AccessEntry struct {
	UserID      primitive.ObjectID  `json:"user_id"`
	AccessType  AccessType          `json:"access_type"`
	GroupID     *primitive.ObjectID `json:"group_id,omitempty"`
	SharedBy    *primitive.ObjectID `json:"shared_by,omitempty"`
	SharedAt    *time.Time          `json:"shared_at,omitempty"`
	Permissions []string            `json:"permissions,omitempty"`
}

// AccessList is the forward-resolution result: every user with access
// to one resource, each counted once.
type AccessList struct {
	ResourceID primitive.ObjectID `json:"resource_id"`
	AccessType string             `json:"access_type"` // "specific" or "global"
	TotalUsers int                `json:"total_users"`
	Entries    []AccessEntry      `json:"entries"`
}

// ResourceEntry is one resource in a user's resolved resource list.
type ResourceEntry struct {
	Resource    models.Resource     `json:"resource"`
	AccessType  AccessType          `json:"access_type"`
	GroupID     *primitive.ObjectID `json:"group_id,omitempty"`
	SharedBy    *primitive.ObjectID `json:"shared_by,omitempty"`
	SharedAt    *time.Time          `json:"shared_at,omitempty"`
	Permissions []string            `json:"permissions,omitempty"`
}

// ResourceList is the reverse-resolution result: every resource one
// user can reach, each counted once.
type ResourceList struct {
	UserID         primitive.ObjectID `json:"user_id"`
	TotalResources int                `json:"total_resources"`
	Resources      []ResourceEntry    `json:"resources"`
}

// ResourceUserCount is one row of the per-resource report.
type ResourceUserCount struct {
	Resource   models.Resource `json:"resource"`
	UserCount  int             `json:"user_count"`
	AccessType string          `json:"access_type"` // "specific" or "global"
}

// UserResourceCount is one row of the per-user report.
type UserResourceCount struct {
	User          models.User `json:"user"`
	ResourceCount int         `json:"resource_count"`
}

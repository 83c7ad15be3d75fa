// internal/domain/models/resource.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Resource is a shareable object owned by a user.
//
// There is deliberately no stored is_global flag: a resource is global
// iff a share grant with ShareTypeGlobal exists for it. Deriving the
// flag at read time keeps the grant and the flag from ever diverging.
type Resource struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID primitive.ObjectID `bson:"owner_id" json:"owner_id"`

	Type        string `bson:"type" json:"type"` // e.g. "document", "dataset", "dashboard"
	Name        string `bson:"name" json:"name"`
	NameCI      string `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Description string `bson:"description,omitempty" json:"description,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

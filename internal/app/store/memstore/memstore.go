// internal/app/store/memstore/memstore.go

// Package memstore is an in-memory implementation of the engine's
// store interface. It backs the engine tests and the mongo-less demo
// mode; slices preserve insertion order so list results are
// deterministic.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/sharehub/sharehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store struct {
	mu          sync.RWMutex
	users       []models.User
	groups      []models.Group
	memberships []models.GroupMembership
	resources   []models.Resource
	grants      []models.ShareGrant
}

func New() *Store {
	return &Store{}
}

// AddUser inserts a user, assigning an ID and timestamps when unset.
func (s *Store) AddUser(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.CreatedAt.IsZero() {
		now := time.Now().UTC()
		u.CreatedAt = now
		u.UpdatedAt = now
	}
	s.users = append(s.users, u)
	return u
}

// AddGroup inserts a group, assigning an ID and timestamps when unset.
func (s *Store) AddGroup(g models.Group) models.Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g.ID.IsZero() {
		g.ID = primitive.NewObjectID()
	}
	if g.CreatedAt.IsZero() {
		now := time.Now().UTC()
		g.CreatedAt = now
		g.UpdatedAt = now
	}
	s.groups = append(s.groups, g)
	return g
}

// AddMembership links a user to a group.
func (s *Store) AddMembership(userID, groupID primitive.ObjectID) models.GroupMembership {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := models.GroupMembership{
		ID:       primitive.NewObjectID(),
		UserID:   userID,
		GroupID:  groupID,
		JoinedAt: time.Now().UTC(),
	}
	s.memberships = append(s.memberships, m)
	return m
}

// AddResource inserts a resource, assigning an ID and timestamps when unset.
func (s *Store) AddResource(r models.Resource) models.Resource {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	if r.CreatedAt.IsZero() {
		now := time.Now().UTC()
		r.CreatedAt = now
		r.UpdatedAt = now
	}
	s.resources = append(s.resources, r)
	return r
}

// RemoveUser deletes a user document without touching memberships or
// grants, mirroring an out-of-band deletion the resolvers must tolerate.
func (s *Store) RemoveUser(id primitive.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return
		}
	}
}

// RemoveGroup deletes a group document, leaving memberships and grants
// behind.
func (s *Store) RemoveGroup(id primitive.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.groups {
		if g.ID == id {
			s.groups = append(s.groups[:i], s.groups[i+1:]...)
			return
		}
	}
}

// RemoveResource deletes a resource document, leaving grants behind.
func (s *Store) RemoveResource(id primitive.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.resources {
		if r.ID == id {
			s.resources = append(s.resources[:i], s.resources[i+1:]...)
			return
		}
	}
}

func (s *Store) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *Store) GetGroup(ctx context.Context, id primitive.ObjectID) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.groups {
		if g.ID == id {
			out := g
			return &out, nil
		}
	}
	return nil, nil
}

func (s *Store) ListGroups(ctx context.Context) ([]models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Group, len(s.groups))
	copy(out, s.groups)
	return out, nil
}

func (s *Store) GetResource(ctx context.Context, id primitive.ObjectID) (*models.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.resources {
		if r.ID == id {
			out := r
			return &out, nil
		}
	}
	return nil, nil
}

func (s *Store) ListResources(ctx context.Context) ([]models.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Resource, len(s.resources))
	copy(out, s.resources)
	return out, nil
}

func (s *Store) ListGlobalResources(ctx context.Context) ([]models.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	global := make(map[primitive.ObjectID]struct{})
	for _, g := range s.grants {
		if g.ShareType == models.ShareTypeGlobal {
			global[g.ResourceID] = struct{}{}
		}
	}
	var out []models.Resource
	for _, r := range s.resources {
		if _, ok := global[r.ID]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) ListMembershipsOfUser(ctx context.Context, userID primitive.ObjectID) ([]models.GroupMembership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.GroupMembership
	for _, m := range s.memberships {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *Store) ListMembersOfGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.GroupMembership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.GroupMembership
	for _, m := range s.memberships {
		if m.GroupID == groupID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *Store) ListMemberships(ctx context.Context) ([]models.GroupMembership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.GroupMembership, len(s.memberships))
	copy(out, s.memberships)
	return out, nil
}

func (s *Store) ListGrantsOfResource(ctx context.Context, resourceID primitive.ObjectID) ([]models.ShareGrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.ShareGrant
	for _, g := range s.grants {
		if g.ResourceID == resourceID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *Store) ListGrantsTargeting(ctx context.Context, shareType models.ShareType, targetID string) ([]models.ShareGrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.ShareGrant
	for _, g := range s.grants {
		if g.ShareType == shareType && g.TargetID == targetID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *Store) PutGrant(ctx context.Context, g models.ShareGrant) (models.ShareGrant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.grants {
		if existing.ResourceID == g.ResourceID && existing.ShareType == g.ShareType && existing.TargetID == g.TargetID {
			g.ID = existing.ID
			s.grants[i] = g
			return g, nil
		}
	}
	if g.ID.IsZero() {
		g.ID = primitive.NewObjectID()
	}
	s.grants = append(s.grants, g)
	return g, nil
}

func (s *Store) DeleteGrant(ctx context.Context, resourceID primitive.ObjectID, shareType models.ShareType, targetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.grants {
		if g.ResourceID == resourceID && g.ShareType == shareType && g.TargetID == targetID {
			s.grants = append(s.grants[:i], s.grants[i+1:]...)
			return nil
		}
	}
	return nil
}

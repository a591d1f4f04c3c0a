// Package store holds the single source of truth for users, complaints,
// and the active session. Collections live in memory and are flushed to a
// snapshot slot after every mutation; at startup they are rehydrated from
// the slots, falling back to the seed dataset when a slot is absent or
// unreadable.
package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hosteldesk/backend/internal/models"
	"github.com/hosteldesk/backend/internal/snapshot"
)

// Store owns the three collections. All access goes through its methods;
// mutations serialize under the lock and the snapshot flush for the
// touched slot completes before the mutator returns, so two writes for
// the same slot never interleave.
type Store struct {
	mu         sync.RWMutex
	users      []models.AuthUser
	complaints []models.Complaint
	session    *models.User

	snaps  snapshot.Store
	logger *zap.Logger
}

// New rehydrates a store from the snapshot backend. Rehydration never
// fails: a missing or undecodable slot falls back to its default and is
// logged.
func New(ctx context.Context, snaps snapshot.Store, logger *zap.Logger) *Store {
	s := &Store{snaps: snaps, logger: logger}

	if !loadSlot(ctx, s, snapshot.SlotUsers, &s.users) || len(s.users) == 0 {
		s.users = models.SeedUsers()
		s.persistUsers(ctx)
	}
	if !loadSlot(ctx, s, snapshot.SlotComplaints, &s.complaints) {
		s.complaints = models.SeedComplaints(time.Now())
		s.persistComplaints(ctx)
	}
	var sess models.User
	if loadSlot(ctx, s, snapshot.SlotSession, &sess) && sess.ID != "" {
		s.session = &sess
	}

	return s
}

// loadSlot deserializes one slot into dst. Returns false when the slot is
// absent or the data does not decode; the caller keeps its default.
func loadSlot[T any](ctx context.Context, s *Store, slot string, dst *T) bool {
	data, ok, err := s.snaps.Load(ctx, slot)
	if err != nil {
		s.logger.Warn("snapshot load failed, using default", zap.String("slot", slot), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		s.logger.Warn("snapshot undecodable, using default", zap.String("slot", slot), zap.Error(err))
		return false
	}
	return true
}

// persist* run with s.mu held. Persistence is best-effort: a failed save
// is logged and the in-memory mutation stands.
func (s *Store) persistUsers(ctx context.Context) {
	s.persist(ctx, snapshot.SlotUsers, s.users)
}

func (s *Store) persistComplaints(ctx context.Context) {
	s.persist(ctx, snapshot.SlotComplaints, s.complaints)
}

func (s *Store) persistSession(ctx context.Context) {
	if s.session == nil {
		if err := s.snaps.Delete(ctx, snapshot.SlotSession); err != nil {
			s.logger.Warn("snapshot delete failed", zap.String("slot", snapshot.SlotSession), zap.Error(err))
		}
		return
	}
	s.persist(ctx, snapshot.SlotSession, s.session)
}

func (s *Store) persist(ctx context.Context, slot string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("snapshot marshal failed", zap.String("slot", slot), zap.Error(err))
		return
	}
	if err := s.snaps.Save(ctx, slot, data); err != nil {
		s.logger.Warn("snapshot save failed", zap.String("slot", slot), zap.Error(err))
	}
}

// ---------------------------------------------------------------
// Users
// ---------------------------------------------------------------

// Users returns every user with the password stripped.
func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.User)
	}
	return out
}

// Staff returns the staff accounts, password stripped.
func (s *Store) Staff() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, 0)
	for _, u := range s.users {
		if u.Role == models.RoleStaff {
			out = append(out, u.User)
		}
	}
	return out
}

// UserByID returns the stripped user record for id.
func (s *Store) UserByID(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u.User, true
		}
	}
	return models.User{}, false
}

// AuthUserByID returns the authoritative record including the stored
// credential. Only the auth gate should call this.
func (s *Store) AuthUserByID(id string) (models.AuthUser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.AuthUser{}, false
}

// AddUser inserts a new user. Returns false without mutating anything
// when the id is already taken, regardless of role.
func (s *Store) AddUser(ctx context.Context, u models.AuthUser) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.ID == u.ID {
			return false
		}
	}
	s.users = append(s.users, u)
	s.persistUsers(ctx)
	return true
}

// ---------------------------------------------------------------
// Session
// ---------------------------------------------------------------

// Session returns the active identity, if any. The password field is
// never present on a session.
func (s *Store) Session() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return models.User{}, false
	}
	return *s.session, true
}

// SetSession establishes u as the active identity.
func (s *Store) SetSession(ctx context.Context, u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &u
	s.persistSession(ctx)
}

// ClearSession drops the active identity unconditionally.
func (s *Store) ClearSession(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.persistSession(ctx)
}

// ---------------------------------------------------------------
// Complaints
// ---------------------------------------------------------------

// Complaints returns a copy of the complaint collection in storage order
// (most recent first, by insertion).
func (s *Store) Complaints() []models.Complaint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Complaint, len(s.complaints))
	copy(out, s.complaints)
	return out
}

// ComplaintByID returns a copy of one complaint.
func (s *Store) ComplaintByID(id string) (models.Complaint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.complaints {
		if c.ID == id {
			return c, true
		}
	}
	return models.Complaint{}, false
}

// PrependComplaint inserts c at the head of the collection, keeping the
// most-recent-first ordering an insertion property rather than a sort.
func (s *Store) PrependComplaint(ctx context.Context, c models.Complaint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.complaints = append([]models.Complaint{c}, s.complaints...)
	s.persistComplaints(ctx)
}

// MutateComplaint applies fn to the complaint with the given id under the
// lock and persists the collection. Returns false when no such complaint
// exists; fn is not called in that case.
func (s *Store) MutateComplaint(ctx context.Context, id string, fn func(*models.Complaint)) bool {
	found, _ := s.MutateComplaintChecked(ctx, id, nil, fn)
	return found
}

// MutateComplaintChecked is MutateComplaint with a veto: check sees a
// copy of the record as it is at mutation time, under the same lock, and
// a non-nil error aborts before fn runs. This is the hook for rules that
// must hold against the current state, not against an earlier read.
func (s *Store) MutateComplaintChecked(ctx context.Context, id string, check func(models.Complaint) error, fn func(*models.Complaint)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.complaints {
		if s.complaints[i].ID == id {
			if check != nil {
				if err := check(s.complaints[i]); err != nil {
					return true, err
				}
			}
			fn(&s.complaints[i])
			s.persistComplaints(ctx)
			return true, nil
		}
	}
	return false, nil
}

// RemoveComplaint deletes by id. Returns false when the id was absent;
// the collection is untouched in that case, so the call is idempotent.
func (s *Store) RemoveComplaint(ctx context.Context, id string) bool {
	found, _ := s.RemoveComplaintChecked(ctx, id, nil)
	return found
}

// RemoveComplaintChecked deletes by id unless check vetoes it. Same
// contract as MutateComplaintChecked.
func (s *Store) RemoveComplaintChecked(ctx context.Context, id string, check func(models.Complaint) error) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.complaints {
		if s.complaints[i].ID == id {
			if check != nil {
				if err := check(s.complaints[i]); err != nil {
					return true, err
				}
			}
			s.complaints = append(s.complaints[:i], s.complaints[i+1:]...)
			s.persistComplaints(ctx)
			return true, nil
		}
	}
	return false, nil
}

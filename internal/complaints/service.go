// Package complaints implements the operations on the complaint
// collection and the read-side projections the dashboards are built
// from.
package complaints

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hosteldesk/backend/internal/models"
	"github.com/hosteldesk/backend/internal/store"
)

// Input carries the fields a student supplies when filing a complaint.
// Everything else is stamped by the service.
type Input struct {
	Title       string
	Description string
	Category    string
	Priority    string
}

// Service performs complaint mutations against the record store. The
// acting user is passed explicitly; there is no ambient session.
type Service struct {
	store  *store.Store
	guard  *Guard
	logger *zap.Logger

	// now is the timestamp source. Injectable so tests can force
	// strictly increasing clocks.
	now func() time.Time
}

func NewService(s *store.Store, guard *Guard, logger *zap.Logger) *Service {
	return &Service{store: s, guard: guard, logger: logger, now: time.Now}
}

// Add files a new complaint owned by actor. It is a no-op returning
// false unless the actor is a student. The new record gets a time-based
// id, a snapshot of the student's identity and room, status Pending, and
// identical created/updated timestamps, and is prepended so the
// collection stays most-recent-first by insertion.
func (s *Service) Add(ctx context.Context, actor models.User, in Input) (models.Complaint, bool) {
	if actor.Role != models.RoleStudent {
		return models.Complaint{}, false
	}

	now := s.now()
	room := actor.RoomNumber
	if room == "" {
		room = "Unknown"
	}

	c := models.Complaint{
		ID:          fmt.Sprintf("c%d", now.UnixMilli()),
		StudentID:   actor.ID,
		StudentName: actor.Name,
		StudentRoom: room,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Priority:    in.Priority,
		Status:      models.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.store.PrependComplaint(ctx, c)
	s.logger.Info("complaint filed",
		zap.String("id", c.ID),
		zap.String("student", actor.ID),
		zap.String("category", c.Category),
	)
	return c, true
}

// UpdateStatus replaces the status of a complaint and refreshes its
// updatedAt. Returns found=false when the id is absent so callers can
// tell "did nothing because missing" from "succeeded". The guard check
// runs inside the store's critical section, against the record as it is
// at mutation time.
func (s *Service) UpdateStatus(ctx context.Context, actor models.User, id, status string) (found bool, err error) {
	found, err = s.store.MutateComplaintChecked(ctx, id,
		func(c models.Complaint) error { return s.guard.CheckTransition(actor, c, status) },
		func(c *models.Complaint) {
			c.Status = status
			c.UpdatedAt = s.now()
		})
	if err != nil {
		return found, err
	}
	if found {
		s.logger.Info("complaint status updated", zap.String("id", id), zap.String("status", status))
	}
	return found, nil
}

// Assign puts a complaint in a staff member's queue. Assignment forces
// the status to In Progress. The staff id is recorded as given: the
// department match shown to admins is advisory and nothing here verifies
// it, nor that the id belongs to an existing staff account.
func (s *Service) Assign(ctx context.Context, complaintID, staffID, staffName string) (found bool) {
	found = s.store.MutateComplaint(ctx, complaintID, func(c *models.Complaint) {
		c.AssignedTo = staffID
		c.AssignedStaffName = staffName
		c.Status = models.StatusInProgress
		c.UpdatedAt = s.now()
	})
	if found {
		s.logger.Info("complaint assigned", zap.String("id", complaintID), zap.String("staff", staffID))
	}
	return found
}

// Delete removes a complaint by id. Idempotent: a missing id leaves the
// collection unchanged and returns found=false. As with UpdateStatus,
// the guard vetoes inside the critical section.
func (s *Service) Delete(ctx context.Context, actor models.User, id string) (found bool, err error) {
	found, err = s.store.RemoveComplaintChecked(ctx, id,
		func(c models.Complaint) error { return s.guard.CheckDelete(actor, c) })
	if err != nil {
		return found, err
	}
	if found {
		s.logger.Info("complaint deleted", zap.String("id", id))
	}
	return found, nil
}

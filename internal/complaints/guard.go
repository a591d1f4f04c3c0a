package complaints

import (
	"errors"
	"fmt"

	"github.com/hosteldesk/backend/internal/models"
)

// The data layer historically accepted any status transition and any
// delete. Guard makes the stricter rules opt-in: a permissive guard
// (Strict=false, the default) allows everything the original allowed,
// including reopening a Resolved complaint and deleting someone else's
// record.
//
// Checks take the complaint value itself so the service can evaluate
// them inside the store's critical section, on the record as it is at
// mutation time rather than at some earlier read.
type Guard struct {
	Strict bool
}

func NewGuard(strict bool) *Guard {
	return &Guard{Strict: strict}
}

var (
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrNotOwner          = errors.New("complaint belongs to another student")
	ErrNotPending        = errors.New("only pending complaints can be deleted")
)

// forward is the strict transition table: Pending → In Progress →
// {Resolved, Rejected}, and nothing moves backwards.
var forward = map[string][]string{
	models.StatusPending:    {models.StatusInProgress, models.StatusResolved, models.StatusRejected},
	models.StatusInProgress: {models.StatusResolved, models.StatusRejected},
}

// CheckTransition validates a status change on c. Admins are exempt even
// in strict mode; they are the ones correcting mis-set statuses.
func (g *Guard) CheckTransition(actor models.User, c models.Complaint, next string) error {
	if !g.Strict || actor.Role == models.RoleAdmin {
		return nil
	}

	for _, allowed := range forward[c.Status] {
		if allowed == next {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, c.Status, next)
}

// CheckDelete validates a delete of c: strict mode restricts it to the
// owning student while the complaint is still Pending.
func (g *Guard) CheckDelete(actor models.User, c models.Complaint) error {
	if !g.Strict {
		return nil
	}

	if actor.Role == models.RoleStudent && c.StudentID != actor.ID {
		return ErrNotOwner
	}
	if c.Status != models.StatusPending {
		return ErrNotPending
	}
	return nil
}

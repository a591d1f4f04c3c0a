package complaints

import (
	"sort"

	"github.com/hosteldesk/backend/internal/models"
)

// Read-side projections. These are pure functions over a copy of the
// complaint collection, recomputed on every call — never cached, so they
// cannot drift from the canonical data.

// Stats are the aggregate counters on the admin dashboard.
type Stats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
}

func ComputeStats(cs []models.Complaint) Stats {
	s := Stats{Total: len(cs)}
	for _, c := range cs {
		switch c.Status {
		case models.StatusPending:
			s.Pending++
		case models.StatusInProgress:
			s.InProgress++
		case models.StatusResolved:
			s.Resolved++
		}
	}
	return s
}

// CategoryBreakdown counts complaints per category, with every known
// category present even at zero so charts render stable axes.
func CategoryBreakdown(cs []models.Complaint) map[string]int {
	out := make(map[string]int, len(models.Categories))
	for _, cat := range models.Categories {
		out[cat] = 0
	}
	for _, c := range cs {
		out[c.Category]++
	}
	return out
}

// Pending returns the complaints awaiting assignment.
func Pending(cs []models.Complaint) []models.Complaint {
	out := make([]models.Complaint, 0)
	for _, c := range cs {
		if c.Status == models.StatusPending {
			out = append(out, c)
		}
	}
	return out
}

// ByStudent returns a student's own complaints, newest first.
func ByStudent(cs []models.Complaint, studentID string) []models.Complaint {
	out := make([]models.Complaint, 0)
	for _, c := range cs {
		if c.StudentID == studentID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// ByStaff returns the complaints assigned to a staff member, split into
// the active queue and the finished pile the way the staff dashboard
// shows them. Rejected complaints count as finished, not active.
func ByStaff(cs []models.Complaint, staffID string) (active, completed []models.Complaint) {
	active = make([]models.Complaint, 0)
	completed = make([]models.Complaint, 0)
	for _, c := range cs {
		if c.AssignedTo != staffID {
			continue
		}
		switch c.Status {
		case models.StatusResolved, models.StatusRejected:
			completed = append(completed, c)
		default:
			active = append(active, c)
		}
	}
	return active, completed
}

// SuggestStaff filters the staff directory down to plausible assignees
// for a category: matching department, the generalist "Other"
// department, or any staff when the complaint itself is "Other". Purely
// advisory — assignment accepts any staff id regardless.
func SuggestStaff(category string, staff []models.User) []models.User {
	out := make([]models.User, 0)
	for _, s := range staff {
		if s.Department == category || s.Department == "Other" || category == "Other" {
			out = append(out, s)
		}
	}
	return out
}

package models

import "time"

// Role distinguishes the three kinds of accounts in the system.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
	RoleStaff   Role = "staff"
)

// Complaint lifecycle statuses. A complaint starts Pending; assignment
// moves it to In Progress. Nothing at the data layer forbids other
// transitions unless the strict guard is enabled.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
	StatusRejected   = "Rejected"
)

// Categories a complaint can be filed under. Staff departments use the
// same labels (plus "Other").
var Categories = []string{"Electrical", "Plumbing", "Internet", "Furniture", "Cleaning", "Other"}

// Priorities in ascending order of urgency.
var Priorities = []string{"Low", "Medium", "High"}

// User is the identity record. ID doubles as the login name and is unique
// across all roles. Department is set only for staff, RoomNumber only for
// students.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	Department string `json:"department,omitempty"`
	RoomNumber string `json:"roomNumber,omitempty"`
}

// AuthUser is the authoritative copy held inside the store. The password
// never leaves the store: every accessor strips it before returning.
type AuthUser struct {
	User
	Password string `json:"password"`
}

// Complaint is a student-filed service request. The student fields are a
// denormalized snapshot taken at creation and never updated afterwards.
type Complaint struct {
	ID                string    `json:"id"`
	StudentID         string    `json:"studentId"`
	StudentName       string    `json:"studentName"`
	StudentRoom       string    `json:"studentRoom"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Category          string    `json:"category"`
	Priority          string    `json:"priority"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
	AssignedTo        string    `json:"assignedTo,omitempty"`
	AssignedStaffName string    `json:"assignedStaffName,omitempty"`
	AdminComments     string    `json:"adminComments,omitempty"`
}

// ValidCategory reports whether c is one of the known category labels.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is one of the known lifecycle statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// ValidPriority reports whether p is one of the known priority labels.
func ValidPriority(p string) bool {
	for _, v := range Priorities {
		if v == p {
			return true
		}
	}
	return false
}

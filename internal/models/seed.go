package models

import (
	"fmt"
	"time"
)

// SeedUsers returns the fixture accounts used when no persisted user
// collection exists yet: 2 admins, 10 staff spread across the five
// service departments, and 20 students in rooms 101-120. Every seeded
// account authenticates with the password "password".
func SeedUsers() []AuthUser {
	users := []AuthUser{
		{User: User{ID: "ADMIN001", Name: "Chief Warden", Email: "warden@hostel.com", Role: RoleAdmin}, Password: "password"},
		{User: User{ID: "ADMIN002", Name: "Deputy Warden", Email: "deputy@hostel.com", Role: RoleAdmin}, Password: "password"},
	}

	depts := []string{"Electrical", "Plumbing", "Internet", "Furniture", "Cleaning"}
	for i := 1; i <= 10; i++ {
		users = append(users, AuthUser{
			User: User{
				ID:         fmt.Sprintf("STAFF%03d", i),
				Name:       fmt.Sprintf("Staff Member %d", i),
				Email:      fmt.Sprintf("staff%d@hostel.com", i),
				Role:       RoleStaff,
				Department: depts[(i-1)%5],
			},
			Password: "password",
		})
	}

	for i := 1; i <= 20; i++ {
		users = append(users, AuthUser{
			User: User{
				ID:         fmt.Sprintf("STU%03d", i),
				Name:       fmt.Sprintf("Student %d", i),
				Email:      fmt.Sprintf("student%d@hostel.com", i),
				Role:       RoleStudent,
				RoomNumber: fmt.Sprintf("%d", 100+i),
			},
			Password: "password",
		})
	}

	return users
}

// SeedComplaints returns the two example complaints shipped with a fresh
// installation so the dashboards are not empty on first run.
func SeedComplaints(now time.Time) []Complaint {
	return []Complaint{
		{
			ID:          "c1",
			StudentID:   "STU001",
			StudentName: "Student 1",
			StudentRoom: "101",
			Title:       "Fan making loud noise",
			Description: "The ceiling fan in my room is wobbling and making a very loud clicking sound.",
			Category:    "Electrical",
			Priority:    "Medium",
			Status:      StatusPending,
			CreatedAt:   now.Add(-24 * time.Hour),
			UpdatedAt:   now.Add(-24 * time.Hour),
		},
		{
			ID:                "c2",
			StudentID:         "STU002",
			StudentName:       "Student 2",
			StudentRoom:       "102",
			Title:             "Bathroom tap leaking",
			Description:       "Continuous water leakage from the main tap in the shared bathroom.",
			Category:          "Plumbing",
			Priority:          "High",
			Status:            StatusInProgress,
			AssignedTo:        "STAFF002",
			AssignedStaffName: "Staff Member 2",
			CreatedAt:         now.Add(-48 * time.Hour),
			UpdatedAt:         now.Add(-time.Hour),
		},
	}
}

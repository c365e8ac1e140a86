package team

import "time"

// Role is a member's permission level within a team.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Request actions accepted by ManageRequest.
const (
	ActionApprove = "approve"
	ActionDeny    = "deny"
)

// Team groups users and owns projects.
type Team struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Icon         string    `json:"icon,omitempty"`
	JoinRequests []string  `json:"joinRequests"`
	Members      []Member  `json:"members"`
	ProjectIDs   []string  `json:"projectIds"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Member links a user to a team.
type Member struct {
	UserID   string    `json:"userId"`
	Name     string    `json:"name,omitempty"`
	Role     Role      `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

// CreateRequest describes a new team.
type CreateRequest struct {
	Name        string
	Description string
	Icon        string
}

package models

import "strings"

// Role identifies what a user is allowed to do on the platform.
type Role string

const (
	// RoleStudent marks a user enrolled in courses.
	RoleStudent Role = "student"
	// RoleTeacher marks a user who owns courses and reviews submissions.
	RoleTeacher Role = "teacher"
)

// User is the authenticated platform account returned by /auth/me.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      Role   `json:"role"`
	AvatarURL string `json:"avatar_url"`
}

// FullName joins the first and last name, tolerating either being empty.
func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// IsTeacher reports whether the user may manage courses and grade submissions.
func (u User) IsTeacher() bool {
	return u.Role == RoleTeacher
}

// TokenPair holds the opaque bearer tokens issued at login.
// RefreshToken is persisted but not used to renew an expired access token;
// expiry surfaces as a 401 and forces a fresh login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Empty reports whether no access token is present.
func (p TokenPair) Empty() bool {
	return p.AccessToken == ""
}

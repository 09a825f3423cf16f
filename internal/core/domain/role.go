package domain

import "fmt"

// Role is a closed set of authority labels. Unknown labels never become a
// Role; they are rejected at ParseRole.
type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

// ParseRole converts a stored label into a Role, rejecting unknown labels.
func ParseRole(label string) (Role, error) {
	switch Role(label) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("unknown role %q", label)
}

func (r Role) String() string { return string(r) }

package domain

// User models a registered principal: login credentials, granted roles, and
// the four account-status flags the authentication resolver checks.
type User struct {
	ID                    int64  `json:"id"`
	LoginName             string `json:"login_name"`
	PasswordHash          string `json:"-"`
	Roles                 []Role `json:"roles"`
	Enabled               bool   `json:"enabled"`
	AccountNonExpired     bool   `json:"account_non_expired"`
	CredentialsNonExpired bool   `json:"credentials_non_expired"`
	AccountNonLocked      bool   `json:"account_non_locked"`
}

// HasRole reports whether the user holds the given role. There is no role
// hierarchy: ADMIN does not imply USER.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Active reports whether the account may authenticate at all.
func (u *User) Active() bool {
	return u.Enabled && u.AccountNonExpired && u.CredentialsNonExpired && u.AccountNonLocked
}

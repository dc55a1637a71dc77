package domain

import "time"

// User is an account row. Credential verification compares against
// PasswordHash (argon2id, PHC encoded); Active gates both login and refresh.
type User struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	Active       bool
	Superuser    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

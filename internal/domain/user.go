package domain

// User represents an account of the app. Only a demo user exists in practice.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
}

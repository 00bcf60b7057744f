package model

import "time"

// User represents a row in the `users` table. The username is the primary
// key and never changes after registration. PasswordHash is always a bcrypt
// digest produced by the credential helpers; plaintext passwords are never
// stored or logged.
//
// Fields:
//  Username     – primary key, at most 20 characters.
//  PasswordHash – bcrypt hash of the password.
//  Email        – contact address, at most 50 characters.
//  FirstName    – given name, at most 30 characters.
//  LastName     – family name, at most 30 characters.
//  CreatedAt    – timestamp of registration.
type User struct {
	Username     string    // users.username
	PasswordHash string    // users.password_hash
	Email        string    // users.email
	FirstName    string    // users.first_name
	LastName     string    // users.last_name
	CreatedAt    time.Time // users.created_at
}

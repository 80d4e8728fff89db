package models

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role is the closed set of privilege levels. Mutating catalog operations
// require an elevated role; plain string comparison is deliberately avoided
// so a typo can never widen access.
type Role string

const (
	RoleUser     Role = "user"
	RoleAdmin    Role = "admin"
	RoleSysAdmin Role = "sysadmin"
)

// ParseRole maps an arbitrary string onto the Role enum.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAdmin, RoleSysAdmin:
		return Role(s), nil
	}
	return "", errors.New("unknown role: " + s)
}

// IsElevated reports whether the role may perform admin-gated operations.
func (r Role) IsElevated() bool {
	return r == RoleAdmin || r == RoleSysAdmin
}

// Contact is an optional phone entry on a user profile.
type Contact struct {
	CountryCode string `json:"countryCode,omitempty"`
	Number      string `json:"number,omitempty"`
}

// Address is an optional address entry on a user profile.
type Address struct {
	Alias      string `json:"alias,omitempty"`
	Details    string `json:"details,omitempty"`
	Country    string `json:"country,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
}

// User is the model for the 'users' table. The password hash is never
// serialized: the json:"-" tag keeps it out of every response body.
type User struct {
	ID           int64     `json:"id" db:"id"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	Contacts     []Contact `json:"contact,omitempty" db:"contacts"`
	Addresses    []Address `json:"addresses,omitempty" db:"addresses"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Password Helper (Standard)
type Password struct {
	Plaintext *string
	Hash      string
}

func (p *Password) Set(plaintextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.Hash = string(hash)
	p.Plaintext = &plaintextPassword
	return nil
}

// Matches compares in constant time via bcrypt; a mismatch is (false, nil),
// anything else is a real error.
func (p *Password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(p.Hash), []byte(plaintextPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

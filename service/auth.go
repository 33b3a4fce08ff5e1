package service

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Credentials configure the single admin account
type Credentials struct {
	Username string
	Password string
}

type admin struct {
	username []byte
	hash     []byte
}

func newAdmin(c Credentials) (admin, error) {
	if c.Username == "" || c.Password == "" {
		return admin{}, fmt.Errorf("admin username and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
	if err != nil {
		return admin{}, fmt.Errorf("hash admin password: %w", err)
	}
	return admin{username: []byte(c.Username), hash: hash}, nil
}

// Login reports whether username and password match the admin account.
// The password hash is always compared so both failures take equal time
func (s *Service) Login(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), s.admin.username) == 1
	passOK := bcrypt.CompareHashAndPassword(s.admin.hash, []byte(password)) == nil
	return userOK && passOK
}

package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// Admin checks the credentials guarding product management.
type Admin struct {
	username     string
	passwordHash []byte
}

func NewAdmin(username, passwordHash string) *Admin {
	return &Admin{username: username, passwordHash: []byte(passwordHash)}
}

// Enabled reports whether admin credentials are configured. Without them
// product management is closed.
func (a *Admin) Enabled() bool {
	return a.username != "" && len(a.passwordHash) > 0
}

func (a *Admin) Check(username, password string) bool {
	if !a.Enabled() {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) == nil
	return userOK && passOK
}

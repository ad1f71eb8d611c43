package session

import (
	"fmt"
	"golang.org/x/crypto/bcrypt"
)

// AdminPassword holds the bcrypt hash of the shared admin password so the
// plain value does not linger after start-up.
type AdminPassword struct {
	hash []byte
}

func NewAdminPassword(password string) (*AdminPassword, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing admin password: %w", err)
	}

	return &AdminPassword{hash: hash}, nil
}

func (p *AdminPassword) Check(password string) bool {
	return bcrypt.CompareHashAndPassword(p.hash, []byte(password)) == nil
}

package userservice

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// passwordCost is the bcrypt work factor for stored hashes.
const passwordCost = 12

func (p *Password) set(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), passwordCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	p.Plain = plain
	p.hash = hash

	return nil
}

// compare reports whether plain matches the stored hash. A mismatch is not an error.
func (p *Password) compare(plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(p.hash, []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("compare password: %w", err)
	}
}

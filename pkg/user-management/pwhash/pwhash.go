package pwhash

import (
	"golang.org/x/crypto/bcrypt"
)

var bcryptCost = 10

func InitBcryptCost(cost int) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return
	}
	bcryptCost = cost
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePasswordWithHash checks the password against the stored hash using
// the library's constant time comparison.
func ComparePasswordWithHash(hash string, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		return false, err
	}
	return true, nil
}

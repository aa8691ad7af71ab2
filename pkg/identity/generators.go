package identity

import (
	"fmt"
	"math/rand"
)

const (
	phonePrefix    = "018"
	tempMailDomain = "1secmail.com"
)

// GeneratePhoneNumber returns a random local mobile number: the operator
// prefix followed by 8 random digits.
func GeneratePhoneNumber() string {
	return fmt.Sprintf("%s%08d", phonePrefix, rand.Intn(100000000))
}

// TempEmail returns a random disposable address on the temp mail provider.
func TempEmail() string {
	const chars = "abcdefghijklmnopqrstuvwxyz0123456789"
	local := make([]byte, 8)
	for i := range local {
		local[i] = chars[rand.Intn(len(chars))]
	}
	return string(local) + "@" + tempMailDomain
}

package usermanagement

import (
	"errors"
	"time"

	userDB "github.com/P2B-ARIF/facebook-info-api-backend/pkg/db/user"
	jwthandling "github.com/P2B-ARIF/facebook-info-api-backend/pkg/jwt-handling"
	"github.com/P2B-ARIF/facebook-info-api-backend/pkg/user-management/pwhash"
	userTypes "github.com/P2B-ARIF/facebook-info-api-backend/pkg/user-management/types"
	umUtils "github.com/P2B-ARIF/facebook-info-api-backend/pkg/user-management/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrAccountBlocked     = errors.New("account is blocked")

	// ErrSessionActive re-exported so callers don't need the db package
	ErrSessionActive = userDB.ErrSessionActive
	ErrUserExists    = userDB.ErrUserExists
	ErrUserNotFound  = userDB.ErrUserNotFound
)

var (
	userDBService  *userDB.UserDBService
	tokenSignKey   string
	tokenExpiresIn time.Duration
)

func Init(
	userDBConn *userDB.UserDBService,
	jwtSignKey string,
	jwtExpiresIn time.Duration,
) {
	userDBService = userDBConn
	tokenSignKey = jwtSignKey
	tokenExpiresIn = jwtExpiresIn
}

type LoginResult struct {
	Token             string
	MembershipExpired bool
	User              userTypes.User
}

// Login checks the credentials and claims the account's session. The session
// claim is atomic: while an account is in use, further logins fail with
// ErrSessionActive until an admin resets the state (there is no logout that
// releases the latch).
func Login(email string, password string) (result LoginResult, err error) {
	email = umUtils.SanitizeEmail(email)

	user, err := userDBService.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, userDB.ErrUserNotFound) {
			return result, ErrInvalidCredentials
		}
		return result, err
	}

	match, err := pwhash.ComparePasswordWithHash(user.Password, password)
	if err != nil || !match {
		return result, ErrInvalidCredentials
	}

	if user.SessionState == userTypes.SESSION_STATE_BLOCKED {
		return result, ErrAccountBlocked
	}

	if !user.Membership {
		// expired accounts get a distinct, non-error outcome so the client
		// can show a renewal prompt instead of a login failure
		result.MembershipExpired = true
		result.User = user
		return result, nil
	}

	user, err = userDBService.ClaimSession(email)
	if err != nil {
		return result, err
	}

	token, err := jwthandling.GenerateNewUserToken(tokenExpiresIn, user.ID.Hex(), user.Email, tokenSignKey)
	if err != nil {
		return result, err
	}

	result.Token = token
	result.User = user
	return result, nil
}

func AddUser(email string, password string, name string) (string, error) {
	email = umUtils.SanitizeEmail(email)
	if !umUtils.CheckEmailFormat(email) {
		return "", ErrInvalidEmail
	}

	hashedPassword, err := pwhash.HashPassword(password)
	if err != nil {
		return "", err
	}

	user := userTypes.User{
		Email:        email,
		Name:         name,
		Password:     hashedPassword,
		SessionState: userTypes.SESSION_STATE_AVAILABLE,
		Membership:   true,
		CreatedAt:    time.Now(),
	}
	return userDBService.CreateUser(user)
}

func BlockUser(email string) error {
	return userDBService.SetSessionState(umUtils.SanitizeEmail(email), userTypes.SESSION_STATE_BLOCKED)
}

// ReactivateUser releases the session latch, the only way an in-use account
// becomes available for a new login.
func ReactivateUser(email string) error {
	return userDBService.SetSessionState(umUtils.SanitizeEmail(email), userTypes.SESSION_STATE_AVAILABLE)
}

func GetUser(email string) (userTypes.User, error) {
	return userDBService.GetUserByEmail(umUtils.SanitizeEmail(email))
}

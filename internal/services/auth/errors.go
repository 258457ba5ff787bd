package auth

import "errors"

var (
	// ErrInvalidRole is returned when the requested role is neither doctor nor patient.
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidCredentials covers both unknown email and wrong password so
	// responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrCreateUser is returned when persisting a new user fails for any
	// reason other than a duplicate email.
	ErrCreateUser = errors.New("failed to create user")

	// ErrGenAccessToken is returned when we cannot create a JWT.
	ErrGenAccessToken = errors.New("failed to generate access token")

	// ErrUnsupportedJWTAlg is returned for signing algorithms other than HS256.
	ErrUnsupportedJWTAlg = errors.New("unsupported JWT algorithm")
)

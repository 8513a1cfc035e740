// Package jwt provides JSON Web Token utilities for the Haven API.
//
// Tokens are signed with RS256. The service loads an RSA key pair from
// PEM files and issues short-lived access tokens carrying user claims.
//
// # Token Signing
//
// Sign tokens for authenticated users:
//
//	service, err := jwt.NewService(jwt.Config{
//	    PrivateKeyPath: "./keys/private.pem",
//	    PublicKeyPath:  "./keys/public.pem",
//	    Issuer:         "haven.forgo.software",
//	    ExpirationMins: 15,
//	})
//
//	token, err := service.Sign(jwt.Claims{
//	    UserID:   user.ID,
//	    Email:    user.Email,
//	    Username: user.Username,
//	})
//
// # Token Validation
//
// Validate and extract claims:
//
//	claims, err := service.Validate(tokenString)
//	if err != nil {
//	    // jwt.ErrTokenExpired, jwt.ErrInvalidSignature, ...
//	}
//	userID := claims.UserID
//
// # Key Generation
//
// GenerateKeyPair writes a fresh RSA key pair to disk for development.
// NewTestService builds a service around an in-memory key for tests.
package jwt

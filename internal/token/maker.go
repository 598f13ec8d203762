package token

import (
	"time"
)

// Maker is the capability for minting and verifying access tokens. Components
// that only need verification depend on this interface, never on the signing
// secret itself.
type Maker interface {
	CreateToken(userID string, role string, duration time.Duration) (token string, payload *Payload, err error)
	VerifyToken(tokenString string) (payload *Payload, err error)
}

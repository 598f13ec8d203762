package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

func TestJWTMakerCreateAndVerify(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	if err != nil {
		t.Fatalf("NewJWTMaker returned error: %v", err)
	}

	tokenString, payload, err := maker.CreateToken("user-1", "user", time.Minute)
	if err != nil {
		t.Fatalf("CreateToken returned error: %v", err)
	}
	if tokenString == "" {
		t.Fatal("expected non-empty token")
	}
	if payload.Subject != "user-1" || payload.Role != "user" {
		t.Fatalf("unexpected payload: %+v", payload)
	}

	verified, err := maker.VerifyToken(tokenString)
	if err != nil {
		t.Fatalf("VerifyToken returned error: %v", err)
	}
	if verified.Subject != "user-1" {
		t.Fatalf("expected subject user-1, got %s", verified.Subject)
	}
	if verified.Role != "user" {
		t.Fatalf("expected role user, got %s", verified.Role)
	}
}

func TestJWTMakerRejectsExpiredToken(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	if err != nil {
		t.Fatalf("NewJWTMaker returned error: %v", err)
	}

	tokenString, _, err := maker.CreateToken("user-1", "user", -time.Minute)
	if err != nil {
		t.Fatalf("CreateToken returned error: %v", err)
	}

	if _, err = maker.VerifyToken(tokenString); err != ErrExpiredToken {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestJWTMakerRejectsUnsignedToken(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	if err != nil {
		t.Fatalf("NewJWTMaker returned error: %v", err)
	}

	payload, err := NewPayload("user-1", "user", time.Minute)
	if err != nil {
		t.Fatalf("NewPayload returned error: %v", err)
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodNone, payload)
	tokenString, err := jwtToken.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	if _, err = maker.VerifyToken(tokenString); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTMakerRejectsMissingSubject(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	if err != nil {
		t.Fatalf("NewJWTMaker returned error: %v", err)
	}

	tokenString, _, err := maker.CreateToken("", "user", time.Minute)
	if err != nil {
		t.Fatalf("CreateToken returned error: %v", err)
	}

	if _, err = maker.VerifyToken(tokenString); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestNewJWTMakerRejectsShortSecret(t *testing.T) {
	if _, err := NewJWTMaker(strings.Repeat("x", minSecretKeySize-1)); err == nil {
		t.Fatal("expected error for short secret key")
	}
}

// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives: password hashing and token signing.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, signing) from the
// domain logic. It knows nothing about users; callers map subjects to identities.
package sec

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kanoon/kanoon/pkg/uuid"
)

var (
	// ErrTokenInvalid covers bad signatures, wrong algorithms and undecodable payloads.
	ErrTokenInvalid = errors.New("sec: token invalid")
	// ErrTokenExpired is returned at and after the embedded expiry instant.
	ErrTokenExpired = errors.New("sec: token expired")
)

// TokenClaims is the signed payload. Only the subject and the validity window
// are carried; the identity itself is always reloaded by the caller.
type TokenClaims struct {
	jwt.RegisteredClaims
}

// TokenSigner signs and parses HS256 tokens with one shared secret.
type TokenSigner struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewTokenSigner creates a signer. now may be nil to use the wall clock.
func NewTokenSigner(secret, issuer string, now func() time.Time) *TokenSigner {
	if now == nil {
		now = time.Now
	}
	return &TokenSigner{secret: []byte(secret), issuer: issuer, now: now}
}

// Sign issues a token for subject valid for timeToLive, returning the expiry.
func (signer *TokenSigner) Sign(subject int64, timeToLive time.Duration) (string, time.Time, error) {
	currentTime := signer.now()
	expiresAt := jwt.NewNumericDate(currentTime.Add(timeToLive))

	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New(),
			Subject:   strconv.FormatInt(subject, 10),
			Issuer:    signer.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: expiresAt,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(signer.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, expiresAt.Time, nil
}

// Parse verifies the signature, then the expiry, and returns the subject.
//
// Expiry is a closed bound: a token parsed exactly at its exp instant is
// already expired.
func (signer *TokenSigner) Parse(tokenString string) (int64, error) {
	claims := &TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return signer.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		// Time claims are checked below so the boundary is ours, not the library's.
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if claims.ExpiresAt == nil {
		return 0, fmt.Errorf("%w: missing exp", ErrTokenInvalid)
	}
	if !signer.now().Before(claims.ExpiresAt.Time) {
		return 0, ErrTokenExpired
	}

	if signer.issuer != "" && claims.Issuer != signer.issuer {
		return 0, fmt.Errorf("%w: unexpected issuer %q", ErrTokenInvalid, claims.Issuer)
	}

	subject, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad subject", ErrTokenInvalid)
	}

	return subject, nil
}

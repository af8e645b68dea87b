// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

package sec

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// # Confirmation Codes

// GenerateSecureCode returns a URL-safe random string built from byteLength
// bytes of cryptographic entropy. The resulting string is longer than
// byteLength due to base64 expansion.
func GenerateSecureCode(byteLength int) (string, error) {
	raw := make([]byte, byteLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure code: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// HashCode hashes a plain-text confirmation code using the bcrypt algorithm.
//
// Codes are stored hashed so a database leak does not hand out working
// credentials. Default cost balances security and CPU during signup spikes.
func HashCode(plainTextCode string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextCode), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash code: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckCodeHash compares a plain-text confirmation code with its hashed version.
func CheckCodeHash(plainTextCode, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextCode))
	return err == nil
}

// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

package auth

import "time"

// Token and confirmation-code parameters.
const (
	// AccessTokenTTL is the lifetime of an issued JWT access token.
	AccessTokenTTL = 24 * time.Hour

	// ConfirmationCodeLength is the number of random bytes in a confirmation
	// code before base64 encoding.
	ConfirmationCodeLength = 24
)

// Signup throttle parameters.
//
// A single email address may request at most [SignupThrottleLimit]
// confirmation codes per [SignupThrottleWindow]. The counter lives in Redis
// and expires on its own.
const (
	SignupThrottleLimit  = 5
	SignupThrottleWindow = 1 * time.Hour
)

// File: internal/auth/google.go
package auth

import (
	"context"
	"fmt"

	"clinic_backend/internal/config"

	"google.golang.org/api/idtoken"
)

// GoogleProfile is the subset of a verified Google ID token the sign-in
// flow cares about.
type GoogleProfile struct {
	Email         string
	Name          string
	EmailVerified bool
}

// GoogleVerifier verifies an externally-issued Google ID token.
type GoogleVerifier interface {
	Verify(ctx context.Context, rawToken string) (*GoogleProfile, error)
}

type idTokenVerifier struct {
	clientID string
}

var _ GoogleVerifier = (*idTokenVerifier)(nil)

// NewGoogleVerifier creates a verifier bound to the configured OAuth client.
// Returns nil when no client ID is configured; the Google sign-in endpoint
// then reports the feature as unavailable.
func NewGoogleVerifier(cfg *config.Config) GoogleVerifier {
	if cfg.GoogleClientID == "" {
		return nil
	}
	return &idTokenVerifier{clientID: cfg.GoogleClientID}
}

func (v *idTokenVerifier) Verify(ctx context.Context, rawToken string) (*GoogleProfile, error) {
	payload, err := idtoken.Validate(ctx, rawToken, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("google token verification failed: %w", err)
	}

	profile := &GoogleProfile{}
	if email, ok := payload.Claims["email"].(string); ok {
		profile.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		profile.Name = name
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok {
		profile.EmailVerified = verified
	}
	return profile, nil
}

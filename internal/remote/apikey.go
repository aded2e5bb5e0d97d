package remote

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/arnold/visiongoals/internal/models"
	"github.com/arnold/visiongoals/internal/storage"
)

const RoleServiceRole = "service_role"

// KeyInfo is what a legacy Supabase API key says about itself.
type KeyInfo struct {
	Role       string
	ProjectRef string
	ExpiresAt  *time.Time
}

type keyClaims struct {
	Role string `json:"role"`
	Ref  string `json:"ref"`
	jwt.RegisteredClaims
}

// InspectKey decodes the claims of a JWT-style API key without verifying its
// signature. The result is informational; the server is the one that checks it.
func InspectKey(key string) (KeyInfo, error) {
	claims := &keyClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(key, claims); err != nil {
		return KeyInfo{}, fmt.Errorf("api key is not a JWT: %w", err)
	}

	info := KeyInfo{Role: claims.Role, ProjectRef: claims.Ref}
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time.UTC()
		info.ExpiresAt = &exp
	}
	return info, nil
}

// Status summarises stored credentials for the settings view.
func Status(c storage.Credentials, now time.Time) models.RemoteConfigStatus {
	status := models.RemoteConfigStatus{
		Configured: c.Complete(),
		URL:        c.URL,
	}
	if !status.Configured {
		return status
	}

	info, err := InspectKey(c.Key)
	if err != nil {
		status.Warnings = append(status.Warnings, "API key is not a JWT; its role cannot be shown")
		return status
	}

	status.KeyRole = info.Role
	status.ProjectRef = info.ProjectRef
	status.ExpiresAt = info.ExpiresAt
	if info.ExpiresAt != nil && info.ExpiresAt.Before(now) {
		status.Warnings = append(status.Warnings, "API key has expired")
	}
	if info.Role == RoleServiceRole {
		status.Warnings = append(status.Warnings, "service_role key bypasses row level security")
	}
	return status
}

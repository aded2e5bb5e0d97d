package models

import "time"

type RemoteConfigRequest struct {
	URL string `json:"url" validate:"required,url"`
	Key string `json:"key" validate:"notblank"`
}

// RemoteConfigStatus is what the settings endpoint reports. The key itself
// is never echoed back.
type RemoteConfigStatus struct {
	Configured bool       `json:"configured"`
	URL        string     `json:"url,omitempty"`
	KeyRole    string     `json:"keyRole,omitempty"`
	ProjectRef string     `json:"projectRef,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	Warnings   []string   `json:"warnings,omitempty"`
}

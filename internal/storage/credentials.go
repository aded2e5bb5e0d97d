package storage

import "strings"

// Credentials locate the remote goals table.
type Credentials struct {
	URL string
	Key string
}

// Complete is true only when both values are present and non-blank.
func (c Credentials) Complete() bool {
	return strings.TrimSpace(c.URL) != "" && strings.TrimSpace(c.Key) != ""
}

// Credentials reads the remote endpoint and API key. Missing keys come back
// as empty strings.
func (s *LocalStore) Credentials() (Credentials, error) {
	if !s.Available() {
		return Credentials{}, newError(KindUnavailable, "credentials", nil)
	}

	url, _, err := s.kv.GetItem(RemoteURLKey)
	if err != nil {
		return Credentials{}, s.backendErr("credentials", err)
	}
	key, _, err := s.kv.GetItem(RemoteKeyKey)
	if err != nil {
		return Credentials{}, s.backendErr("credentials", err)
	}
	return Credentials{URL: url, Key: key}, nil
}

func (s *LocalStore) SetCredentials(c Credentials) error {
	if !s.Available() {
		return newError(KindUnavailable, "set credentials", nil)
	}
	if err := s.kv.SetItem(RemoteURLKey, strings.TrimSpace(c.URL)); err != nil {
		return s.backendErr("set credentials", err)
	}
	if err := s.kv.SetItem(RemoteKeyKey, strings.TrimSpace(c.Key)); err != nil {
		return s.backendErr("set credentials", err)
	}
	return nil
}

func (s *LocalStore) ClearCredentials() error {
	if !s.Available() {
		return newError(KindUnavailable, "clear credentials", nil)
	}
	for _, key := range []string{RemoteURLKey, RemoteKeyKey} {
		if err := s.kv.RemoveItem(key); err != nil {
			return s.backendErr("clear credentials", err)
		}
	}
	return nil
}

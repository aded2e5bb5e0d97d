package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arnold/visiongoals/internal/models"
	"github.com/arnold/visiongoals/internal/storage"
)

// Table is the PostgREST resource holding mirrored goals.
const Table = "goals"

var ErrNotConfigured = errors.New("remote store is not configured")

// Error describes a failed request against the remote table.
type Error struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("remote %s: %v", e.Op, e.Err)
	case e.Message != "":
		return fmt.Sprintf("remote %s: status %d: %s", e.Op, e.Status, e.Message)
	default:
		return fmt.Sprintf("remote %s: status %d", e.Op, e.Status)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CredentialSource yields the endpoint URL and API key at call time, so a
// settings change takes effect without rebuilding the Store.
type CredentialSource interface {
	Credentials() (storage.Credentials, error)
}

// Store mirrors individual goals to a Supabase (PostgREST) table. It never
// consults the local collection.
type Store struct {
	creds   CredentialSource
	timeout time.Duration
	log     *zap.Logger
}

func New(creds CredentialSource, timeout time.Duration, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{creds: creds, timeout: timeout, log: log}
}

func (s *Store) IsConfigured() bool {
	_, err := s.credentials()
	return err == nil
}

// FetchAll returns every remote goal, newest first by created_at.
func (s *Store) FetchAll(ctx context.Context) ([]models.Goal, error) {
	c, err := s.credentials()
	if err != nil {
		return []models.Goal{}, err
	}

	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "created_at.desc")

	body, err := s.do(ctx, "fetch", fiber.Get(endpoint(c)+"?"+q.Encode()), c)
	if err != nil {
		return []models.Goal{}, err
	}

	var rows []row
	if err := json.Unmarshal(body, &rows); err != nil {
		err = &Error{Op: "fetch", Err: fmt.Errorf("decode rows: %w", err)}
		s.log.Error("remote fetch failed", zap.Error(err))
		return []models.Goal{}, err
	}

	goals := make([]models.Goal, 0, len(rows))
	for _, r := range rows {
		goals = append(goals, r.goal())
	}
	s.log.Debug("remote goals fetched", zap.Int("count", len(goals)))
	return goals, nil
}

// Upsert inserts or replaces goal by primary key.
func (s *Store) Upsert(ctx context.Context, goal models.Goal) error {
	c, err := s.credentials()
	if err != nil {
		return err
	}

	a := fiber.Post(endpoint(c)).JSON(toRow(goal))
	a.Set("Prefer", "resolution=merge-duplicates,return=minimal")

	_, err = s.do(ctx, "upsert", a, c)
	return err
}

// Remove deletes the remote row with the given id.
func (s *Store) Remove(ctx context.Context, id uuid.UUID) error {
	c, err := s.credentials()
	if err != nil {
		return err
	}

	q := url.Values{}
	q.Set("id", "eq."+id.String())

	_, err = s.do(ctx, "remove", fiber.Delete(endpoint(c)+"?"+q.Encode()), c)
	return err
}

func (s *Store) credentials() (storage.Credentials, error) {
	if s.creds == nil {
		return storage.Credentials{}, ErrNotConfigured
	}
	c, err := s.creds.Credentials()
	if err != nil {
		s.log.Warn("remote credentials unreadable", zap.Error(err))
		return storage.Credentials{}, ErrNotConfigured
	}
	if !c.Complete() {
		return storage.Credentials{}, ErrNotConfigured
	}
	return c, nil
}

func (s *Store) do(ctx context.Context, op string, a *fiber.Agent, c storage.Credentials) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		fiber.ReleaseAgent(a)
		return nil, &Error{Op: op, Err: err}
	}

	a.Set("apikey", c.Key)
	a.Set("Authorization", "Bearer "+c.Key)
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	timeout, err := s.requestTimeout(ctx)
	if err != nil {
		fiber.ReleaseAgent(a)
		return nil, &Error{Op: op, Err: err}
	}
	if timeout > 0 {
		a.Timeout(timeout)
	}

	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		e := &Error{Op: op, Err: err}
		s.log.Error("remote request invalid", zap.String("op", op), zap.Error(e))
		return nil, e
	}

	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		e := &Error{Op: op, Err: errors.Join(errs...)}
		s.log.Error("remote request failed", zap.String("op", op), zap.Error(e))
		return nil, e
	}
	if code < 200 || code >= 300 {
		e := &Error{Op: op, Status: code, Message: errorMessage(body)}
		s.log.Error("remote request rejected", zap.String("op", op), zap.Int("status", code), zap.String("message", e.Message))
		return nil, e
	}
	return body, nil
}

// requestTimeout bounds a request by the configured timeout and the ctx
// deadline, whichever is sooner. A deadline that has already passed is an
// error rather than an unbounded request.
func (s *Store) requestTimeout(ctx context.Context) (time.Duration, error) {
	timeout := s.timeout
	deadline, ok := ctx.Deadline()
	if !ok {
		return timeout, nil
	}
	left := time.Until(deadline)
	if left <= 0 {
		return 0, context.DeadlineExceeded
	}
	if timeout <= 0 || left < timeout {
		timeout = left
	}
	return timeout, nil
}

func endpoint(c storage.Credentials) string {
	return strings.TrimRight(strings.TrimSpace(c.URL), "/") + "/rest/v1/" + Table
}

// errorMessage pulls the message out of a PostgREST error body.
func errorMessage(body []byte) string {
	var pgErr struct {
		Message string `json:"message"`
		Hint    string `json:"hint"`
	}
	if err := json.Unmarshal(body, &pgErr); err != nil || pgErr.Message == "" {
		return strings.TrimSpace(string(body))
	}
	if pgErr.Hint != "" {
		return pgErr.Message + " (" + pgErr.Hint + ")"
	}
	return pgErr.Message
}

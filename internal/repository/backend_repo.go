package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"willspark/internal/entities"
	apperrors "willspark/internal/errors"
)

const maxErrorBody = 64 << 10

// BackendRepository is the only integration point with the booking backend.
// Every call is a single attempt; callers decide how a failure is shown.
type BackendRepository struct {
	BaseURL string
	Client  *http.Client
}

func NewBackendRepository(baseURL string, timeout time.Duration) *BackendRepository {
	return &BackendRepository{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

// Login exchanges credentials for a bearer token and the user's profile.
func (r *BackendRepository) Login(ctx context.Context, username, password string) (*entities.LoginResponse, error) {
	var resp entities.LoginResponse
	err := r.do(ctx, http.MethodPost, "/api/auth/login", "", entities.LoginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, &apperrors.DecodeError{Op: "login", Err: fmt.Errorf("response has no token")}
	}
	return &resp, nil
}

// Get issues an authenticated GET and decodes the JSON body into out.
func (r *BackendRepository) Get(ctx context.Context, token, path string, out any) error {
	return r.do(ctx, http.MethodGet, path, token, nil, out)
}

// Post issues an authenticated POST with a JSON body.
func (r *BackendRepository) Post(ctx context.Context, token, path string, body, out any) error {
	return r.do(ctx, http.MethodPost, path, token, body, out)
}

func (r *BackendRepository) Put(ctx context.Context, token, path string, body, out any) error {
	return r.do(ctx, http.MethodPut, path, token, body, out)
}

func (r *BackendRepository) do(ctx context.Context, method, path, token string, body, out any) error {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := r.Client.Do(req)
	if err != nil {
		return &apperrors.NetworkError{Op: op, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		detail := errorDetail(io.LimitReader(res.Body, maxErrorBody))
		log.Printf("backend: %s -> %d %s", op, res.StatusCode, detail)
		return apperrors.NewAPIError(res.StatusCode, detail)
	}

	if out == nil {
		io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &apperrors.DecodeError{Op: op, Err: err}
	}
	return nil
}

// errorDetail extracts the server's message from an error body. FastAPI puts it
// under "detail"; other backends use "error". Non-string details are ignored.
func errorDetail(body io.Reader) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
		Error  json.RawMessage `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	for _, raw := range []json.RawMessage{payload.Detail, payload.Error} {
		var s string
		if len(raw) > 0 && json.Unmarshal(raw, &s) == nil && s != "" {
			return s
		}
	}
	return ""
}

// Package ssm reads parameters through the local Parameters and Secrets
// extension endpoint.
package ssm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/scrape"
)

const (
	// DefaultEndpoint is the address of the extension inside the runtime.
	DefaultEndpoint = "http://localhost:2773"

	// TokenHeader carries the session token that authorizes the request.
	TokenHeader = "X-Aws-Parameters-Secrets-Token"

	defaultTimeout   = 5 * time.Second
	maxErrorBodySize = 4096
)

var _ scrape.ParameterStore = (*ParameterStore)(nil)

// ParameterStore retrieves decrypted parameters by name.
type ParameterStore struct {
	client   *http.Client
	endpoint string
	token    string
}

// Option configures a ParameterStore.
type Option func(*ParameterStore)

// WithClient sets the HTTP client.
func WithClient(c *http.Client) Option {
	return func(s *ParameterStore) {
		s.client = c
	}
}

// WithEndpoint overrides DefaultEndpoint.
func WithEndpoint(endpoint string) Option {
	return func(s *ParameterStore) {
		s.endpoint = endpoint
	}
}

// NewParameterStore creates a ParameterStore authorized with token.
func NewParameterStore(token string, opts ...Option) *ParameterStore {
	s := &ParameterStore{
		client:   &http.Client{Timeout: defaultTimeout},
		endpoint: DefaultEndpoint,
		token:    token,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type getParameterResponse struct {
	Parameter struct {
		Name  string `json:"Name"`
		Value string `json:"Value"`
	} `json:"Parameter"`
}

// GetParameter returns the decrypted value stored at name.
// A missing token, an unknown parameter or an empty value is ECONFIG.
func (s *ParameterStore) GetParameter(ctx context.Context, name string) (string, error) {
	if s.token == "" {
		return "", scrape.Errorf(scrape.ECONFIG, "session token required to read parameter %q", name)
	}
	if name == "" {
		return "", scrape.Errorf(scrape.ECONFIG, "parameter name required")
	}

	u := fmt.Sprintf("%s/systemsmanager/parameters/get?name=%s&withDecryption=true", s.endpoint, url.QueryEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", scrape.Errorf(scrape.EINVALID, "invalid parameter endpoint: %v", err)
	}
	req.Header.Set(TokenHeader, s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", scrape.Errorf(scrape.ENETWORK, "get parameter %q: %v", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return "", scrape.Errorf(scrape.ECONFIG, "get parameter %q: status %d: %s", name, resp.StatusCode, body)
		}
		return "", scrape.Errorf(scrape.EINTERNAL, "get parameter %q: status %d: %s", name, resp.StatusCode, body)
	}

	var out getParameterResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", scrape.Errorf(scrape.EDECODE, "decode parameter %q: %v", name, err)
	}
	if out.Parameter.Value == "" {
		return "", scrape.Errorf(scrape.ECONFIG, "parameter %q is empty", name)
	}
	return out.Parameter.Value, nil
}

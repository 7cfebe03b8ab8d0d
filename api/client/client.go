// Package client binds the registration form operations to the service
// contract. Each operation issues exactly one request and is never retried.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/rmaciel/atendimento/api"
	"github.com/rmaciel/atendimento/internal/httpx"
)

// Registration is a typed client of the registration service
type Registration struct {
	endpoint string
	client   *httpx.Client
}

// New builds a Registration client against the provided endpoint
func New(endpoint string) *Registration {
	return &Registration{
		endpoint: endpoint,
		client:   httpx.NewClient(),
	}
}

// Register submits the registration record. The response body is not used.
func (r *Registration) Register(ctx context.Context, record api.RegisterCustomerRequest) error {
	url, err := urlJoin(r.endpoint, "cadastrar")
	if err != nil {
		return err
	}
	return r.client.PostJSON(ctx, url, record)
}

// Process triggers processing of the registered customers. The request
// carries no payload and the response body is not used.
func (r *Registration) Process(ctx context.Context) error {
	url, err := urlJoin(r.endpoint, "processar")
	if err != nil {
		return err
	}
	return r.client.Get(ctx, url)
}

// Statistics fetches the statistics of the latest processing run as raw
// JSON, leaving rendering to the caller
func (r *Registration) Statistics(ctx context.Context) (json.RawMessage, error) {
	url, err := urlJoin(r.endpoint, "estatisticas")
	if err != nil {
		return nil, err
	}

	body, err := r.client.GetRaw(ctx, url)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return raw, nil
}

func urlJoin(base string, pathSegments ...string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing endpoint: %w", err)
	}
	return u.JoinPath(pathSegments...).String(), nil
}

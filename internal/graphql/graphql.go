// Package graphql implements the wire protocol spoken to the catalog
// service: a single HTTP POST endpoint accepting {query, variables} and
// returning {data, errors}. It normalizes failures into the client's
// error taxonomy; callers never see raw HTTP or JSON errors.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/BehshadMoeini/rick-and-morty/pkg/errors"
)

// DefaultTimeout is the default timeout for catalog requests.
const DefaultTimeout = 30 * time.Second

// Request is the JSON body sent to the service.
type Request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// Error is one field-level error reported by the service.
type Error struct {
	Message string `json:"message"`
}

// Response is the JSON envelope returned by the service. Data is kept
// raw so each operation can decode its own shape.
type Response struct {
	Data   json.RawMessage `json:"data"`
	Errors []Error         `json:"errors,omitempty"`
}

// Client posts queries to a single GraphQL endpoint.
type Client struct {
	endpoint string
	http     *http.Client
}

// New creates a transport client for the given endpoint. A nil
// httpClient gets a default client with DefaultTimeout.
func New(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{endpoint: endpoint, http: httpClient}
}

// Endpoint returns the configured endpoint URL.
func (c *Client) Endpoint() string { return c.endpoint }

// Do posts the query and decodes the data envelope into out.
// Failures are normalized: network problems become TransportError,
// reported field errors become ServiceError with all messages joined.
func (c *Client) Do(ctx context.Context, operation, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(Request{Query: query, Variables: variables})
	if err != nil {
		return errors.WrapParse("json", "request body", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.NewTransportError(operation, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.NewTransportError(operation, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewTransportError(operation, err)
	}

	var envelope Response
	if err := json.Unmarshal(raw, &envelope); err != nil {
		if resp.StatusCode != http.StatusOK {
			return errors.NewServiceError(operation, []string{http.StatusText(resp.StatusCode)})
		}
		return errors.WrapParse("json", "response envelope", err)
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, len(envelope.Errors))
		for i, e := range envelope.Errors {
			messages[i] = e.Message
		}
		return errors.NewServiceError(operation, messages)
	}

	if resp.StatusCode != http.StatusOK {
		return errors.NewServiceError(operation, []string{http.StatusText(resp.StatusCode)})
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return errors.WrapParse("json", "response data", err)
		}
	}

	return nil
}

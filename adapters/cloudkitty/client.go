// Package cloudkitty provides a JSON-over-HTTP binding of the hashmap client
// for the CloudKitty v1 rating API.
package cloudkitty

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"cloudkitty-hashmap/core/hashmap"
	apperrors "cloudkitty-hashmap/internal/errors"
	"cloudkitty-hashmap/internal/logging"
)

// hashmapPath is the hashmap module root under the API endpoint
const hashmapPath = "/v1/rating/module_config/hashmap"

// Config holds client configuration
type Config struct {
	// Endpoint is the API base URL, e.g. http://cloudkitty:8889
	Endpoint string `json:"endpoint"`

	// Token is forwarded as X-Auth-Token when set
	Token string `json:"token,omitempty"`

	// Timeout for a single HTTP request
	Timeout time.Duration `json:"timeout"`
}

var _ hashmap.Client = (*Client)(nil)

// Client implements hashmap.Client
type Client struct {
	base       string
	token      string
	httpClient *http.Client
}

// New creates a client
func New(config *Config) *Client {
	return &Client{
		base:  strings.TrimRight(config.Endpoint, "/") + hashmapPath,
		token: config.Token,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// Services implements hashmap.Client
func (c *Client) Services() hashmap.ServiceAPI { return services{c} }

// Fields implements hashmap.Client
func (c *Client) Fields() hashmap.FieldAPI { return fields{c} }

// Mappings implements hashmap.Client
func (c *Client) Mappings() hashmap.MappingAPI { return mappings{c} }

// Groups implements hashmap.Client
func (c *Client) Groups() hashmap.GroupAPI { return groups{c} }

// do sends one request. A 404 wraps hashmap.ErrNotFound; any other status
// >= 400 becomes a network error carrying the status and body. out may be
// nil, and is left untouched when the response has no body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	target := c.base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return apperrors.Internal("failed to encode request", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return apperrors.Internal("failed to create request", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("X-Auth-Token", c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.TypeNetwork, "request failed", err)
	}
	defer resp.Body.Close()

	logging.Debug("rating api call",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Wrap(apperrors.TypeNetwork, "failed to read response", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		logging.Warn("rating api call rejected",
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("url", target),
			zap.Int("status", resp.StatusCode))
	}
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", method, path, hashmap.ErrNotFound)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return apperrors.Network(resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.Internal("failed to decode response", err)
	}
	return nil
}

// encodePayload turns flag values into a JSON body. Cost goes on the wire
// as a number; every other attribute stays a string.
func encodePayload(payload hashmap.Payload) map[string]interface{} {
	body := make(map[string]interface{}, len(payload))
	for k, v := range payload {
		if k == "cost" {
			if d, err := decimal.NewFromString(v); err == nil {
				body[k] = json.Number(d.String())
				continue
			}
		}
		body[k] = v
	}
	return body
}

type services struct{ c *Client }

func (s services) Create(ctx context.Context, payload hashmap.Payload) (*hashmap.Service, error) {
	var out hashmap.Service
	if err := s.c.do(ctx, http.MethodPost, "/services", nil, encodePayload(payload), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s services) List(ctx context.Context) ([]hashmap.Service, error) {
	var out struct {
		Services []hashmap.Service `json:"services"`
	}
	if err := s.c.do(ctx, http.MethodGet, "/services", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Services, nil
}

func (s services) Delete(ctx context.Context, serviceID string) error {
	return s.c.do(ctx, http.MethodDelete, "/services/"+url.PathEscape(serviceID), nil, nil, nil)
}

type fields struct{ c *Client }

func (f fields) Create(ctx context.Context, payload hashmap.Payload) (*hashmap.Field, error) {
	var out hashmap.Field
	if err := f.c.do(ctx, http.MethodPost, "/fields", nil, encodePayload(payload), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (f fields) List(ctx context.Context, serviceID string) ([]hashmap.Field, error) {
	var out struct {
		Fields []hashmap.Field `json:"fields"`
	}
	query := url.Values{"service_id": {serviceID}}
	if err := f.c.do(ctx, http.MethodGet, "/fields", query, nil, &out); err != nil {
		return nil, err
	}
	return out.Fields, nil
}

func (f fields) Delete(ctx context.Context, fieldID string) error {
	return f.c.do(ctx, http.MethodDelete, "/fields/"+url.PathEscape(fieldID), nil, nil, nil)
}

type mappings struct{ c *Client }

func (m mappings) Create(ctx context.Context, payload hashmap.Payload) (*hashmap.Mapping, error) {
	var out hashmap.Mapping
	if err := m.c.do(ctx, http.MethodPost, "/mappings", nil, encodePayload(payload), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m mappings) List(ctx context.Context, filter hashmap.MappingFilter) ([]hashmap.Mapping, error) {
	var out struct {
		Mappings []hashmap.Mapping `json:"mappings"`
	}
	query := url.Values{}
	if filter.ServiceID != "" {
		query.Set("service_id", filter.ServiceID)
	}
	if filter.FieldID != "" {
		query.Set("field_id", filter.FieldID)
	}
	if filter.GroupID != "" {
		query.Set("group_id", filter.GroupID)
	}
	if err := m.c.do(ctx, http.MethodGet, "/mappings", query, nil, &out); err != nil {
		return nil, err
	}
	return out.Mappings, nil
}

func (m mappings) Get(ctx context.Context, mappingID string) (*hashmap.Mapping, error) {
	var out hashmap.Mapping
	if err := m.c.do(ctx, http.MethodGet, "/mappings/"+url.PathEscape(mappingID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update sends the changed attributes. It returns nil when the service
// answers without a body.
func (m mappings) Update(ctx context.Context, mappingID string, payload hashmap.Payload) (*hashmap.Mapping, error) {
	body := encodePayload(payload)
	body["mapping_id"] = mappingID

	var out hashmap.Mapping
	if err := m.c.do(ctx, http.MethodPut, "/mappings/"+url.PathEscape(mappingID), nil, body, &out); err != nil {
		return nil, err
	}
	if out.MappingID == "" {
		return nil, nil
	}
	return &out, nil
}

func (m mappings) Delete(ctx context.Context, mappingID string) error {
	return m.c.do(ctx, http.MethodDelete, "/mappings/"+url.PathEscape(mappingID), nil, nil, nil)
}

type groups struct{ c *Client }

func (g groups) Create(ctx context.Context, payload hashmap.Payload) (*hashmap.Group, error) {
	var out hashmap.Group
	if err := g.c.do(ctx, http.MethodPost, "/groups", nil, encodePayload(payload), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g groups) List(ctx context.Context) ([]hashmap.Group, error) {
	var out struct {
		Groups []hashmap.Group `json:"groups"`
	}
	if err := g.c.do(ctx, http.MethodGet, "/groups", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Groups, nil
}

// Delete only sends recursive=true when asked; the service default is to
// keep the group's mappings.
func (g groups) Delete(ctx context.Context, groupID string, opts hashmap.DeleteGroupOptions) error {
	var query url.Values
	if opts.Recursive {
		query = url.Values{"recursive": {"true"}}
	}
	return g.c.do(ctx, http.MethodDelete, "/groups/"+url.PathEscape(groupID), query, nil, nil)
}

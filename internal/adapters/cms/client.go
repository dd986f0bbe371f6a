// Package cms reads published content from a Parse-compatible document
// store over its REST API and invokes its cloud functions.
package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	publishedStatus = "Published"
	defaultLimit    = 1000
)

// Config holds the store connection settings.
type Config struct {
	ServerURL   string
	AppID       string
	MasterKey   string
	SiteID      string
	ClassPrefix string
	// SourceZone interprets stored timestamps that carry no offset.
	SourceZone *time.Location
}

// Client talks to the document store. It implements domain.TalkStore,
// domain.ParticipantStore, domain.ContentStore and domain.RemoteFunctions.
type Client struct {
	httpClient *http.Client
	cfg        Config
	logger     *slog.Logger
}

// NewClient returns a client for cfg. A nil httpClient uses http.DefaultClient.
func NewClient(cfg Config, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.SourceZone == nil {
		cfg.SourceZone = time.UTC
	}
	cfg.ServerURL = strings.TrimRight(cfg.ServerURL, "/")
	return &Client{httpClient: httpClient, cfg: cfg, logger: logger}
}

type query struct {
	where   map[string]any
	include []string
	order   string
	limit   int
}

func published(extra map[string]any) map[string]any {
	where := map[string]any{"t__status": publishedStatus}
	maps.Copy(where, extra)
	return where
}

func (c *Client) className(name string) string {
	return c.cfg.ClassPrefix + name
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.ServerURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Parse-Application-Id", c.cfg.AppID)
	if c.cfg.MasterKey != "" {
		req.Header.Set("X-Parse-Master-Key", c.cfg.MasterKey)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// find runs a class query and decodes the results into dest, which must be
// a pointer to a slice.
func (c *Client) find(ctx context.Context, class string, q query, dest any) error {
	params := url.Values{}
	if q.where != nil {
		where, err := json.Marshal(q.where)
		if err != nil {
			return fmt.Errorf("failed to encode query: %w", err)
		}
		params.Set("where", string(where))
	}
	if len(q.include) > 0 {
		params.Set("include", strings.Join(q.include, ","))
	}
	if q.order != "" {
		params.Set("order", q.order)
	}
	if q.limit > 0 {
		params.Set("limit", strconv.Itoa(q.limit))
	}

	path := "/classes/" + url.PathEscape(c.className(class))
	if enc := params.Encode(); enc != "" {
		path += "?" + enc
	}
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", class, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cms returned status %d for %s", resp.StatusCode, class)
	}

	var envelope struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", class, err)
	}
	if len(envelope.Results) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Results, dest); err != nil {
		return fmt.Errorf("failed to decode %s results: %w", class, err)
	}
	return nil
}

type functionError struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// call invokes a cloud function and decodes its result into dest. Errors
// reported by the function itself come back as *domain.RemoteError.
func (c *Client) call(ctx context.Context, name string, params map[string]any, dest any) error {
	if c.cfg.SiteID != "" {
		params["siteId"] = c.cfg.SiteID
	}
	body, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to encode %s params: %w", name, err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/functions/"+url.PathEscape(name), bytes.NewReader(body))
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", name, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", name, err)
	}
	if resp.StatusCode != http.StatusOK {
		var fe functionError
		if json.Unmarshal(raw, &fe) == nil && fe.Error != "" {
			return remoteError(name, fe.Error)
		}
		return fmt.Errorf("cms returned status %d for %s", resp.StatusCode, name)
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", name, err)
	}
	if dest == nil || len(envelope.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Result, dest); err != nil {
		return fmt.Errorf("failed to decode %s result: %w", name, err)
	}
	return nil
}

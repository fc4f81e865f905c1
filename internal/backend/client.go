package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Endpoint names used for latency stats.
const (
	EndpointMetadata = "metadata"
	EndpointSummary  = "summary"
	EndpointAsk      = "ask"
	EndpointInsights = "insights"
	EndpointEntities = "entities"
)

const maxResponseBytes = 4 << 20

// Timeouts are the per-action deadlines each request is raced against.
type Timeouts struct {
	Metadata time.Duration
	Summary  time.Duration
	Ask      time.Duration
	Insights time.Duration
	Entities time.Duration
}

func DefaultTimeouts() Timeouts {
	return Timeouts{
		Metadata: 10 * time.Second,
		Summary:  120 * time.Second,
		Ask:      60 * time.Second,
		Insights: 90 * time.Second,
		Entities: 120 * time.Second,
	}
}

// Client talks to the summarization backend and the oEmbed endpoint.
// Each call issues exactly one request; nothing is retried.
type Client struct {
	baseURL    string
	oembedURL  string
	timeouts   Timeouts
	httpClient *http.Client

	Stats *Stats
}

func NewClient(baseURL, oembedURL string, timeouts Timeouts) *Client {
	def := DefaultTimeouts()
	fill := func(d *time.Duration, fallback time.Duration) {
		if *d <= 0 {
			*d = fallback
		}
	}
	fill(&timeouts.Metadata, def.Metadata)
	fill(&timeouts.Summary, def.Summary)
	fill(&timeouts.Ask, def.Ask)
	fill(&timeouts.Insights, def.Insights)
	fill(&timeouts.Entities, def.Entities)

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		oembedURL:  oembedURL,
		timeouts:   timeouts,
		httpClient: &http.Client{},
		Stats:      NewStats(time.Hour),
	}
}

// envelope is the backend's response wrapper.
type envelope struct {
	Error   bool            `json:"error"`
	Data    json.RawMessage `json:"data"`
	Metrics *Metrics        `json:"metrics,omitempty"`
}

type askRequest struct {
	VideoID  string     `json:"video_id"`
	Question string     `json:"question"`
	History  []Exchange `json:"history"`
}

type oembedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Metadata fetches title, author and thumbnail for a video.
func (c *Client) Metadata(ctx context.Context, videoID string) (*Metadata, error) {
	watch := WatchURL(videoID)
	u, err := withQuery(c.oembedURL, url.Values{"url": {watch}, "format": {"json"}})
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, EndpointMetadata, c.timeouts.Metadata, http.MethodGet, u, nil)
	if err != nil {
		var srvErr *ServerError
		if errors.As(err, &srvErr) && (srvErr.StatusCode == http.StatusNotFound || srvErr.StatusCode == http.StatusUnauthorized) {
			srvErr.Message = "video not found or not embeddable"
		}
		return nil, err
	}

	var o oembedResponse
	if err := json.Unmarshal(body, &o); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", EndpointMetadata, ErrMalformed, err)
	}
	meta := &Metadata{
		VideoID:      videoID,
		Title:        o.Title,
		Author:       o.AuthorName,
		ThumbnailURL: o.ThumbnailURL,
		WatchURL:     watch,
	}
	if meta.ThumbnailURL == "" {
		meta.ThumbnailURL = "https://i.ytimg.com/vi/" + url.PathEscape(videoID) + "/hqdefault.jpg"
	}
	return meta, nil
}

// Summary fetches the generated summary text of a video.
func (c *Client) Summary(ctx context.Context, videoID string, kind SummaryType) (string, error) {
	if kind == "" {
		kind = SummaryShort
	}
	u := c.baseURL + "/api/summary?" + url.Values{"v": {videoID}, "type": {string(kind)}}.Encode()
	env, err := c.envelope(ctx, EndpointSummary, c.timeouts.Summary, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	return decodeText(EndpointSummary, env.Data)
}

// Ask sends a question together with the prior exchanges of the session.
func (c *Client) Ask(ctx context.Context, videoID, question string, history []Exchange) (*Answer, error) {
	if history == nil {
		history = []Exchange{}
	}
	req := askRequest{VideoID: videoID, Question: question, History: history}
	env, err := c.envelope(ctx, EndpointAsk, c.timeouts.Ask, http.MethodPost, c.baseURL+"/api/ask", req)
	if err != nil {
		return nil, err
	}
	text, err := decodeText(EndpointAsk, env.Data)
	if err != nil {
		return nil, err
	}
	return &Answer{Text: text, Metrics: env.Metrics}, nil
}

// Insights fetches suggested questions and key insights. The payload is
// either an HTML fragment or markdown-like text.
func (c *Client) Insights(ctx context.Context, videoID string) (string, error) {
	u := c.baseURL + "/api/get-insights?" + url.Values{"v": {videoID}}.Encode()
	env, err := c.envelope(ctx, EndpointInsights, c.timeouts.Insights, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	return decodeText(EndpointInsights, env.Data)
}

// Entities fetches the entity report of a video.
func (c *Client) Entities(ctx context.Context, videoID string) (*EntityReport, error) {
	u := c.baseURL + "/api/extract-entities?" + url.Values{"v": {videoID}}.Encode()
	env, err := c.envelope(ctx, EndpointEntities, c.timeouts.Entities, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return decodeReport(env.Data)
}

// Close releases resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

func (c *Client) envelope(ctx context.Context, endpoint string, timeout time.Duration, method, u string, payload any) (*envelope, error) {
	body, err := c.do(ctx, endpoint, timeout, method, u, payload)
	if err != nil {
		return nil, err
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", endpoint, ErrMalformed, err)
	}
	if env.Error {
		return nil, &ServerError{Message: dataMessage(env.Data)}
	}
	return &env, nil
}

// do issues one request raced against timeout and returns the raw body of a
// 200 response.
func (c *Client) do(ctx context.Context, endpoint string, timeout time.Duration, method, u string, payload any) (_ []byte, err error) {
	start := time.Now()
	defer func() {
		c.Stats.Record(endpoint, time.Since(start).Milliseconds(), err != nil)
	}()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, transportError(ctx, endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, transportError(ctx, endpoint, err)
	}

	if resp.StatusCode != http.StatusOK {
		var env envelope
		if json.Unmarshal(respBody, &env) == nil && env.Error {
			return nil, &ServerError{StatusCode: resp.StatusCode, Message: dataMessage(env.Data)}
		}
		msg := strings.TrimSpace(string(respBody))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &ServerError{StatusCode: resp.StatusCode, Message: msg}
	}
	return respBody, nil
}

// transportError classifies a failed round trip. A fired deadline is a
// timeout, a caller cancellation is passed through, anything else is a
// network failure.
func transportError(ctx context.Context, endpoint string, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", endpoint, ErrTimeout)
	case ctx.Err() != nil:
		return fmt.Errorf("%s: %w", endpoint, ctx.Err())
	}
	return fmt.Errorf("%s: %w: %v", endpoint, ErrNetwork, err)
}

func decodeText(endpoint string, data json.RawMessage) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", fmt.Errorf("%s: %w: data is not text", endpoint, ErrMalformed)
	}
	return s, nil
}

// decodeReport accepts a report object, a string carrying a (possibly
// fenced) report object, or any other string as raw fallback text.
func decodeReport(data json.RawMessage) (*EntityReport, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return &EntityReport{}, nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, fmt.Errorf("%s: %w: %v", EndpointEntities, ErrMalformed, err)
		}
		if inner := stripCodeBlock(s); strings.HasPrefix(inner, "{") {
			var r EntityReport
			if json.Unmarshal([]byte(inner), &r) == nil {
				SanitizeReport(&r)
				return &r, nil
			}
		}
		return &EntityReport{Raw: s}, nil
	}

	var r EntityReport
	if err := json.Unmarshal(trimmed, &r); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", EndpointEntities, ErrMalformed, err)
	}
	SanitizeReport(&r)
	return &r, nil
}

func dataMessage(data json.RawMessage) string {
	var s string
	if json.Unmarshal(data, &s) == nil {
		return s
	}
	if msg := strings.TrimSpace(string(data)); msg != "" && msg != "null" {
		return msg
	}
	return "unknown error"
}

var codeBlockRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

func stripCodeBlock(s string) string {
	s = strings.TrimSpace(s)
	if m := codeBlockRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return s
}

func withQuery(base string, q url.Values) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", base, err)
	}
	merged := u.Query()
	for k, v := range q {
		merged[k] = v
	}
	u.RawQuery = merged.Encode()
	return u.String(), nil
}

// Package discord is a REST client for the application command endpoints
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"wikicord/internal/core/interaction"
	perr "wikicord/internal/platform/errors"
	"wikicord/internal/platform/logger"
	"wikicord/internal/platform/metrics"
)

const (
	// DefaultBaseURL is the versioned REST root
	DefaultBaseURL = "https://discord.com/api/v10"

	defaultTimeout = 15 * time.Second
	defaultUA      = "DiscordBot (wikicord, dev)"
	maxBody        = 1 << 20
	opRegister     = "register commands"
)

// StatusError wraps a non-2xx REST answer
type StatusError struct {
	Status int
	Body   string
}

// Error interface
func (e *StatusError) Error() string {
	return "discord returned " + strconv.Itoa(e.Status) + ": " + e.Body
}

// HTTPStatus interface
func (e *StatusError) HTTPStatus() int { return e.Status }

// Options configures the Client
type Options struct {
	BaseURL       string
	ApplicationID string
	BotToken      string
	// GuildID scopes registration to one guild; empty registers globally
	GuildID   string
	UserAgent string
	Timeout   time.Duration
}

// Registered is one command as stored by Discord
type Registered struct {
	ID            string `json:"id"`
	ApplicationID string `json:"application_id"`
	GuildID       string `json:"guild_id,omitempty"`
	Name          string `json:"name"`
	Version       string `json:"version"`
}

// Client talks to the Discord REST API with a bot token
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time
}

// NewClient creates a Client with defaults; hc may be nil
func NewClient(o Options, hc *http.Client) *Client {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if hc == nil {
		hc = &http.Client{Timeout: o.Timeout}
	}
	return &Client{http: hc, opts: o, log: *logger.Named("discord"), now: time.Now}
}

// CommandsPath is the bulk overwrite path for the configured scope
func (c *Client) CommandsPath() string {
	app := url.PathEscape(c.opts.ApplicationID)
	if c.opts.GuildID != "" {
		return "/applications/" + app + "/guilds/" + url.PathEscape(c.opts.GuildID) + "/commands"
	}
	return "/applications/" + app + "/commands"
}

// RegisterCommands overwrites the application's commands with schemas
func (c *Client) RegisterCommands(ctx context.Context, schemas []interaction.CommandSchema) ([]Registered, error) {
	if c.opts.ApplicationID == "" || c.opts.BotToken == "" {
		return nil, perr.InvalidArgf("discord application id and bot token are required")
	}
	if schemas == nil {
		schemas = []interaction.CommandSchema{}
	}
	payload, err := json.Marshal(schemas)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "encode command schemas")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.opts.BaseURL+c.CommandsPath(), bytes.NewReader(payload))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "discord new request failed")
	}
	req.Header.Set("Authorization", "Bot "+c.opts.BotToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.opts.UserAgent)

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveUpstream("discord", opRegister, "error", c.now().Sub(start))
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "discord do failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	lat := c.now().Sub(start)
	metrics.ObserveUpstream("discord", opRegister, strconv.Itoa(resp.StatusCode), lat)
	c.log.Debug().
		Str("path", c.CommandsPath()).
		Int("status", resp.StatusCode).
		Dur("elapsed", lat).
		Msg("discord response")
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "discord read failed")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var out []Registered
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUpstream, "decode registered commands")
	}
	return out, nil
}

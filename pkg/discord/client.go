package discord

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

	"horizon_backend/internal/config"
)

// Client is a minimal Discord REST client covering the OAuth2 code
// exchange, guild member lookup and the two bot notifications the site
// sends (application channel posts and decision DMs).
type Client struct {
	cfg    config.DiscordConfig
	client *http.Client
}

func NewClient(cfg config.DiscordConfig) *Client {
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	Scope        string `json:"scope"`
}

type DiscordUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

type GuildMember struct {
	Nick  string   `json:"nick"`
	Roles []string `json:"roles"`
}

type GuildRole struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    int    `json:"color"`
	Position int    `json:"position"`
}

type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Author      *EmbedAuthor `json:"author,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
}

type EmbedAuthor struct {
	Name string `json:"name"`
}

type EmbedField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type EmbedFooter struct {
	Text string `json:"text"`
}

// ExchangeCode swaps an OAuth2 authorization code for an access token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", c.cfg.RedirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIBaseURL+"/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var token TokenResponse
	if err := c.do(req, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// CurrentUser fetches the authenticated user's profile with their own
// access token.
func (c *Client) CurrentUser(ctx context.Context, accessToken string) (*DiscordUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.APIBaseURL+"/users/@me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	var user DiscordUser
	if err := c.do(req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GuildMember fetches the member record (role IDs included) from the
// configured guild using the bot token.
func (c *Client) GuildMember(ctx context.Context, userID string) (*GuildMember, error) {
	endpoint := fmt.Sprintf("%s/guilds/%s/members/%s", c.cfg.APIBaseURL, c.cfg.GuildID, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bot "+c.cfg.BotToken)

	var member GuildMember
	if err := c.do(req, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// GuildRoles lists the configured guild's roles, used to turn a member's
// role IDs into a display name and color.
func (c *Client) GuildRoles(ctx context.Context) ([]GuildRole, error) {
	endpoint := fmt.Sprintf("%s/guilds/%s/roles", c.cfg.APIBaseURL, c.cfg.GuildID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bot "+c.cfg.BotToken)

	var roles []GuildRole
	if err := c.do(req, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// SendChannelMessage posts an embed (with optional role mention content)
// to a channel.
func (c *Client) SendChannelMessage(ctx context.Context, channelID, content string, embeds []Embed) error {
	endpoint := fmt.Sprintf("%s/channels/%s/messages", c.cfg.APIBaseURL, channelID)
	return c.postJSON(ctx, endpoint, map[string]interface{}{
		"content": content,
		"embeds":  embeds,
	})
}

// SendDirectMessage opens (or reuses) the DM channel with a user and sends
// an embed into it.
func (c *Client) SendDirectMessage(ctx context.Context, userID string, embeds []Embed) error {
	req, err := c.newJSONRequest(ctx, http.MethodPost, c.cfg.APIBaseURL+"/users/@me/channels", map[string]string{
		"recipient_id": userID,
	})
	if err != nil {
		return err
	}

	var channel struct {
		ID string `json:"id"`
	}
	if err := c.do(req, &channel); err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/channels/%s/messages", c.cfg.APIBaseURL, channel.ID)
	return c.postJSON(ctx, endpoint, map[string]interface{}{
		"embeds": embeds,
	})
}

func (c *Client) newJSONRequest(ctx context.Context, method, endpoint string, body interface{}) (*http.Request, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bot "+c.cfg.BotToken)
	return req, nil
}

func (c *Client) postJSON(ctx context.Context, endpoint string, body interface{}) error {
	req, err := c.newJSONRequest(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("discord api: %s returned %d: %s", req.URL.Path, resp.StatusCode, string(data))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

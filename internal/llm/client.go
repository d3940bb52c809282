// Package llm is the HTTP client for the language-model gateway that
// plays the automated side of the game.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the gateway's /generate and /solve endpoints. Both
// return a bare JSON string. A per-request timeout applies on top of the
// round timer so a silent gateway cannot wedge a round whose countdown is
// not running.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GenerateDescription asks the gateway to describe the word without using
// it or any banned term. The gateway is trusted to enforce the ban.
func (c *Client) GenerateDescription(ctx context.Context, word string, bannedTerms []string) (string, error) {
	query := url.Values{}
	query.Set("word", word)
	query.Set("banned_words", strings.Join(bannedTerms, ","))

	var description string
	if err := c.getJSON(ctx, "/generate", query, &description); err != nil {
		return "", err
	}
	return description, nil
}

// GuessWord asks the gateway for one guess over the description plus the
// hint/history context. The secret word travels along only for the
// gateway's local self-evaluation. The response is normalized: leading
// English articles stripped, trimmed, lowercased.
func (c *Client) GuessWord(ctx context.Context, description, history, word string) (string, error) {
	query := url.Values{}
	query.Set("description", description)
	query.Set("history", history)
	query.Set("word", word)

	var guess string
	if err := c.getJSON(ctx, "/solve", query, &guess); err != nil {
		return "", err
	}
	return stripArticles(guess), nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out *string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gateway %s returned status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("gateway %s: decoding body: %w", path, err)
	}
	return nil
}

// stripArticles removes one leading "a ", "an ", or "the " and normalizes
// the guess for comparison.
func stripArticles(guess string) string {
	guess = strings.ToLower(strings.TrimSpace(guess))
	for _, article := range []string{"an ", "a ", "the "} {
		if strings.HasPrefix(guess, article) {
			guess = strings.TrimSpace(strings.TrimPrefix(guess, article))
			break
		}
	}
	return guess
}

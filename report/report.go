// Package report delivers story view notifications to the stories service.
// Deduplication within a viewing session is the caller's job; the server
// additionally ignores repeated views across sessions.
package report

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/viper"
	"github.com/storyline-cli/storyline/auth"
	"github.com/storyline-cli/storyline/constant"
	"github.com/storyline-cli/storyline/key"
	"github.com/storyline-cli/storyline/network"
	"github.com/storyline-cli/storyline/story"
)

// Client posts view notifications. It implements viewer.Reporter.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient builds a Client against the configured stories service.
func NewClient() *Client {
	return &Client{
		BaseURL: strings.TrimRight(viper.GetString(key.ServerURL), "/"),
		HTTP:    network.Client,
	}
}

// ReportViewed marks the item as viewed on the server.
func (c *Client) ReportViewed(item *story.Item) error {
	endpoint := fmt.Sprintf("%s/stories/%s/view", c.BaseURL, item.ID)

	req, err := http.NewRequest(http.MethodPost, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build view request: %w", err)
	}
	req.Header.Set("User-Agent", constant.UserAgent)
	if token, err := auth.Token(); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("report view of story %s: %w", item.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("report view of story %s: server returned %s", item.ID, resp.Status)
	}
	return nil
}

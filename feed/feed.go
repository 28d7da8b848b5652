// Package feed retrieves the story feed from the stories service and
// organizes it into per-owner bundles for presentation.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/storyline-cli/storyline/auth"
	"github.com/storyline-cli/storyline/constant"
	"github.com/storyline-cli/storyline/key"
	"github.com/storyline-cli/storyline/log"
	"github.com/storyline-cli/storyline/network"
	"github.com/storyline-cli/storyline/story"
)

// Client fetches the story feed.
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

// storyResponse mirrors the service's feed entry payload.
type storyResponse struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`
	User   struct {
		Username string `json:"username"`
	} `json:"user"`
	MediaURL  string    `json:"media_url"`
	MediaType string    `json:"media_type"`
	Caption   *string   `json:"caption"`
	ViewCount int       `json:"view_count"`
	HasViewed bool      `json:"has_viewed"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Fetch retrieves the story feed, newest first. Items that have already
// expired or carry an unknown media kind are dropped with a log line rather
// than breaking the whole feed.
func (c *Client) Fetch(ctx context.Context) ([]story.Item, error) {
	limit := viper.GetInt(key.FeedLimit)
	endpoint := fmt.Sprintf("%s/stories/feed?limit=%d", c.BaseURL, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Accept", "application/json")
	if token, err := auth.Token(); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch feed: server returned %s", resp.Status)
	}

	var entries []storyResponse
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}

	items := make([]story.Item, 0, len(entries))
	for _, e := range entries {
		item, ok := e.toItem()
		if !ok {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (e *storyResponse) toItem() (story.Item, bool) {
	kind := story.Kind(e.MediaType)
	if !kind.Valid() {
		log.Warnf("feed: dropping story %d with unknown media type %q", e.ID, e.MediaType)
		return story.Item{}, false
	}

	item := story.Item{
		ID:        strconv.FormatInt(e.ID, 10),
		OwnerID:   strconv.FormatInt(e.UserID, 10),
		OwnerName: e.User.Username,
		Kind:      kind,
		MediaURI:  e.MediaURL,
		CreatedAt: e.CreatedAt,
		ExpiresAt: e.ExpiresAt,
		ViewCount: e.ViewCount,
	}
	if e.Caption != nil && *e.Caption != "" {
		item.Caption = mo.Some(*e.Caption)
	}

	if item.Expired() {
		log.Infof("feed: dropping expired story %s from %s", item.ID, item.OwnerName)
		return story.Item{}, false
	}
	return item, true
}

package gtfsrt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// MTABaseURL is the MTA subway feed endpoint; feed ids such as "gtfs-ace" are appended to it.
const MTABaseURL = "https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/nyct%2F"

// ErrStaleFeed is returned by CheckFresh when a feed header is older than the allowed age.
var ErrStaleFeed = errors.New("stale feed")

// Source resolves feed identifiers to locations and returns decoded feeds.
type Source struct {
	client  *Client
	baseURL string
}

// NewSource creates a Source. An empty baseURL makes every feed id a location on its own.
func NewSource(client *Client, baseURL string) *Source {
	return &Source{client: client, baseURL: baseURL}
}

// Location returns the URL or path a feed id is fetched from.
func (s *Source) Location(feedID string) string {
	switch {
	case isHTTP(feedID), strings.HasPrefix(feedID, "file://"):
		return feedID
	case strings.HasPrefix(feedID, "/"), strings.HasPrefix(feedID, "./"):
		return feedID
	case s.baseURL == "":
		return feedID
	}
	return s.baseURL + feedID
}

// Fetch fetches and decodes the feed for feedID.
func (s *Source) Fetch(ctx context.Context, feedID string) (*Feed, error) {
	b, err := s.client.Fetch(ctx, s.Location(feedID))
	if err != nil {
		return nil, err
	}
	feed, err := Decode(b)
	if err != nil {
		return nil, fmt.Errorf("feed %s: %w", feedID, err)
	}
	return feed, nil
}

// CheckFresh returns ErrStaleFeed when the feed header is older than maxAge at now.
// Feeds without a header timestamp and a non-positive maxAge always pass.
func CheckFresh(feed *Feed, now time.Time, maxAge time.Duration) error {
	if feed == nil || maxAge <= 0 || feed.Timestamp.IsZero() {
		return nil
	}
	if age := now.Sub(feed.Timestamp); age > maxAge {
		return fmt.Errorf("%w: header is %s old (max %s)", ErrStaleFeed, age.Truncate(time.Second), maxAge)
	}
	return nil
}

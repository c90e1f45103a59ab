package gateways

import (
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ochairo/relgate/internal/domain/entities"
	ifgateways "github.com/ochairo/relgate/internal/domain/interfaces/gateways"
)

// FeedClient fetches the project's release history feed from the package
// index and extracts the most recently published version
type FeedClient struct {
	httpClient *http.Client
	url        string
	titleIndex int
}

var _ ifgateways.PublishedVersionSource = (*FeedClient)(nil)

// NewFeedClient creates a feed client for the configured release feed
func NewFeedClient(cfg entities.FeedConfig) *FeedClient {
	return &FeedClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second, // Reasonable timeout for version checks
		},
		url:        cfg.URL,
		titleIndex: cfg.TitleIndex,
	}
}

// LatestPublishedVersion returns the latest version on the package index.
// Every failure mode (network error, non-200, malformed XML, too few titles)
// collapses to NotFound: an unreachable index only disables the checks that
// depend on it, it never fails the gate run.
func (c *FeedClient) LatestPublishedVersion(ctx context.Context) entities.OptionalVersion {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return entities.NoVersion()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return entities.NoVersion()
	}
	//nolint:errcheck // Defer close
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entities.NoVersion()
	}

	titles, err := collectTitles(resp.Body)
	if err != nil {
		return entities.NoVersion()
	}

	return nthReleaseTitle(titles, c.titleIndex)
}

// collectTitles returns the text of every <title> element in document order
func collectTitles(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)

	var titles []string
	var inTitle bool
	var text strings.Builder

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "title" {
				inTitle = true
				text.Reset()
			}
		case xml.CharData:
			if inTitle {
				text.Write(t)
			}
		case xml.EndElement:
			if t.Name.Local == "title" {
				inTitle = false
				titles = append(titles, text.String())
			}
		}
	}

	return titles, nil
}

// nthReleaseTitle picks the title at the given index. The feed's first title
// is the channel's own name, so the latest release normally sits at index 1;
// the index is configuration, not a scattered literal.
func nthReleaseTitle(titles []string, index int) entities.OptionalVersion {
	if index < 0 || index >= len(titles) {
		return entities.NoVersion()
	}
	return entities.FoundVersion(strings.TrimSpace(titles[index]))
}

package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nupull/nupull/pkg/cache"
	"github.com/nupull/nupull/pkg/httputil"
	"github.com/nupull/nupull/pkg/resolve"
)

const httpTimeout = 10 * time.Second

// ErrNetwork is returned for HTTP failures (timeouts, connection errors,
// 5xx responses) while querying the feed.
var ErrNetwork = errors.New("network error")

// Client queries the package feed with response caching and retries.
// It implements [resolve.Feed]. Safe for concurrent use.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	ttl     time.Duration
	baseURL string
	refresh bool
}

// NewClient creates a feed client for baseURL. Responses are cached in
// backend for ttl; pass a [cache.NullCache] to disable caching. When
// refresh is true the cache is bypassed on every query.
func NewClient(baseURL string, backend cache.Cache, ttl time.Duration, refresh bool) *Client {
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   backend,
		ttl:     ttl,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		refresh: refresh,
	}
}

// Versions returns every candidate record the feed knows for id, in feed
// order. Ids are normalized to lower case before querying. An unknown id
// returns an error wrapping [resolve.ErrNotFound]; transient HTTP failures
// are retried with backoff before an [ErrNetwork] error surfaces.
func (c *Client) Versions(ctx context.Context, id string) ([]*resolve.Package, error) {
	id = NormalizeID(id)
	key := "feed:" + c.baseURL + ":" + id

	raw, err := c.cached(ctx, key, func() ([]byte, error) {
		return c.fetch(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	var index versionIndex
	if err := json.Unmarshal(raw, &index); err != nil {
		return nil, fmt.Errorf("decode feed response for %s: %w", id, err)
	}
	return convert(index)
}

func (c *Client) cached(ctx context.Context, key string, fetch func() ([]byte, error)) ([]byte, error) {
	if !c.refresh {
		if data, hit, _ := c.cache.Get(ctx, key); hit {
			return data, nil
		}
	}

	var data []byte
	err := httputil.RetryWithBackoff(ctx, func() error {
		var err error
		data, err = fetch()
		return err
	})
	if err != nil {
		return nil, err
	}
	_ = c.cache.Set(ctx, key, data, c.ttl)
	return data, nil
}

func (c *Client) fetch(ctx context.Context, id string) ([]byte, error) {
	u := fmt.Sprintf("%s/packages/%s/index.json", c.baseURL, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, httputil.Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode, id); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, httputil.Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	return data, nil
}

func checkStatus(code int, id string) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: feed has no package %s", resolve.ErrNotFound, id)
	case code >= 500:
		return httputil.Retryable(fmt.Errorf("%w: status %d", ErrNetwork, code))
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

// convert maps wire records onto resolve.Package values, flattening
// dependency groups into framework-tagged specs in declared order.
func convert(index versionIndex) ([]*resolve.Package, error) {
	packages := make([]*resolve.Package, 0, len(index.Versions))
	for _, rec := range index.Versions {
		pkg := &resolve.Package{
			ID:          rec.ID,
			Version:     rec.Version,
			Title:       rec.Title,
			Prerelease:  rec.IsPrerelease,
			Latest:      rec.IsLatestVersion,
			DownloadURL: rec.DownloadURL,
		}
		for _, group := range rec.DependencyGroups {
			for _, dep := range group.Dependencies {
				rng, err := resolve.ParseRange(dep.Range)
				if err != nil {
					return nil, fmt.Errorf("dependency %s of %s %s: %w", dep.ID, rec.ID, rec.Version, err)
				}
				pkg.Dependencies = append(pkg.Dependencies, resolve.DependencySpec{
					ID:        dep.ID,
					Range:     rng,
					Framework: group.TargetFramework,
				})
			}
		}
		packages = append(packages, pkg)
	}
	return packages, nil
}

// NormalizeID converts a package id to its canonical lower-case form.
func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

var _ resolve.Feed = (*Client)(nil)

package emoji

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
)

// DefaultBaseURL is the emoji-api.com endpoint listing and searching emojis.
const DefaultBaseURL = "https://emoji-api.com/emojis"

// ErrMalformedResponse is the cause of errors returned when the upstream body
// is not json.
var ErrMalformedResponse = errors.New("emoji api response is not json")

// Client performs lookups against the emoji api with a fixed access key.
type Client struct {
	BaseURL    string
	AccessKey  string
	HTTPClient *http.Client
}

// Option configures a Client built by NewClient.
type Option func(*Client)

// WithBaseURL points the client at another endpoint. An empty url keeps
// DefaultBaseURL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.BaseURL = baseURL
		}
	}
}

// WithHTTPClient replaces the http client used for lookups.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.HTTPClient = hc
		}
	}
}

// WithTimeout sets the timeout of the client's http client. Zero leaves the
// http client default in place; the request context still bounds every call.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient()
		hc.Timeout = timeout
		c.HTTPClient = &hc
	}
}

// NewClient returns a client for DefaultBaseURL using accessKey, adjusted by
// opts in order.
//
// The access key is not validated, a missing key is reported by the upstream.
func NewClient(accessKey string, opts ...Option) *Client {
	c := &Client{
		BaseURL:    DefaultBaseURL,
		AccessKey:  accessKey,
		HTTPClient: &http.Client{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// URL returns the upstream url for query. The search parameter is only added
// for a non empty query and decodes to exactly the query text.
func (c *Client) URL(query string) string {
	params := url.Values{}
	params.Set("access_key", c.AccessKey)

	if query != "" {
		params.Set("search", query)
	}

	return c.BaseURL + "?" + params.Encode()
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}

	return http.DefaultClient
}

// Lookup searches the emoji api for query, or lists every emoji when query is
// empty. The upstream status code is ignored; only the body decides the
// outcome.
func (c *Client) Lookup(ctx context.Context, query string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(query), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed building emoji api request")
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		// the url error embeds the access key
		return nil, errors.Wrap(redactError(err), "failed requesting emoji api")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed reading emoji api response (status %d)", resp.StatusCode)
	}

	result, err := ParseResult(body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed parsing emoji api response (status %d)", resp.StatusCode)
	}

	return result, nil
}

// RedactURL returns raw with the access_key parameter replaced so that it can
// be logged.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "[unparseable url]"
	}

	params := u.Query()
	if params.Has("access_key") {
		params.Set("access_key", "REDACTED")
		u.RawQuery = params.Encode()
	}

	return u.String()
}

func redactError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return &url.Error{Op: uerr.Op, URL: RedactURL(uerr.URL), Err: uerr.Err}
	}

	return err
}

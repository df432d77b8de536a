package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/luminastudy/studygen/internal/cache"
)

// FallbackName is used when neither the response headers nor the URL path
// yield a usable filename.
const FallbackName = "document"

// Client wraps http.Client for document downloads. Each Get is a single
// bounded attempt: retry policy belongs to the caller, not here.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	// PerRequestTimeout bounds each request.
	PerRequestTimeout time.Duration
	// Optional on-disk cache for downloaded document bytes.
	Cache *cache.DocCache
	// RedirectMaxHops caps redirect following to avoid loops. Zero means default (5).
	RedirectMaxHops int
	// MaxConcurrent limits concurrent in-flight requests per client instance.
	// Zero means unlimited.
	MaxConcurrent int

	limiter     chan struct{}
	limiterOnce sync.Once
}

// Result is a downloaded document with the name the origin declared for it.
type Result struct {
	Body         []byte
	ContentType  string
	DeclaredName string
}

// Get downloads the document at rawURL. A non-2xx status is an error; the
// declared name is resolved from the Content-Disposition filename, else the
// percent-decoded URL path base, else FallbackName.
func (c *Client) Get(ctx context.Context, rawURL string) (Result, error) {
	if c.Cache != nil {
		if body, meta, err := c.Cache.Load(ctx, rawURL); err == nil {
			return Result{Body: body, ContentType: meta.ContentType, DeclaredName: meta.DeclaredName}, nil
		}
	}

	c.acquire()
	defer c.release()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Result{}, fmt.Errorf("new request: %w", err)
	}
	if req.URL == nil || !isHTTPScheme(req.URL) {
		return Result{}, fmt.Errorf("unsupported URL scheme: %q", rawURL)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	httpClient := c.getHTTPClient()
	if c.PerRequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(req.Context(), c.PerRequestTimeout)
		defer cancel()
		req = req.WithContext(ctx)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read body: %w", err)
	}

	res := Result{
		Body:         body,
		ContentType:  resp.Header.Get("Content-Type"),
		DeclaredName: declaredName(resp.Header.Get("Content-Disposition"), resp.Request.URL),
	}
	if c.Cache != nil {
		_ = c.Cache.Save(ctx, rawURL, cache.DocMeta{ContentType: res.ContentType, DeclaredName: res.DeclaredName}, body)
	}
	return res, nil
}

// declaredName resolves the filename the origin declared for a download.
// Resolution order: Content-Disposition filename attribute, then the
// percent-decoded path component of the final URL, then FallbackName.
func declaredName(disposition string, u *url.URL) string {
	if disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil {
			if name := strings.TrimSpace(params["filename"]); name != "" {
				return name
			}
		}
	}
	if u != nil {
		p := u.Path
		if unescaped, err := url.PathUnescape(p); err == nil {
			p = unescaped
		}
		if base := path.Base(p); base != "." && base != "/" && base != "" {
			return base
		}
	}
	return FallbackName
}

func (c *Client) getHTTPClient() *http.Client {
	if c.HTTPClient != nil {
		// Clone to attach our redirect policy without mutating caller's client
		base := *c.HTTPClient
		base.CheckRedirect = c.checkRedirectFunc()
		return &base
	}
	return &http.Client{Timeout: c.PerRequestTimeout, CheckRedirect: c.checkRedirectFunc()}
}

func (c *Client) checkRedirectFunc() func(req *http.Request, via []*http.Request) error {
	max := c.RedirectMaxHops
	if max <= 0 {
		max = 5
	}
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= max {
			return errors.New("too many redirects")
		}
		// Only allow http/https during redirects
		if req.URL == nil || !isHTTPScheme(req.URL) {
			return errors.New("redirect to unsupported scheme")
		}
		return nil
	}
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

func (c *Client) acquire() {
	if c.MaxConcurrent <= 0 {
		return
	}
	c.limiterOnce.Do(func() {
		c.limiter = make(chan struct{}, c.MaxConcurrent)
	})
	c.limiter <- struct{}{}
}

func (c *Client) release() {
	if c.MaxConcurrent <= 0 || c.limiter == nil {
		return
	}
	select {
	case <-c.limiter:
	default:
	}
}

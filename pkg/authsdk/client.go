package authsdk

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/identity/pkg/httpx"
)

// SDKClient talks to the identity service. Tokens are kept in a cookie jar
// exactly as a browser would keep them, so every call after Register or
// Login is authenticated.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	base *url.URL
}

// NewSDKClient creates a client with an empty cookie jar.
func NewSDKClient(baseURL string) (*SDKClient, error) {
	baseURL = strings.TrimSuffix(baseURL, "/")
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &SDKClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
		base: u,
	}, nil
}

// Tokens returns the access and refresh tokens currently held.
func (c *SDKClient) Tokens() (access, refresh string) {
	if c.HTTPClient.Jar == nil {
		return "", ""
	}
	for _, ck := range c.HTTPClient.Jar.Cookies(c.base) {
		switch ck.Name {
		case httpx.AccessTokenCookie:
			access = ck.Value
		case httpx.RefreshTokenCookie:
			refresh = ck.Value
		}
	}
	return access, refresh
}

// SetTokens replaces the held tokens, for example to replay an older refresh
// token. An empty value leaves that cookie untouched.
func (c *SDKClient) SetTokens(access, refresh string) {
	if c.HTTPClient.Jar == nil {
		return
	}
	var cookies []*http.Cookie
	if access != "" {
		cookies = append(cookies, &http.Cookie{Name: httpx.AccessTokenCookie, Value: access, Path: "/"})
	}
	if refresh != "" {
		cookies = append(cookies, &http.Cookie{Name: httpx.RefreshTokenCookie, Value: refresh, Path: "/"})
	}
	c.HTTPClient.Jar.SetCookies(c.base, cookies)
}

// Where: cli/internal/portal/client.go
// What: HTTP client for the campus portal endpoints.
// Why: Share timeouts, headers, logging and body decoding across the probe and login calls.
package portal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/htmlindex"
)

// Provider defaults for the XZMU campus network.
const (
	DefaultPortalProbeURL   = "http://10.10.0.163/"
	DefaultRedirectMarker   = "http://10.1.0.212?wlanusermac="
	DefaultLoginURL         = "http://10.1.0.212:801/eportal/portal/login"
	DefaultReferer          = "http://10.1.0.212/"
	DefaultGatewayProbeURL  = "http://120.95.80.23:8080/Self/login/"
	DefaultInternetProbeURL = "http://www.163.com/"
	DefaultInterceptMarker  = "http://10.1.0.212"
	DefaultUserAgent        = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.36"

	DefaultProbeTimeout        = 2 * time.Second
	DefaultReachabilityTimeout = 1 * time.Second
)

// Endpoints lists every address and marker the client talks to.
type Endpoints struct {
	PortalProbeURL   string
	RedirectMarker   string
	LoginURL         string
	Referer          string
	GatewayProbeURL  string
	InternetProbeURL string
	InterceptMarker  string
	UserAgent        string
}

// DefaultEndpoints returns the provider's fixed addresses.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		PortalProbeURL:   DefaultPortalProbeURL,
		RedirectMarker:   DefaultRedirectMarker,
		LoginURL:         DefaultLoginURL,
		Referer:          DefaultReferer,
		GatewayProbeURL:  DefaultGatewayProbeURL,
		InternetProbeURL: DefaultInternetProbeURL,
		InterceptMarker:  DefaultInterceptMarker,
		UserAgent:        DefaultUserAgent,
	}
}

// Options configures a Client. Zero fields fall back to defaults.
type Options struct {
	Endpoints           Endpoints
	ProbeTimeout        time.Duration
	ReachabilityTimeout time.Duration
	Transport           http.RoundTripper
	Logger              *zap.Logger
}

// Client issues the portal requests. It holds no per-session state and is
// safe for concurrent use.
type Client struct {
	endpoints Endpoints
	probe     *http.Client
	reach     *http.Client
	log       *zap.Logger
}

// NewClient builds a Client from opts.
func NewClient(opts Options) *Client {
	endpoints := opts.Endpoints.WithDefaults()
	probeTimeout := opts.ProbeTimeout
	if probeTimeout <= 0 {
		probeTimeout = DefaultProbeTimeout
	}
	reachTimeout := opts.ReachabilityTimeout
	if reachTimeout <= 0 {
		reachTimeout = DefaultReachabilityTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoints: endpoints,
		probe:     &http.Client{Timeout: probeTimeout, Transport: opts.Transport},
		reach:     &http.Client{Timeout: reachTimeout, Transport: opts.Transport},
		log:       logger,
	}
}

// WithDefaults fills empty fields from DefaultEndpoints.
func (e Endpoints) WithDefaults() Endpoints {
	base := DefaultEndpoints()
	pick := func(def, v string) string {
		if strings.TrimSpace(v) == "" {
			return def
		}
		return v
	}
	return Endpoints{
		PortalProbeURL:   pick(base.PortalProbeURL, e.PortalProbeURL),
		RedirectMarker:   pick(base.RedirectMarker, e.RedirectMarker),
		LoginURL:         pick(base.LoginURL, e.LoginURL),
		Referer:          pick(base.Referer, e.Referer),
		GatewayProbeURL:  pick(base.GatewayProbeURL, e.GatewayProbeURL),
		InternetProbeURL: pick(base.InternetProbeURL, e.InternetProbeURL),
		InterceptMarker:  pick(base.InterceptMarker, e.InterceptMarker),
		UserAgent:        pick(base.UserAgent, e.UserAgent),
	}
}

// get performs a GET and returns the response with its body still open.
func (c *Client) get(ctx context.Context, client *http.Client, target string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		err = redactURLError(err)
		c.log.Debug("request failed",
			zap.String("url", redactURL(target)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil, err
	}
	c.log.Debug("request done",
		zap.String("url", redactURL(target)),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))
	return resp, nil
}

// redactURLError rewrites the URL carried by a transport error so the
// password never reaches user-facing messages.
func redactURLError(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	redacted := *urlErr
	redacted.URL = redactURL(urlErr.URL)
	return &redacted
}

var errNotText = errors.New("response is not valid text")

// readText reads the whole body and decodes it according to the declared
// charset. Bodies without a charset must be valid UTF-8.
func readText(resp *http.Response) (string, error) {
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	charset := ""
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type")); err == nil {
		charset = strings.ToLower(strings.TrimSpace(params["charset"]))
	}
	if charset == "" || charset == "utf-8" || charset == "utf8" {
		if !utf8.Valid(payload) {
			return "", errNotText
		}
		return string(payload), nil
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		return "", fmt.Errorf("unsupported charset %q: %w", charset, err)
	}
	decoded, err := enc.NewDecoder().Bytes(payload)
	if err != nil {
		return "", fmt.Errorf("decode %s body: %w", charset, err)
	}
	return string(decoded), nil
}

// readTextLossy reads the whole body like readText but never fails on
// content: undecodable bytes become U+FFFD. Pages that declare their
// charset only in <meta> still expose their ASCII markup.
func readTextLossy(resp *http.Response) (string, error) {
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	charset := ""
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type")); err == nil {
		charset = strings.ToLower(strings.TrimSpace(params["charset"]))
	}
	if charset != "" && charset != "utf-8" && charset != "utf8" {
		if enc, err := htmlindex.Get(charset); err == nil {
			if decoded, err := enc.NewDecoder().Bytes(payload); err == nil {
				return string(decoded), nil
			}
		}
	}
	return strings.ToValidUTF8(string(payload), "\uFFFD"), nil
}

// isTextual reports whether a Content-Type denotes a text payload.
// An absent header is accepted.
func isTextual(contentType string) bool {
	if strings.TrimSpace(contentType) == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	if strings.HasPrefix(mediaType, "text/") {
		return true
	}
	switch mediaType {
	case "application/javascript", "application/x-javascript", "application/json",
		"application/xml", "application/xhtml+xml":
		return true
	}
	return false
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

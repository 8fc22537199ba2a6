// Where: cli/internal/portal/login.go
// What: Login request composition and submission.
// Why: The eportal login endpoint takes everything in a fixed-order query string.
package portal

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Protocol constants of the eportal login endpoint.
const (
	LoginCallback = "dr1003"
	LoginMethod   = "1"
)

type queryParam struct {
	key   string
	value string
}

// NormalizeMAC strips the separators the redirect uses between MAC octets.
func NormalizeMAC(mac string) string {
	return strings.NewReplacer("-", "", ":", "").Replace(mac)
}

// BuildLoginURL composes the login request URL. Parameter order is fixed and
// lang appears twice, so url.Values is not used.
func BuildLoginURL(base string, cred Credential, sp SessionParameters) string {
	params := []queryParam{
		{"callback", LoginCallback},
		{"login_method", LoginMethod},
		{"user_account", ",0," + cred.Username},
		{"user_password", cred.Password},
		{"wlan_user_ip", sp.ClientIP},
		{"wlan_user_ipv6", ""},
		{"wlan_user_mac", NormalizeMAC(sp.ClientMAC)},
		{"wlan_ac_ip", sp.GatewayIP},
		{"wlan_ac_name", sp.GatewayName},
		{"jsVersion", "4.2"},
		{"terminal_type", "1"},
		{"lang", "zh-cn"},
		{"v", "2833"},
		{"lang", "zh"},
	}

	var b strings.Builder
	b.WriteString(base)
	if strings.Contains(base, "?") {
		b.WriteByte('&')
	} else {
		b.WriteByte('?')
	}
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}

// Login submits the login request and returns the raw response text. The
// JSONP reply is not interpreted here.
func (c *Client) Login(ctx context.Context, cred Credential, sp SessionParameters) (string, error) {
	target := BuildLoginURL(c.endpoints.LoginURL, cred, sp)
	resp, err := c.get(ctx, c.probe, target, map[string]string{
		"User-Agent": c.endpoints.UserAgent,
		"Referer":    c.endpoints.Referer,
	})
	if err != nil {
		return "", newError(KindRequestFailed, err)
	}
	defer resp.Body.Close()

	if contentType := resp.Header.Get("Content-Type"); !isTextual(contentType) {
		return "", newError(KindRequestFailed, fmt.Errorf("unexpected content type %q", contentType))
	}

	body, err := readText(resp)
	if err != nil {
		return "", &Error{Kind: KindResponseReadError, Context: "login body", Err: err}
	}
	return body, nil
}

// redactURL hides the password before a URL reaches the logs.
func redactURL(raw string) string {
	const key = "user_password="
	idx := strings.Index(raw, key)
	if idx < 0 {
		return raw
	}
	start := idx + len(key)
	end := strings.IndexByte(raw[start:], '&')
	if end < 0 {
		return raw[:start] + "***"
	}
	return raw[:start] + "***" + raw[start+end:]
}

// Where: cli/internal/portal/redirect.go
// What: Captive-portal redirect detection.
// Why: The portal answers the probe with a JS redirect whose URL carries the session parameters.
package portal

import (
	"context"
	"regexp"
	"strings"
)

var locationHrefPattern = regexp.MustCompile(`location\.href="(.*?)"`)

// ExtractRedirect inspects a probe response body. The marker must be present
// for the body to count as a portal page; the first location.href target is
// returned.
func ExtractRedirect(body, marker string) (string, error) {
	if !strings.Contains(body, marker) {
		return "", &Error{Kind: KindNotCaptive}
	}
	match := locationHrefPattern.FindStringSubmatch(body)
	if len(match) < 2 {
		return "", &Error{Kind: KindRedirectNotFound}
	}
	return match[1], nil
}

// ResolveRedirect probes the portal address and returns the login redirect URL.
func (c *Client) ResolveRedirect(ctx context.Context) (string, error) {
	resp, err := c.get(ctx, c.probe, c.endpoints.PortalProbeURL, map[string]string{
		"User-Agent": c.endpoints.UserAgent,
	})
	if err != nil {
		return "", newError(KindProbeFailed, err)
	}
	defer resp.Body.Close()

	body, err := readTextLossy(resp)
	if err != nil {
		return "", newError(KindProbeFailed, err)
	}
	return ExtractRedirect(body, c.endpoints.RedirectMarker)
}

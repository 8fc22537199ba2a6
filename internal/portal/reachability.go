// Where: cli/internal/portal/reachability.go
// What: Best-effort gateway and internet reachability probes.
// Why: Give the user quick connectivity feedback; failures collapse to false.
package portal

import (
	"bytes"
	"context"
	"io"

	"go.uber.org/zap"
)

// ProbeGateway reports whether the portal's login page answers at all.
// The status code is not inspected.
func (c *Client) ProbeGateway(ctx context.Context) bool {
	resp, err := c.get(ctx, c.reach, c.endpoints.GatewayProbeURL, nil)
	if err != nil {
		return false
	}
	drain(resp)
	return true
}

// ProbeInternet reports whether the public probe site answered with its own
// content. A body carrying the intercept marker means the portal answered
// instead, which counts as unreachable.
func (c *Client) ProbeInternet(ctx context.Context) bool {
	resp, err := c.get(ctx, c.reach, c.endpoints.InternetProbeURL, nil)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	// The marker is ASCII, so raw bytes are searched whatever the page charset.
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Debug("internet probe body unreadable", zap.Error(err))
		return false
	}
	if bytes.Contains(body, []byte(c.endpoints.InterceptMarker)) {
		c.log.Debug("internet probe intercepted by portal")
		return false
	}
	return true
}

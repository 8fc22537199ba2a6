// Where: cli/internal/portal/params.go
// What: Session parameter extraction from the portal redirect URL.
// Why: The login endpoint needs the four identifiers the gateway put in the redirect.
package portal

import (
	"fmt"
	"net/url"
)

// Query keys used by the portal redirect. Case-sensitive.
const (
	ParamClientIP    = "wlanuserip"
	ParamClientMAC   = "wlanusermac"
	ParamGatewayIP   = "wlanacip"
	ParamGatewayName = "wlanacname"
)

// ParseSessionParameters extracts the four session identifiers from rawURL.
// All four keys must be present; otherwise a KindMissingParameter error names
// the first missing key.
func ParseSessionParameters(rawURL string) (SessionParameters, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return SessionParameters{}, newError(KindMalformedURL, err)
	}
	if !u.IsAbs() {
		return SessionParameters{}, newError(KindMalformedURL, fmt.Errorf("relative url %q", rawURL))
	}
	// Malformed pairs are skipped rather than failing the whole query.
	query := u.Query()

	values := make([]string, 0, 4)
	for _, key := range []string{ParamClientIP, ParamClientMAC, ParamGatewayIP, ParamGatewayName} {
		got, ok := query[key]
		if !ok || len(got) == 0 {
			return SessionParameters{}, &Error{Kind: KindMissingParameter, Param: key}
		}
		values = append(values, got[len(got)-1])
	}

	return SessionParameters{
		ClientIP:    values[0],
		ClientMAC:   values[1],
		GatewayIP:   values[2],
		GatewayName: values[3],
	}, nil
}

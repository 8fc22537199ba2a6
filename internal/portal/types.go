// Where: cli/internal/portal/types.go
// What: Data model shared by the portal operations.
// Why: Keep credential and session shapes in one place for the CLI and stores.
package portal

// Credential is the saved login pair. The JSON shape is the on-disk format.
type Credential struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionParameters are the gateway-assigned identifiers extracted from the
// portal redirect. They are valid for one network session only.
type SessionParameters struct {
	ClientIP    string `json:"wlan_user_ip"`
	ClientMAC   string `json:"wlan_user_mac"`
	GatewayIP   string `json:"wlan_ac_ip"`
	GatewayName string `json:"wlan_ac_name"`
}

// BootstrapState is handed to the caller once per bootstrap. Never persisted.
type BootstrapState struct {
	Credential *Credential        `json:"account"`
	Session    *SessionParameters `json:"config"`
}

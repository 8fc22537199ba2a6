// Where: cli/internal/app/login_result.go
// What: Interpretation of the eportal JSONP login reply.
// Why: The portal returns callback-wrapped JSON; only the host decides what it means.
package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var errNotJSONP = errors.New("reply is not a JSONP callback")

// loginResult is the subset of the eportal reply the CLI reports.
type loginResult struct {
	Success bool
	Message string
	RetCode string
}

type loginReply struct {
	Result  json.RawMessage `json:"result"`
	Msg     string          `json:"msg"`
	RetCode json.RawMessage `json:"ret_code"`
}

// parseLoginReply decodes `callback({...});`. A result of 1 (number or
// string) means the portal accepted the login.
func parseLoginReply(body string) (loginResult, error) {
	trimmed := strings.TrimSpace(body)
	trimmed = strings.TrimSuffix(trimmed, ";")
	open := strings.IndexByte(trimmed, '(')
	if open < 0 || !strings.HasSuffix(trimmed, ")") {
		return loginResult{}, errNotJSONP
	}
	payload := trimmed[open+1 : len(trimmed)-1]

	var reply loginReply
	if err := json.Unmarshal([]byte(payload), &reply); err != nil {
		return loginResult{}, fmt.Errorf("decode login reply: %w", err)
	}

	return loginResult{
		Success: scalarString(reply.Result) == "1",
		Message: reply.Msg,
		RetCode: scalarString(reply.RetCode),
	}, nil
}

// scalarString renders a JSON number or string without quotes.
func scalarString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

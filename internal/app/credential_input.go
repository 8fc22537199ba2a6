// Where: cli/internal/app/credential_input.go
// What: Credential input from flags or interactive prompts.
// Why: Share the "flags first, prompt on a TTY, fail otherwise" rule between save and login.
package app

import (
	"errors"
	"strings"

	"github.com/poruru/xzmu-autologin/cli/internal/infra/interaction"
	"github.com/poruru/xzmu-autologin/cli/internal/portal"
)

var errCredentialRequired = errors.New("username and password are required (use -u and -p)")

func canPrompt(deps Dependencies) bool {
	return deps.Prompter != nil && interaction.IsTerminal(deps.In)
}

// resolveCredentialInput fills missing fields from fallback, then from prompts.
func resolveCredentialInput(username, password string, fallback *portal.Credential, deps Dependencies) (portal.Credential, error) {
	cred := portal.Credential{Username: strings.TrimSpace(username), Password: password}
	if fallback != nil {
		if cred.Username == "" {
			cred.Username = fallback.Username
		}
		if cred.Password == "" {
			cred.Password = fallback.Password
		}
	}
	if cred.Username != "" && cred.Password != "" {
		return cred, nil
	}
	if !canPrompt(deps) {
		return portal.Credential{}, errCredentialRequired
	}

	if cred.Username == "" {
		value, err := deps.Prompter.Input("Portal account", "student id")
		if err != nil {
			return portal.Credential{}, err
		}
		cred.Username = value
	}
	if cred.Password == "" {
		value, err := deps.Prompter.Password("Portal password")
		if err != nil {
			return portal.Credential{}, err
		}
		cred.Password = value
	}
	return cred, nil
}

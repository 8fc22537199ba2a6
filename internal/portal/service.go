// Where: cli/internal/portal/service.go
// What: The operations exposed to the host (bootstrap, save, login, probes).
// Why: Give the CLI one entry point with the collaborators injected.
package portal

import (
	"context"
	"errors"
)

// InitConfigContext labels credential load failures during bootstrap.
const InitConfigContext = "Init config"

// CredentialStore persists the single per-installation credential.
// Load returns (nil, nil) when nothing has been saved.
type CredentialStore interface {
	Load(dataDir string) (*Credential, error)
	Save(dataDir string, cred Credential) error
}

// Gateway is the network side of the portal protocol.
type Gateway interface {
	ResolveRedirect(ctx context.Context) (string, error)
	Login(ctx context.Context, cred Credential, sp SessionParameters) (string, error)
	ProbeGateway(ctx context.Context) bool
	ProbeInternet(ctx context.Context) bool
}

// Service wires a CredentialStore and a Gateway together.
type Service struct {
	Store   CredentialStore
	Gateway Gateway
}

// NewService returns a Service using the given collaborators.
func NewService(store CredentialStore, gateway Gateway) *Service {
	return &Service{Store: store, Gateway: gateway}
}

var errServiceIncomplete = errors.New("portal service requires a credential store and a gateway")

// Bootstrap loads the stored credential and resolves the current session
// parameters. A missing credential file is not an error; failing to resolve
// the session is, and no partial state is returned.
func (s *Service) Bootstrap(ctx context.Context, dataDir string) (BootstrapState, error) {
	if s == nil || s.Store == nil || s.Gateway == nil {
		return BootstrapState{}, errServiceIncomplete
	}

	cred, err := s.Store.Load(dataDir)
	if err != nil {
		return BootstrapState{}, WithContext(err, InitConfigContext)
	}

	session, err := s.ResolveSession(ctx)
	if err != nil {
		return BootstrapState{}, err
	}

	return BootstrapState{Credential: cred, Session: &session}, nil
}

// ResolveSession probes the portal and extracts fresh session parameters.
func (s *Service) ResolveSession(ctx context.Context) (SessionParameters, error) {
	if s == nil || s.Gateway == nil {
		return SessionParameters{}, errServiceIncomplete
	}
	redirect, err := s.Gateway.ResolveRedirect(ctx)
	if err != nil {
		return SessionParameters{}, err
	}
	return ParseSessionParameters(redirect)
}

// SaveCredential overwrites the stored credential.
func (s *Service) SaveCredential(dataDir, username, password string) error {
	if s == nil || s.Store == nil {
		return errServiceIncomplete
	}
	return s.Store.Save(dataDir, Credential{Username: username, Password: password})
}

// Login submits the credential for the given session and returns the raw reply.
func (s *Service) Login(ctx context.Context, cred Credential, sp SessionParameters) (string, error) {
	if s == nil || s.Gateway == nil {
		return "", errServiceIncomplete
	}
	return s.Gateway.Login(ctx, cred, sp)
}

// ProbeGateway reports gateway reachability. Never fails.
func (s *Service) ProbeGateway(ctx context.Context) bool {
	if s == nil || s.Gateway == nil {
		return false
	}
	return s.Gateway.ProbeGateway(ctx)
}

// ProbeInternet reports open-internet reachability. Never fails.
func (s *Service) ProbeInternet(ctx context.Context) bool {
	if s == nil || s.Gateway == nil {
		return false
	}
	return s.Gateway.ProbeInternet(ctx)
}

// Where: cli/internal/infra/credential/store.go
// What: JSON file store for the saved portal credential.
// Why: One credential per installation, read and overwritten as a whole file.
package credential

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/poruru/xzmu-autologin/cli/internal/infra/fileops"
	"github.com/poruru/xzmu-autologin/cli/internal/meta"
	"github.com/poruru/xzmu-autologin/cli/internal/portal"
)

var errDataDirRequired = errors.New("data directory is required")

// FileStore implements portal.CredentialStore on <dataDir>/xzmu_auto_login.json.
type FileStore struct{}

// NewFileStore returns the file-backed credential store.
func NewFileStore() portal.CredentialStore {
	return FileStore{}
}

// Path returns the credential file location inside dataDir.
func Path(dataDir string) (string, error) {
	dir := strings.TrimSpace(dataDir)
	if dir == "" {
		return "", errDataDirRequired
	}
	return filepath.Join(dir, meta.CredentialFile), nil
}

// Load reads the credential. A missing file yields (nil, nil).
func (FileStore) Load(dataDir string) (*portal.Credential, error) {
	path, err := Path(dataDir)
	if err != nil {
		return nil, &portal.Error{Kind: portal.KindConfigRead, Err: err}
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &portal.Error{Kind: portal.KindConfigRead, Err: err}
	}

	var cred portal.Credential
	if err := json.Unmarshal(payload, &cred); err != nil {
		return nil, &portal.Error{Kind: portal.KindConfigRead, Err: fmt.Errorf("parse %s: %w", path, err)}
	}
	return &cred, nil
}

// Save overwrites the credential file.
func (FileStore) Save(dataDir string, cred portal.Credential) error {
	path, err := Path(dataDir)
	if err != nil {
		return &portal.Error{Kind: portal.KindConfigWrite, Err: err}
	}
	payload, err := json.Marshal(cred)
	if err != nil {
		return &portal.Error{Kind: portal.KindConfigWrite, Err: err}
	}
	if err := fileops.WriteFileAtomic(path, payload, 0o600); err != nil {
		return &portal.Error{Kind: portal.KindConfigWrite, Err: err}
	}
	return nil
}

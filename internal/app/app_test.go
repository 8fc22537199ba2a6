// Where: cli/internal/app/app_test.go
// What: Tests for CLI run behavior.
// Why: Ensure command dispatch and portal wiring stay stable.
package app

import (
	"bytes"
	"context"
	"path/filepath"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/poruru/xzmu-autologin/cli/internal/portal"
)

const sampleRedirect = "http://10.1.0.212?wlanuserip=10.20.30.40&wlanusermac=aa-bb-cc-dd-ee-ff&wlanacip=10.1.0.1&wlanacname=XZMU-AC"

type fakeStore struct {
	cred    *portal.Credential
	loadErr error
	saved   []portal.Credential
}

func (f *fakeStore) Load(string) (*portal.Credential, error) {
	return f.cred, f.loadErr
}

func (f *fakeStore) Save(_ string, cred portal.Credential) error {
	f.saved = append(f.saved, cred)
	c := cred
	f.cred = &c
	return nil
}

type fakeGateway struct {
	redirect    string
	redirectErr error
	reply       string
	loginErr    error
	gateway     bool
	internet    bool

	loginCred    portal.Credential
	loginSession portal.SessionParameters
	loginCalls   int
}

func (f *fakeGateway) ResolveRedirect(context.Context) (string, error) {
	return f.redirect, f.redirectErr
}

func (f *fakeGateway) Login(ctx context.Context, cred portal.Credential, sp portal.SessionParameters) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &portal.Error{Kind: portal.KindRequestFailed, Err: err}
	}
	f.loginCalls++
	f.loginCred = cred
	f.loginSession = sp
	return f.reply, f.loginErr
}

func (f *fakeGateway) ProbeGateway(context.Context) bool  { return f.gateway }
func (f *fakeGateway) ProbeInternet(context.Context) bool { return f.internet }

func setupHostEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("ENV_PREFIX", "")
	t.Setenv("XZMU_CONFIG_PATH", "")
	t.Setenv("XZMU_CONFIG_HOME", filepath.Join(home, ".xzmu"))
	t.Setenv("XZMU_DATA_DIR", "")
	return home
}

func newTestDeps(out *bytes.Buffer, store *fakeStore, gw *fakeGateway) Dependencies {
	return Dependencies{
		Out:    out,
		ErrOut: &bytes.Buffer{},
		Store:  store,
		NewGateway: func(portal.Options) portal.Gateway {
			return gw
		},
	}
}

func TestRunStatusCaptive(t *testing.T) {
	setupHostEnv(t)
	var out bytes.Buffer
	store := &fakeStore{cred: &portal.Credential{Username: "alice", Password: "secret"}}
	gw := &fakeGateway{redirect: sampleRedirect, gateway: true}

	exitCode := Run([]string{"status"}, newTestDeps(&out, store, gw))
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, out.String())
	}
	for _, want := range []string{"Portal session", "10.20.30.40", "aa-bb-cc-dd-ee-ff", "XZMU-AC", "alice", "Gateway:", "yes", "no"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected output to include %q, got %q", want, out.String())
		}
	}
	if strings.Contains(out.String(), "secret") {
		t.Fatalf("password must not be printed: %q", out.String())
	}
}

func TestRunNoArgsDefaultsToStatus(t *testing.T) {
	setupHostEnv(t)
	var out bytes.Buffer
	gw := &fakeGateway{redirect: sampleRedirect}

	exitCode := Run(nil, newTestDeps(&out, &fakeStore{}, gw))
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, out.String())
	}
	if !strings.Contains(out.String(), "not saved") {
		t.Fatalf("expected missing account hint, got %q", out.String())
	}
}

func TestRunStatusNotCaptive(t *testing.T) {
	setupHostEnv(t)
	var out bytes.Buffer
	gw := &fakeGateway{redirectErr: portal.ErrNotCaptive, gateway: true, internet: true}

	exitCode := Run([]string{"status"}, newTestDeps(&out, &fakeStore{}, gw))
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	if !strings.Contains(out.String(), "no captive portal detected") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRunStatusProbeFailed(t *testing.T) {
	setupHostEnv(t)
	var out bytes.Buffer
	gw := &fakeGateway{redirectErr: portal.ErrProbeFailed}

	exitCode := Run([]string{"status"}, newTestDeps(&out, &fakeStore{}, gw))
	if exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(out.String(), "ProbeFailed") {
		t.Fatalf("expected error kind in output, got %q", out.String())
	}
}

func TestRunStatusFormat(t *testing.T) {
	setupHostEnv(t)
	var out bytes.Buffer
	store := &fakeStore{cred: &portal.Credential{Username: "alice", Password: "secret"}}
	gw := &fakeGateway{redirect: sampleRedirect, gateway: true}

	exitCode := Run([]string{"status", "--format", "{{ .Username | upper }} {{ .Session.ClientIP }} {{ .Gateway }}"},
		newTestDeps(&out, store, gw))
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, out.String())
	}
	if got := strings.TrimSpace(out.String()); got != "ALICE 10.20.30.40 true" {
		t.Fatalf("unexpected render: %q", got)
	}
}

func TestRunStatusFormatInvalid(t *testing.T) {
	setupHostEnv(t)
	var out bytes.Buffer
	gw := &fakeGateway{redirect: sampleRedirect}

	exitCode := Run([]string{"status", "-f", "{{ .Username"}, newTestDeps(&out, &fakeStore{}, gw))
	if exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(out.String(), "parse --format") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRunLoginSuccess(t *testing.T) {
	setupHostEnv(t)
	var out bytes.Buffer
	store := &fakeStore{cred: &portal.Credential{Username: "alice", Password: "secret"}}
	gw := &fakeGateway{
		redirect: sampleRedirect,
		reply:    `dr1003({"result":1,"msg":"Portal login ok"});`,
	}

	exitCode := Run([]string{"login"}, newTestDeps(&out, store, gw))
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, out.String())
	}
	if gw.loginCred != (portal.Credential{Username: "alice", Password: "secret"}) {
		t.Fatalf("unexpected credential: %+v", gw.loginCred)
	}
	want := portal.SessionParameters{
		ClientIP:    "10.20.30.40",
		ClientMAC:   "aa-bb-cc-dd-ee-ff",
		GatewayIP:   "10.1.0.1",
		GatewayName: "XZMU-AC",
	}
	if gw.loginSession != want {
		t.Fatalf("unexpected session: %+v", gw.loginSession)
	}
	if !strings.Contains(out.String(), "Logged in as alice: Portal login ok") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRunLoginRejected(t *testing.T) {
	setupHostEnv(t)
	var out bytes.Buffer
	store := &fakeStore{cred: &portal.Credential{Username: "alice", Password: "wrong"}}
	gw := &fakeGateway{
		redirect: sampleRedirect,
		reply:    `dr1003({"result":0,"msg":"bad password","ret_code":1});`,
	}

	exitCode := Run([]string{"login"}, newTestDeps(&out, store, gw))
	if exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(out.String(), "Login rejected: bad password (ret_code 1)") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRunLoginRaw(t *testing.T) {
	setupHostEnv(t)
	var out bytes.Buffer
	store := &fakeStore{cred: &portal.Credential{Username: "alice", Password: "secret"}}
	reply := `dr1003({"result":0,"msg":"whatever"});`
	gw := &fakeGateway{redirect: sampleRedirect, reply: reply}

	exitCode := Run([]string{"login", "--raw"}, newTestDeps(&out, store, gw))
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	if got := strings.TrimSpace(out.String()); got != reply {
		t.Fatalf("expected raw reply, got %q", got)
	}
}

func TestRunLoginUnrecognizedReply(t *testing.T) {
	setupHostEnv(t)
	var out bytes.Buffer
	store := &fakeStore{cred: &portal.Credential{Username: "alice", Password: "secret"}}
	gw := &fakeGateway{redirect: sampleRedirect, reply: "<html>maintenance</html>"}

	exitCode := Run([]string{"login"}, newTestDeps(&out, store, gw))
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	if !strings.Contains(out.String(), "[warn] Unrecognized portal reply") || !strings.Contains(out.String(), "maintenance") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRunLoginFlagsOverrideAndSave(t *testing.T) {
	setupHostEnv(t)
	var out bytes.Buffer
	store := &fakeStore{}
	gw := &fakeGateway{redirect: sampleRedirect, reply: `dr1003({"result":"1","msg":"ok"});`}

	exitCode := Run([]string{"login", "-u", "bob", "-p", "pw", "--save"}, newTestDeps(&out, store, gw))
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, out.String())
	}
	if len(store.saved) != 1 || store.saved[0] != (portal.Credential{Username: "bob", Password: "pw"}) {
		t.Fatalf("expected saved credential, got %+v", store.saved)
	}
	if gw.loginCred.Username != "bob" {
		t.Fatalf("expected flag credential, got %+v", gw.loginCred)
	}
}

func TestRunLoginWithoutCredential(t *testing.T) {
	setupHostEnv(t)
	var out bytes.Buffer
	gw := &fakeGateway{redirect: sampleRedirect}

	exitCode := Run([]string{"login"}, newTestDeps(&out, &fakeStore{}, gw))
	if exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
	if gw.loginCalls != 0 {
		t.Fatalf("login must not be attempted without a credential")
	}
	if !strings.Contains(out.String(), "username and password are required") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

type slowPrompter struct {
	delay time.Duration
}

func (p slowPrompter) Input(string, string) (string, error) {
	time.Sleep(p.delay)
	return "alice", nil
}

func (p slowPrompter) Password(string) (string, error) {
	time.Sleep(p.delay)
	return "secret", nil
}

func TestRunLoginPromptDoesNotConsumeLoginDeadline(t *testing.T) {
	setupHostEnv(t)
	stubTerminal(t, true)
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	cfg := "version: 1\ntimeouts:\n  probe: 50ms\n  reachability: 50ms\n"
	if err := os.WriteFile(configPath, []byte(cfg), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var out bytes.Buffer
	gw := &fakeGateway{redirect: sampleRedirect, reply: `dr1003({"result":1,"msg":"ok"});`}
	deps := newTestDeps(&out, &fakeStore{}, gw)
	// Slower than the whole 200ms command budget.
	deps.Prompter = slowPrompter{delay: 300 * time.Millisecond}

	exitCode := Run([]string{"--config", configPath, "login"}, deps)
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, out.String())
	}
	if gw.loginCalls != 1 || gw.loginCred != (portal.Credential{Username: "alice", Password: "secret"}) {
		t.Fatalf("expected one login with prompted credential, got %d %+v", gw.loginCalls, gw.loginCred)
	}
}

func TestRunLoginNotCaptive(t *testing.T) {
	setupHostEnv(t)
	var out bytes.Buffer
	store := &fakeStore{cred: &portal.Credential{Username: "alice", Password: "secret"}}
	gw := &fakeGateway{redirectErr: portal.ErrNotCaptive}

	exitCode := Run([]string{"login"}, newTestDeps(&out, store, gw))
	if exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
	if gw.loginCalls != 0 {
		t.Fatalf("login must not be attempted when not captive")
	}
	if !strings.Contains(out.String(), "Next steps:") {
		t.Fatalf("expected suggestions, got %q", out.String())
	}
}

func TestRunSaveWritesCredentialFile(t *testing.T) {
	setupHostEnv(t)
	dataDir := t.TempDir()
	var out bytes.Buffer
	deps := Dependencies{Out: &out, ErrOut: &bytes.Buffer{}}

	exitCode := Run([]string{"--data-dir", dataDir, "save", "-u", "alice", "-p", "secret"}, deps)
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, out.String())
	}
	if !strings.Contains(out.String(), "[ok] Saved account alice") {
		t.Fatalf("unexpected output: %q", out.String())
	}
	if !strings.Contains(out.String(), filepath.Join(dataDir, "xzmu_auto_login.json")) {
		t.Fatalf("expected credential path in output, got %q", out.String())
	}
}

func TestRunSaveRequiresValuesWithoutTTY(t *testing.T) {
	setupHostEnv(t)
	var out bytes.Buffer
	store := &fakeStore{}

	exitCode := Run([]string{"save", "-u", "alice"}, newTestDeps(&out, store, &fakeGateway{}))
	if exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
	if len(store.saved) != 0 {
		t.Fatalf("nothing should be saved, got %+v", store.saved)
	}
}

func TestRunProbe(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		gw       fakeGateway
		wantCode int
		want     []string
		notWant  []string
	}{
		{
			name:     "all reachable",
			args:     []string{"probe"},
			gw:       fakeGateway{gateway: true, internet: true},
			wantCode: 0,
			want:     []string{"Gateway:", "Internet:"},
		},
		{
			name:     "internet blocked",
			args:     []string{"probe", "all"},
			gw:       fakeGateway{gateway: true},
			wantCode: 1,
			want:     []string{"Internet:"},
		},
		{
			name:     "gateway only",
			args:     []string{"probe", "gateway"},
			gw:       fakeGateway{gateway: true},
			wantCode: 0,
			want:     []string{"Gateway:"},
			notWant:  []string{"Internet:"},
		},
		{
			name:     "internet only",
			args:     []string{"probe", "internet"},
			gw:       fakeGateway{gateway: true},
			wantCode: 1,
			notWant:  []string{"Gateway:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupHostEnv(t)
			var out bytes.Buffer
			gw := tt.gw
			exitCode := Run(tt.args, newTestDeps(&out, &fakeStore{}, &gw))
			if exitCode != tt.wantCode {
				t.Fatalf("expected exit code %d, got %d: %s", tt.wantCode, exitCode, out.String())
			}
			for _, want := range tt.want {
				if !strings.Contains(out.String(), want) {
					t.Fatalf("expected %q in %q", want, out.String())
				}
			}
			for _, notWant := range tt.notWant {
				if strings.Contains(out.String(), notWant) {
					t.Fatalf("unexpected %q in %q", notWant, out.String())
				}
			}
		})
	}
}

func TestRunProbeUnknownTarget(t *testing.T) {
	setupHostEnv(t)
	var out bytes.Buffer

	exitCode := Run([]string{"probe", "dns"}, newTestDeps(&out, &fakeStore{}, &fakeGateway{}))
	if exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(out.String(), "Unknown probe target.") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRunConfigPath(t *testing.T) {
	home := setupHostEnv(t)
	var out bytes.Buffer

	exitCode := Run([]string{"config", "path"}, Dependencies{Out: &out})
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	want := filepath.Join(home, ".xzmu", "config.yaml")
	if got := strings.TrimSpace(out.String()); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRunConfigShow(t *testing.T) {
	setupHostEnv(t)
	configPath := filepath.Join(t.TempDir(), "custom.yaml")
	var out bytes.Buffer

	exitCode := Run([]string{"--config", configPath, "config", "show"}, newTestDeps(&out, &fakeStore{}, &fakeGateway{}))
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", exitCode, out.String())
	}
	for _, want := range []string{configPath, "(not saved)", portal.DefaultLoginURL, portal.DefaultInternetProbeURL, "User agent:", portal.DefaultUserAgent, "2s", "1s"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected %q in %q", want, out.String())
		}
	}
}

func TestRunConfigWithoutSubcommand(t *testing.T) {
	setupHostEnv(t)
	var out bytes.Buffer

	exitCode := Run([]string{"config"}, Dependencies{Out: &out})
	if exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(out.String(), "xzmu config show") {
		t.Fatalf("expected suggestions, got %q", out.String())
	}
}

func TestRunVersion(t *testing.T) {
	var out bytes.Buffer
	exitCode := Run([]string{"version"}, Dependencies{Out: &out})
	if exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	if !strings.HasPrefix(out.String(), "xzmu ") {
		t.Fatalf("unexpected version output: %q", out.String())
	}
}

func TestCommandName(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{args: nil, want: ""},
		{args: []string{"-v"}, want: ""},
		{args: []string{"login"}, want: "login"},
		{args: []string{"--data-dir", "/tmp/x", "save"}, want: "save"},
		{args: []string{"--config", "c.yaml", "-v", "probe", "gateway"}, want: "probe"},
		{args: []string{"--env-file", ".env.local", "status"}, want: "status"},
	}
	for _, tt := range tests {
		if got := commandName(tt.args); got != tt.want {
			t.Fatalf("commandName(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

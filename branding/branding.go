// Package branding audits the packaging metadata that brands a downstream
// rsync distribution: binary names, daemon configuration paths, and version
// strings templated from a single manifest.
//
// [Load] reads the YAML manifest, [Branding.Validate] enforces the naming
// rules every packaging artifact relies on, and [RenderText] / [RenderJSON]
// produce the audit report.
package branding

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

var (
	// ErrManifest indicates the branding manifest could not be read or
	// parsed.
	ErrManifest = errors.New("branding manifest")
	// ErrValidation indicates the manifest violates a branding rule.
	ErrValidation = errors.New("branding validation")
)

// Protocol bounds accepted for the advertised rsync protocol ceiling.
const (
	minProtocol = 28
	maxProtocol = 32
)

// Branding is the packaging metadata carried by the workspace manifest.
type Branding struct {
	// Brand is the short brand label, e.g. "oc".
	Brand string `yaml:"brand" json:"brand"`
	// UpstreamVersion is the upstream rsync version being tracked.
	UpstreamVersion string `yaml:"upstream_version" json:"upstream_version"`
	// ReleaseVersion is the downstream release identifier. It must carry
	// the upstream version as a prefix and a "-rust" suffix.
	ReleaseVersion string `yaml:"release_version" json:"release_version"`
	// Protocol is the highest protocol version advertised by the build.
	Protocol int `yaml:"protocol" json:"protocol"`
	// ClientBin and DaemonBin are the branded executable names.
	ClientBin string `yaml:"client_bin" json:"client_bin"`
	DaemonBin string `yaml:"daemon_bin" json:"daemon_bin"`
	// LegacyClientBin and LegacyDaemonBin are the upstream-compatible
	// names shipped alongside the branded ones.
	LegacyClientBin string `yaml:"legacy_client_bin" json:"legacy_client_bin"`
	LegacyDaemonBin string `yaml:"legacy_daemon_bin" json:"legacy_daemon_bin"`
	// Daemon configuration paths for the branded install.
	DaemonConfigDir string `yaml:"daemon_config_dir" json:"daemon_config_dir"`
	DaemonConfig    string `yaml:"daemon_config" json:"daemon_config"`
	DaemonSecrets   string `yaml:"daemon_secrets" json:"daemon_secrets"`
	// Source is the project URL advertised in documentation and banners.
	Source string `yaml:"source" json:"source"`
}

// Load reads and parses the branding manifest at path.
func Load(path string) (*Branding, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Manifest path comes from a CLI flag.
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifest, err)
	}

	var b Branding

	err = yaml.Unmarshal(data, &b)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifest, err)
	}

	return &b, nil
}

// Validate enforces the branding rules packaging artifacts depend on.
func (b *Branding) Validate() error {
	if strings.TrimSpace(b.Brand) == "" {
		return fmt.Errorf("%w: brand label must not be empty", ErrValidation)
	}

	if b.Protocol < minProtocol || b.Protocol > maxProtocol {
		return fmt.Errorf("%w: protocol version %d must be between %d and %d",
			ErrValidation, b.Protocol, minProtocol, maxProtocol)
	}

	prefix := b.Brand + "-"

	if !strings.HasPrefix(b.ClientBin, prefix) {
		return fmt.Errorf("%w: client binary %q must use %q prefix", ErrValidation, b.ClientBin, prefix)
	}

	if !strings.HasPrefix(b.DaemonBin, prefix) {
		return fmt.Errorf("%w: daemon binary %q must use %q prefix", ErrValidation, b.DaemonBin, prefix)
	}

	if b.LegacyClientBin != "rsync" {
		return fmt.Errorf("%w: legacy client binary %q must be \"rsync\"", ErrValidation, b.LegacyClientBin)
	}

	if b.LegacyDaemonBin != "rsyncd" {
		return fmt.Errorf("%w: legacy daemon binary %q must be \"rsyncd\"", ErrValidation, b.LegacyDaemonBin)
	}

	dirSuffix := b.Brand + "-rsyncd"
	if filepath.Base(b.DaemonConfigDir) != dirSuffix {
		return fmt.Errorf("%w: daemon_config_dir %q must end with %q", ErrValidation, b.DaemonConfigDir, dirSuffix)
	}

	err := b.validatePaths()
	if err != nil {
		return err
	}

	if !strings.HasPrefix(b.ReleaseVersion, b.UpstreamVersion) {
		return fmt.Errorf("%w: release_version %q must include upstream_version %q prefix",
			ErrValidation, b.ReleaseVersion, b.UpstreamVersion)
	}

	if !strings.HasSuffix(b.ReleaseVersion, "-rust") {
		return fmt.Errorf("%w: release_version %q must end with \"-rust\" suffix", ErrValidation, b.ReleaseVersion)
	}

	return nil
}

// validatePaths checks that daemon paths are absolute, named after the
// brand, and located inside the daemon config dir.
func (b *Branding) validatePaths() error {
	named := []struct {
		label string
		path  string
		want  string
	}{
		{"daemon_config", b.DaemonConfig, b.Brand + "-rsyncd.conf"},
		{"daemon_secrets", b.DaemonSecrets, b.Brand + "-rsyncd.secrets"},
	}

	for _, n := range named {
		if filepath.Base(n.path) != n.want {
			return fmt.Errorf("%w: %s %q must be named %q", ErrValidation, n.label, n.path, n.want)
		}

		if filepath.Dir(n.path) != filepath.Clean(b.DaemonConfigDir) {
			return fmt.Errorf("%w: %s %q must reside under daemon_config_dir %q",
				ErrValidation, n.label, n.path, b.DaemonConfigDir)
		}
	}

	for _, p := range []struct {
		label string
		path  string
	}{
		{"daemon_config_dir", b.DaemonConfigDir},
		{"daemon_config", b.DaemonConfig},
		{"daemon_secrets", b.DaemonSecrets},
	} {
		if !filepath.IsAbs(p.path) {
			return fmt.Errorf("%w: %s %q must be an absolute path", ErrValidation, p.label, p.path)
		}
	}

	return nil
}

// Summary returns a concise single-line description.
func (b *Branding) Summary() string {
	return fmt.Sprintf("brand=%s release=%s protocol=%d client=%s daemon=%s config=%s",
		b.Brand, b.ReleaseVersion, b.Protocol, b.ClientBin, b.DaemonBin, b.DaemonConfig)
}

// RenderText writes a human-readable audit report.
func RenderText(w io.Writer, b *Branding) error {
	rows := []struct {
		label string
		value string
	}{
		{"brand", b.Brand},
		{"upstream version", b.UpstreamVersion},
		{"release version", b.ReleaseVersion},
		{"protocol", fmt.Sprintf("%d", b.Protocol)},
		{"client binary", b.ClientBin},
		{"daemon binary", b.DaemonBin},
		{"legacy client binary", b.LegacyClientBin},
		{"legacy daemon binary", b.LegacyDaemonBin},
		{"daemon config dir", b.DaemonConfigDir},
		{"daemon config", b.DaemonConfig},
		{"daemon secrets", b.DaemonSecrets},
		{"source", b.Source},
	}

	for _, row := range rows {
		_, err := fmt.Fprintf(w, "%-22s %s\n", row.label+":", row.value)
		if err != nil {
			return fmt.Errorf("render report: %w", err)
		}
	}

	return nil
}

// RenderJSON writes the audit report as an indented JSON object.
func RenderJSON(w io.Writer, b *Branding) error {
	out, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	out = append(out, '\n')

	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	return nil
}

// ABOUTME: Environment-variable configuration source.
// ABOUTME: Parses GSDK_* style variables into a Source via caarlos0/env.

package config

import (
	"encoding/json"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envConfig mirrors the environment contract of the orchestrator: scalar
// settings as plain variables, connection info as a JSON blob.
type envConfig struct {
	HeartbeatEndpoint        string `env:"HEARTBEAT_ENDPOINT"`
	ServerID                 string `env:"SESSION_HOST_ID"`
	LogFolder                string `env:"GSDK_LOG_FOLDER"`
	SharedContentFolder      string `env:"SHARED_CONTENT_FOLDER"`
	CertificateFolder        string `env:"CERTIFICATE_FOLDER"`
	TitleID                  string `env:"PF_TITLE_ID"`
	BuildID                  string `env:"PF_BUILD_ID"`
	Region                   string `env:"PF_REGION"`
	PublicIPv4Address        string `env:"PUBLIC_IPV4_ADDRESS"`
	FullyQualifiedDomainName string `env:"FULLY_QUALIFIED_DOMAIN_NAME"`

	ConnectionInfoJSON string `env:"GSDK_CONNECTION_INFO"`
	DisableLog         bool   `env:"GSDK_DISABLE_LOG"`
	DisableHeartbeat   bool   `env:"GSDK_DISABLE_HEARTBEAT"`
}

// EnvSource reads configuration from environment variables. Certificates,
// build metadata, and ports are not deliverable over the environment, so
// their maps are empty.
type EnvSource struct {
	cfg  envConfig
	conn ConnectionInfo
}

// FromEnv parses the process environment into a configuration source.
func FromEnv() (*EnvSource, error) {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}

	src := &EnvSource{cfg: cfg}
	if cfg.ConnectionInfoJSON != "" {
		if err := json.Unmarshal([]byte(cfg.ConnectionInfoJSON), &src.conn); err != nil {
			return nil, fmt.Errorf("parsing GSDK_CONNECTION_INFO: %w", err)
		}
	}
	return src, nil
}

func (s *EnvSource) GameCertificates() map[string]string { return map[string]string{} }
func (s *EnvSource) BuildMetadata() map[string]string    { return map[string]string{} }
func (s *EnvSource) GamePorts() map[string]string        { return map[string]string{} }

func (s *EnvSource) HeartbeatEndpoint() string        { return s.cfg.HeartbeatEndpoint }
func (s *EnvSource) ServerID() string                 { return s.cfg.ServerID }
func (s *EnvSource) LogFolder() string                { return s.cfg.LogFolder }
func (s *EnvSource) SharedContentFolder() string      { return s.cfg.SharedContentFolder }
func (s *EnvSource) CertificateFolder() string        { return s.cfg.CertificateFolder }
func (s *EnvSource) TitleID() string                  { return s.cfg.TitleID }
func (s *EnvSource) BuildID() string                  { return s.cfg.BuildID }
func (s *EnvSource) Region() string                   { return s.cfg.Region }
func (s *EnvSource) PublicIPv4Address() string        { return s.cfg.PublicIPv4Address }
func (s *EnvSource) FullyQualifiedDomainName() string { return s.cfg.FullyQualifiedDomainName }

func (s *EnvSource) ShouldLog() bool                { return !s.cfg.DisableLog }
func (s *EnvSource) ShouldHeartbeat() bool          { return !s.cfg.DisableHeartbeat }
func (s *EnvSource) ConnectionInfo() ConnectionInfo { return s.conn }

// ABOUTME: File-based configuration source for GSDK_CONFIG_FILE.
// ABOUTME: Parses YAML or JSON documents with ${ENV_VAR} expansion.

package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk document shape. YAML is a superset of JSON, so
// orchestrators that drop a JSON file are parsed by the same loader.
type fileConfig struct {
	HeartbeatEndpoint        string `yaml:"heartbeatEndpoint"`
	ServerID                 string `yaml:"sessionHostId"`
	LogFolder                string `yaml:"logFolder"`
	SharedContentFolder      string `yaml:"sharedContentFolder"`
	CertificateFolder        string `yaml:"certificateFolder"`
	TitleID                  string `yaml:"titleId"`
	BuildID                  string `yaml:"buildId"`
	Region                   string `yaml:"region"`
	PublicIPv4Address        string `yaml:"publicIpV4Address"`
	FullyQualifiedDomainName string `yaml:"fullyQualifiedDomainName"`

	GameCertificates map[string]string `yaml:"gameCertificates"`
	BuildMetadata    map[string]string `yaml:"buildMetadata"`
	GamePorts        map[string]string `yaml:"gamePorts"`

	ShouldLog       *bool `yaml:"shouldLog"`
	ShouldHeartbeat *bool `yaml:"shouldHeartbeat"`

	ConnectionInfo ConnectionInfo `yaml:"gameServerConnectionInfo"`
}

// FileSource reads configuration from the file named by GSDK_CONFIG_FILE.
type FileSource struct {
	cfg fileConfig
}

// LoadFile reads and parses a configuration file from the given path.
// Environment variables in the form ${VAR_NAME} are expanded before parsing.
func LoadFile(path string) (*FileSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := expandEnvVars(string(data))

	var cfg fileConfig
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &FileSource{cfg: cfg}, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding
// environment variable values. Unset variables expand to the empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

func (s *FileSource) GameCertificates() map[string]string { return orEmpty(s.cfg.GameCertificates) }
func (s *FileSource) BuildMetadata() map[string]string    { return orEmpty(s.cfg.BuildMetadata) }
func (s *FileSource) GamePorts() map[string]string        { return orEmpty(s.cfg.GamePorts) }

func (s *FileSource) HeartbeatEndpoint() string        { return s.cfg.HeartbeatEndpoint }
func (s *FileSource) ServerID() string                 { return s.cfg.ServerID }
func (s *FileSource) LogFolder() string                { return s.cfg.LogFolder }
func (s *FileSource) SharedContentFolder() string      { return s.cfg.SharedContentFolder }
func (s *FileSource) CertificateFolder() string        { return s.cfg.CertificateFolder }
func (s *FileSource) TitleID() string                  { return s.cfg.TitleID }
func (s *FileSource) BuildID() string                  { return s.cfg.BuildID }
func (s *FileSource) Region() string                   { return s.cfg.Region }
func (s *FileSource) PublicIPv4Address() string        { return s.cfg.PublicIPv4Address }
func (s *FileSource) FullyQualifiedDomainName() string { return s.cfg.FullyQualifiedDomainName }

func (s *FileSource) ShouldLog() bool {
	if s.cfg.ShouldLog == nil {
		return true
	}
	return *s.cfg.ShouldLog
}

func (s *FileSource) ShouldHeartbeat() bool {
	if s.cfg.ShouldHeartbeat == nil {
		return true
	}
	return *s.cfg.ShouldHeartbeat
}

func (s *FileSource) ConnectionInfo() ConnectionInfo { return s.cfg.ConnectionInfo }

func orEmpty(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

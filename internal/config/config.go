// ABOUTME: Configuration source contract and well-known setting keys.
// ABOUTME: Selects between file-based and environment-based sources at startup.

package config

import (
	"fmt"
	"os"
)

// Well-known keys in the agent's settings map. Session configuration arriving
// in heartbeat responses is merged alongside these under the same map.
const (
	HeartbeatEndpointKey        = "gsmsBaseUrl"
	ServerIDKey                 = "instanceId"
	LogFolderKey                = "logFolder"
	SharedContentFolderKey      = "sharedContentFolder"
	CertificateFolderKey        = "certificateFolder"
	TitleIDKey                  = "titleId"
	BuildIDKey                  = "buildId"
	RegionKey                   = "region"
	PublicIPv4AddressKey        = "publicIpV4Address"
	FullyQualifiedDomainNameKey = "fullyQualifiedDomainName"
)

// ConfigFileEnvVar names the environment variable that points at a
// configuration file. When unset or unreadable the environment source is
// used instead.
const ConfigFileEnvVar = "GSDK_CONFIG_FILE"

// GamePort describes one port mapping the orchestrator opened for the server.
type GamePort struct {
	Name                 string `yaml:"name" json:"name"`
	ServerListeningPort  int    `yaml:"serverListeningPort" json:"serverListeningPort"`
	ClientConnectionPort int    `yaml:"clientConnectionPort" json:"clientConnectionPort"`
}

// ConnectionInfo is the read-only connection description handed to the host
// game. Obtained once from the source at startup.
type ConnectionInfo struct {
	PublicIPv4Address string     `yaml:"publicIpV4Address" json:"publicIpV4Address"`
	GamePorts         []GamePort `yaml:"gamePortsConfiguration" json:"gamePortsConfiguration"`
}

// Source produces the initial configuration snapshot for the agent. The two
// implementations are FileSource (GSDK_CONFIG_FILE) and EnvSource.
type Source interface {
	GameCertificates() map[string]string
	BuildMetadata() map[string]string
	GamePorts() map[string]string

	HeartbeatEndpoint() string
	ServerID() string
	LogFolder() string
	SharedContentFolder() string
	CertificateFolder() string
	TitleID() string
	BuildID() string
	Region() string
	PublicIPv4Address() string
	FullyQualifiedDomainName() string

	ShouldLog() bool
	ShouldHeartbeat() bool
	ConnectionInfo() ConnectionInfo
}

// Detect returns the configuration source for this process: the file named
// by GSDK_CONFIG_FILE when it exists, otherwise environment variables.
func Detect() (Source, error) {
	if path := os.Getenv(ConfigFileEnvVar); path != "" {
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return FromEnv()
}

// Settings flattens a source into the agent's initial key/value snapshot:
// certificates, build metadata, ports, then the ten scalar settings.
func Settings(src Source) map[string]string {
	settings := make(map[string]string)

	for k, v := range src.GameCertificates() {
		settings[k] = v
	}
	for k, v := range src.BuildMetadata() {
		settings[k] = v
	}
	for k, v := range src.GamePorts() {
		settings[k] = v
	}

	settings[HeartbeatEndpointKey] = src.HeartbeatEndpoint()
	settings[ServerIDKey] = src.ServerID()
	settings[LogFolderKey] = src.LogFolder()
	settings[SharedContentFolderKey] = src.SharedContentFolder()
	settings[CertificateFolderKey] = src.CertificateFolder()
	settings[TitleIDKey] = src.TitleID()
	settings[BuildIDKey] = src.BuildID()
	settings[RegionKey] = src.Region()
	settings[PublicIPv4AddressKey] = src.PublicIPv4Address()
	settings[FullyQualifiedDomainNameKey] = src.FullyQualifiedDomainName()

	return settings
}

// Validate checks the settings the agent cannot run without. Their absence
// is a fatal startup error, not a runtime error.
func Validate(settings map[string]string) error {
	if settings[HeartbeatEndpointKey] == "" {
		return fmt.Errorf("%s is a required configuration value", HeartbeatEndpointKey)
	}
	if settings[ServerIDKey] == "" {
		return fmt.Errorf("%s is a required configuration value", ServerIDKey)
	}
	return nil
}

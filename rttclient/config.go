package rttclient

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Transport names accepted in Config.
const (
	TransportTCP    = "tcp"
	TransportSerial = "serial"
	TransportImage  = "image"
)

// Config is the rttview configuration file.
type Config struct {
	Transport string       `yaml:"transport"`
	Address   string       `yaml:"address"`
	Serial    SerialConfig `yaml:"serial"`
	Image     ImageConfig  `yaml:"image"`
	Record    string       `yaml:"record"`
	Color     bool         `yaml:"color"`
	Hex       bool         `yaml:"hex"`
}

type SerialConfig struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

// ImageConfig locates a RAM dump and the window to scan in it.
type ImageConfig struct {
	Path   string `yaml:"path"`
	Base   uint32 `yaml:"base"`
	Length uint32 `yaml:"length"`
}

// DefaultConfig targets OpenOCD's conventional RTT port.
func DefaultConfig() Config {
	return Config{
		Transport: TransportTCP,
		Address:   "localhost:9090",
		Serial:    SerialConfig{Baud: 115200},
		Image:     ImageConfig{Base: 0x20000000, Length: 128 * 1024},
		Color:     true,
	}
}

// LoadConfig reads path over DefaultConfig. An empty path returns the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Transport {
	case TransportTCP:
		if c.Address == "" {
			return fmt.Errorf("config: tcp transport needs address")
		}
	case TransportSerial:
		if c.Serial.Baud <= 0 {
			return fmt.Errorf("config: serial baud %d", c.Serial.Baud)
		}
	case TransportImage:
		if c.Image.Path == "" || c.Image.Length == 0 {
			return fmt.Errorf("config: image transport needs path and length")
		}
	default:
		return fmt.Errorf("config: unknown transport %q", c.Transport)
	}
	return nil
}

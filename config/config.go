// Package config holds the library configuration: network selection,
// data directory for the wallet store, and the fee propagation slack.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/slporg/libslp-go/tx"
)

// Config holds the tunable settings for the token wallet.
type Config struct {
	// DataDir is the directory holding the wallet database and the
	// encrypted seed.
	DataDir string

	// Network selects "mainnet" or "testnet".
	Network string

	// PropagationSlack is added to every computed fee. Lowering it below
	// the default trades relay reliability for fee savings.
	PropagationSlack uint64
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DataDir:          filepath.Join(home, ".slpwallet"),
		Network:          "mainnet",
		PropagationSlack: 50,
	}
}

// FeePolicy returns the fee policy implied by the configuration.
func (c Config) FeePolicy() tx.FeePolicy {
	return tx.FeePolicy{PropagationSlack: c.PropagationSlack}
}

// ValidateConfig checks that all configuration values are within
// acceptable ranges and returns the first error encountered.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}
	if cfg.Network != "mainnet" && cfg.Network != "testnet" {
		return ErrInvalidNetwork
	}
	return nil
}

// SaveConfig writes the configuration to path as key=value lines.
func SaveConfig(cfg Config, path string) error {
	if err := ValidateConfig(cfg); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "datadir=%s\n", cfg.DataDir)
	fmt.Fprintf(&b, "network=%s\n", cfg.Network)
	fmt.Fprintf(&b, "propagation_slack=%d\n", cfg.PropagationSlack)

	return os.WriteFile(path, []byte(b.String()), 0600)
}

// LoadConfig reads a configuration file written by SaveConfig. Missing
// keys keep their default values; unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("config: open: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, lineNo, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "datadir":
			cfg.DataDir = value
		case "network":
			cfg.Network = value
		case "propagation_slack":
			slack, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, lineNo, line)
			}
			cfg.PropagationSlack = slack
		default:
			return cfg, fmt.Errorf("%w: line %d: unknown key %q", ErrInvalidConfigLine, lineNo, key)
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("config: read: %w", err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

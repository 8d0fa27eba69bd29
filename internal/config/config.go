package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const (
	configFile  = "config.json"
	walletsFile = "wallets.json"

	// Environment overrides; they win over config.json.
	envConfigDir    = "VOTECLI_CONFIG_DIR"
	envContractAddr = "VOTECLI_CONTRACT_ADDRESS"
	envRPCURL       = "VOTECLI_RPC_URL"
)

// Config holds all votecli configuration.
type Config struct {
	ContractAddress string   `json:"contract_address"`
	DefaultWallet   string   `json:"default_wallet"`
	AutoConnect     bool     `json:"auto_connect"` // reuse the cached session on startup
	CustomRPCs      []string `json:"custom_rpcs"`  // preferred over the network's public endpoints

	// config dir path used for Save()
	configDir string
}

// Load reads config from dir (or creates defaults). dir defaults to
// VOTECLI_CONFIG_DIR, then ~/.votecli. VOTECLI_CONTRACT_ADDRESS and
// VOTECLI_RPC_URL override the stored values.
func Load(dir string) (*Config, error) {
	if dir == "" {
		dir = os.Getenv(envConfigDir)
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home dir: %w", err)
		}
		dir = filepath.Join(home, ".votecli")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	cfg := &Config{AutoConnect: true, configDir: dir}

	path := filepath.Join(dir, configFile)
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// first run, defaults only
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
		cfg.configDir = dir
	}

	if addr := os.Getenv(envContractAddr); addr != "" {
		cfg.ContractAddress = addr
	}
	if rpc := os.Getenv(envRPCURL); rpc != "" && !slices.Contains(cfg.CustomRPCs, rpc) {
		cfg.CustomRPCs = append([]string{rpc}, cfg.CustomRPCs...)
	}

	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.configDir, configFile), data, 0o600)
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}

// WalletsPath returns the path of the wallet registry file.
func (c *Config) WalletsPath() string {
	return filepath.Join(c.configDir, walletsFile)
}

// AddRPC registers a custom RPC endpoint, keeping the list free of
// duplicates.
func (c *Config) AddRPC(url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return fmt.Errorf("rpc url is empty")
	}
	if slices.Contains(c.CustomRPCs, url) {
		return fmt.Errorf("RPC %s already configured", url)
	}
	c.CustomRPCs = append(c.CustomRPCs, url)
	return nil
}

// RemoveRPC removes a custom RPC endpoint.
func (c *Config) RemoveRPC(url string) error {
	idx := slices.Index(c.CustomRPCs, url)
	if idx == -1 {
		return fmt.Errorf("RPC %s not found", url)
	}
	c.CustomRPCs = slices.Delete(c.CustomRPCs, idx, idx+1)
	return nil
}

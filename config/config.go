package config

import (
	"encoding/json"
	"os"
	"sync"
)

type Config struct {
	Port              int    `json:"port"`
	DatabasePath      string `json:"databasePath"`
	ReceiptFolderPath string `json:"receiptFolderPath"`
	JWTSecret         string `json:"jwtSecret"`
	OpenBrowser       bool   `json:"openBrowser"`
	LowStockThreshold int    `json:"lowStockThreshold"`
}

var (
	cfg Config
	mu  sync.RWMutex
)

const configFilePath = "./cafepos_config.json"

func defaults() Config {
	return Config{
		Port:              8090,
		DatabasePath:      "./cafe_pos.db",
		ReceiptFolderPath: "./receipts",
		JWTSecret:         "cafe-pos-local-secret",
		OpenBrowser:       true,
		LowStockThreshold: 10,
	}
}

// fileConfig mirrors Config with a nullable OpenBrowser so a key omitted
// from the file falls back to true instead of reading as false.
type fileConfig struct {
	Port              int    `json:"port"`
	DatabasePath      string `json:"databasePath"`
	ReceiptFolderPath string `json:"receiptFolderPath"`
	JWTSecret         string `json:"jwtSecret"`
	OpenBrowser       *bool  `json:"openBrowser"`
	LowStockThreshold int    `json:"lowStockThreshold"`
}

func (f fileConfig) toConfig() Config {
	c := Config{
		Port:              f.Port,
		DatabasePath:      f.DatabasePath,
		ReceiptFolderPath: f.ReceiptFolderPath,
		JWTSecret:         f.JWTSecret,
		OpenBrowser:       f.OpenBrowser == nil || *f.OpenBrowser,
		LowStockThreshold: f.LowStockThreshold,
	}
	applyDefaults(&c)
	return c
}

func applyDefaults(c *Config) {
	d := defaults()
	if c.Port == 0 {
		c.Port = d.Port
	}
	if c.DatabasePath == "" {
		c.DatabasePath = d.DatabasePath
	}
	if c.ReceiptFolderPath == "" {
		c.ReceiptFolderPath = d.ReceiptFolderPath
	}
	if c.JWTSecret == "" {
		c.JWTSecret = d.JWTSecret
	}
	if c.LowStockThreshold == 0 {
		c.LowStockThreshold = d.LowStockThreshold
	}
}

// LoadConfig reads the config file. On any failure it still returns the
// defaults, so the caller never serves on port 0 against an unnamed
// temporary database.
func LoadConfig() (Config, error) {
	return loadConfigFrom(configFilePath)
}

func loadConfigFrom(path string) (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	file, err := os.ReadFile(path)
	if err != nil {
		cfg = defaults()
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var tempCfg fileConfig
	if err := json.Unmarshal(file, &tempCfg); err != nil {
		cfg = defaults()
		return cfg, err
	}
	cfg = tempCfg.toConfig()
	return cfg, nil
}

func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	applyDefaults(&newCfg)
	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(configFilePath, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

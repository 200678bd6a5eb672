package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Config 应用配置
type Config struct {
	Port          string
	DataDir       string // 参考表JSON所在目录
	OverridesPath string // 覆盖文件路径（无DATABASE_URL时使用）
	DatabaseURL   string
	SJREnabled    bool
	CoreEnabled   bool
}

// Load 从环境变量加载配置
func Load() *Config {
	dataDir := getEnv("DATA_DIR", "data")
	return &Config{
		Port:          getEnv("PORT", "8080"),
		DataDir:       dataDir,
		OverridesPath: getEnv("OVERRIDES_PATH", filepath.Join(dataDir, "overrides.json")),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		SJREnabled:    getEnvBool("SJR_ENABLED", true),
		CoreEnabled:   getEnvBool("CORE_ENABLED", true),
	}
}

// TablePath 某个参考表的JSON路径
func (c *Config) TablePath(name string) string {
	return filepath.Join(c.DataDir, name+"_rankings.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(os.Getenv(key))
	switch value {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return defaultValue
}

package config

import (
	"fmt"
	"os"
)

// Config 应用配置
type Config struct {
	Env           string
	DatabaseURL   string
	Port          string
	SiteName      string
	YouTubeAPIKey string
	YouTubeAPIURL string
}

// Load 加载配置
func Load() *Config {
	dbUser := getEnv("DB_USER", "postgres")
	dbPass := getEnv("DB_PASSWORD", "postgres")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbName := getEnv("DB_NAME", "ytsearch")
	dbSSL := getEnv("DB_SSLMODE", "disable")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbUser, dbPass, dbHost, dbPort, dbName, dbSSL)

	apiKey := getEnv("YOUTUBE_API_KEY", "")
	if apiKey == "" {
		fmt.Println("【警告】未设置 YOUTUBE_API_KEY，上游搜索请求将全部失败")
	}

	return &Config{
		Env:           getEnv("APP_ENV", "development"),
		DatabaseURL:   dbURL,
		Port:          getEnv("PORT", "5000"),
		SiteName:      getEnv("SITE_NAME", "YouTube 个性化搜索"),
		YouTubeAPIKey: apiKey,
		YouTubeAPIURL: getEnv("YOUTUBE_API_URL", "https://www.googleapis.com/youtube/v3"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

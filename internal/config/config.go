package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTPAddr       string
	MinPlayers     int
	MaxPlayers     int
	DefaultBalance int
	LogFile        string
	SeedRooms      []string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// Load reads the server configuration from the environment, falling back to
// defaults suitable for local development.
func Load() Config {
	return Config{
		HTTPAddr:       getenv("HTTP_ADDR", ":8080"),
		MinPlayers:     getenvInt("MIN_PLAYERS", 2),
		MaxPlayers:     getenvInt("MAX_PLAYERS", 5),
		DefaultBalance: getenvInt("DEFAULT_BALANCE", 1000),
		LogFile:        getenv("LOG_FILE", "app.log"),
		SeedRooms:      splitList(getenv("SEED_ROOMS", "mesa-1,mesa-2,mesa-3")),
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

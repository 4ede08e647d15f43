package config

import (
	"os"
	"strconv"
)

// BotWeights tune the CPU opponent's action scoring.
type BotWeights struct {
	WWin         int // action that wins the game outright
	WCapture     int // capture that survives the tie-break
	WCommandSafe int // keeping the mobile command out of reach
	WAdvance     int // moving toward the nearest enemy
	WRevealRisk  int // penalty for exposing a hidden unit
}

type Config struct {
	HTTPAddr  string
	ServerURL string
	Weights   BotWeights
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Load() *Config {
	return &Config{
		HTTPAddr:  getenvStr("HTTP_ADDR", ":8080"),
		ServerURL: getenvStr("SERVER_URL", "http://localhost:8080"),
		Weights: BotWeights{
			WWin:         getenvInt("W_WIN", 10000),
			WCapture:     getenvInt("W_CAPTURE", 300),
			WCommandSafe: getenvInt("W_COMMAND_SAFE", 150),
			WAdvance:     getenvInt("W_ADVANCE", 40),
			WRevealRisk:  getenvInt("W_REVEAL_RISK", 25),
		},
	}
}

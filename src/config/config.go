package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvFileEnvVar = "FLOATING_NOTE_ENV"

	DefaultFontSize             = 60
	DefaultStatusURL            = "http://127.0.0.1:8888/status"
	DefaultPollIntervalMS       = 150
	DefaultPollTimeoutMS        = 100
	DefaultFadeMS               = 200
	DefaultFrameMS              = 16
	DefaultCompanionScript      = "now_playing.py"
	DefaultCompanionInterpreter = "python"
	DefaultHotkey               = "Ctrl+Alt+N"
	DefaultSingleInstancePort   = 49600
)

// LoadOptions carries command-line overrides; they win over .env and env.
type LoadOptions struct {
	SyncMode      *bool
	FontSize      string
	RemindersFile string
	StatusURL     string
}

type Config struct {
	FontSize             float32
	Glow                 bool
	SyncMode             bool
	StatusURL            string
	PollInterval         time.Duration
	PollTimeout          time.Duration
	FadeDuration         time.Duration
	FrameInterval        time.Duration
	RemindersFile        string
	CompanionScript      string
	CompanionInterpreter string
	Hotkey               string
	EnableFileLogging    bool
	SingleInstancePort   int
}

func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{})
}

func LoadWithOptions(opts LoadOptions) (*Config, error) {
	// Load configuration from sources in priority order:
	// 1) .env in the application (executable) directory
	// 2) If not found, use FLOATING_NOTE_ENV as a path to a config file
	if envPath := resolveEnvPath(); envPath != "" {
		_ = godotenv.Load(envPath)
	}

	cfg := &Config{
		FontSize:             float32(positiveFloat(opts.FontSize, positiveFloat(os.Getenv("FONT_SIZE"), DefaultFontSize))),
		Glow:                 boolEnv("GLOW", true),
		SyncMode:             boolEnv("SYNC_MODE", false),
		StatusURL:            firstNonEmpty(opts.StatusURL, os.Getenv("STATUS_URL"), DefaultStatusURL),
		PollInterval:         millisEnv("POLL_INTERVAL_MS", DefaultPollIntervalMS),
		PollTimeout:          millisEnv("POLL_TIMEOUT_MS", DefaultPollTimeoutMS),
		FadeDuration:         millisEnv("FADE_MS", DefaultFadeMS),
		FrameInterval:        millisEnv("FRAME_MS", DefaultFrameMS),
		RemindersFile:        firstNonEmpty(opts.RemindersFile, os.Getenv("REMINDERS_FILE")),
		CompanionScript:      getEnvWithDefault("COMPANION_SCRIPT", DefaultCompanionScript),
		CompanionInterpreter: getEnvWithDefault("COMPANION_INTERPRETER", DefaultCompanionInterpreter),
		Hotkey:               getEnvWithDefault("HOTKEY", DefaultHotkey),
		EnableFileLogging:    strings.ToLower(os.Getenv("ENABLE_FILE_LOGGING")) == "true",
		SingleInstancePort:   portEnv("SINGLEINSTANCE_PORT", DefaultSingleInstancePort),
	}
	if opts.SyncMode != nil {
		cfg.SyncMode = *opts.SyncMode
	}

	return cfg, nil
}

// ExecutableDir is where .env and the companion script are looked up.
func ExecutableDir() string {
	execPath, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(execPath)
}

func resolveEnvPath() string {
	exeEnv := filepath.Join(ExecutableDir(), ".env")
	if _, err := os.Stat(exeEnv); err == nil {
		return exeEnv
	}

	if alt := os.Getenv(EnvFileEnvVar); alt != "" {
		if _, err := os.Stat(alt); err == nil {
			return alt
		}
	}

	return ""
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// positiveFloat parses v, falling back to def when v is blank, malformed or not positive.
func positiveFloat(v string, def float64) float64 {
	if n, err := strconv.ParseFloat(strings.TrimSpace(v), 32); err == nil && n > 0 {
		return n
	}
	return def
}

func millisEnv(key string, def int) time.Duration {
	ms := def
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ms = n
		}
	}
	return time.Duration(ms) * time.Millisecond
}

func boolEnv(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// portEnv clamps to [1024, 65535] and falls back to def when unset/invalid.
func portEnv(key string, def int) int {
	port := def
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			port = n
		}
	}
	if port < 1024 || port > 65535 {
		return def
	}
	return port
}

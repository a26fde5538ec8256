package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/blackholes/internal/board"
)

type Duration struct{ time.Duration }

// [Duration] implements [json.Marshaler]
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		var err error
		d.Duration, err = time.ParseDuration(value)
		if err != nil {
			return err
		}
		return nil
	default:
		return errors.New("invalid duration")
	}
}

type Session struct {
	Secret        string   `json:"secret"`
	TokenLifetime Duration `json:"token_lifetime"`
	IdleTTL       Duration `json:"idle_ttl"`
}

type Limits struct {
	MaxSize int `json:"max_size"`
}

type Config struct {
	Mode    string  `json:"mode"`
	Addr    string  `json:"addr"`
	LogFile string  `json:"log_file"`
	Session Session `json:"session"`
	Limits  Limits  `json:"limits"`
}

func Default() Config {
	return Config{
		Mode: "production",
		Addr: ":8080",
		Session: Session{
			TokenLifetime: Duration{time.Hour * 24},
			IdleTTL:       Duration{time.Hour},
		},
		Limits: Limits{
			MaxSize: 100,
		},
	}
}

// Read overlays the JSON file at path on top of config.
func Read(path string, config *Config) error {
	if b, err := os.ReadFile(path); err != nil {
		return err
	} else {
		return json.Unmarshal(b, config)
	}
}

// ApplyEnv lets the environment override the file.
func (c *Config) ApplyEnv() {
	if addr, ok := os.LookupEnv("APP_ADDR"); ok {
		c.Addr = addr
	}
	if secret, ok := os.LookupEnv("SESSION_SECRET"); ok {
		c.Session.Secret = secret
	}
	if Development() {
		c.Mode = "development"
	}
}

func (c Config) Validate() error {
	if c.Session.Secret == "" {
		return fmt.Errorf("no session secret configured")
	}
	if c.Session.TokenLifetime.Duration <= 0 {
		return fmt.Errorf("session token lifetime must be positive")
	}
	if c.Session.IdleTTL.Duration <= 0 {
		return fmt.Errorf("session idle ttl must be positive")
	}
	if c.Limits.MaxSize < 1 || c.Limits.MaxSize > board.MaxSize {
		return fmt.Errorf("max board size must be between 1 and %d", board.MaxSize)
	}
	return nil
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":                   c.Mode,
		"addr":                   c.Addr,
		"log_file":               c.LogFile,
		"session_token_lifetime": c.Session.TokenLifetime.String(),
		"session_idle_ttl":       c.Session.IdleTTL.String(),
		"max_size":               c.Limits.MaxSize,
	}
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

// Development reports whether DEVELOPMENT is set to anything but "0".
func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0" && development != ""
}

// Package config loads bluff.hcl and validates the settings a game is
// started with.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

const (
	DefaultFile = "bluff.hcl"

	MinOpponents = 3
	MaxOpponents = 6
)

// ErrInvalidPlayerCount is returned for a player count that is not a
// number between MinOpponents and MaxOpponents.
var ErrInvalidPlayerCount = errors.New("player count must be a number between 3 and 6")

// Config represents the complete bluff configuration
type Config struct {
	Game   *GameSettings   `hcl:"game,block"`
	Pacing *PacingSettings `hcl:"pacing,block"`
	Log    *LogSettings    `hcl:"log,block"`
}

// GameSettings describes the table. Opponents of 0 means ask at startup.
type GameSettings struct {
	Name      string `hcl:"name,optional"`
	Opponents int    `hcl:"opponents,optional"`
	Seed      int64  `hcl:"seed,optional"`
}

// PacingSettings are the pauses the presentation makes so bot turns can be
// followed. Values are Go duration strings.
type PacingSettings struct {
	TurnDelay   string `hcl:"turn_delay,optional"`
	ResultDelay string `hcl:"result_delay,optional"`
}

// LogSettings configures the debug log file
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads configuration from an HCL file, returning the defaults when
// the file does not exist.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file)
}

// Parse decodes configuration held in memory
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file)
}

func decode(file *hcl.File) (*Config, error) {
	var config Config
	if diags := gohcl.DecodeBody(file.Body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Game == nil {
		c.Game = &GameSettings{}
	}
	if c.Game.Name == "" {
		c.Game.Name = "You"
	}

	if c.Pacing == nil {
		c.Pacing = &PacingSettings{}
	}
	if c.Pacing.TurnDelay == "" {
		c.Pacing.TurnDelay = "1s"
	}
	if c.Pacing.ResultDelay == "" {
		c.Pacing.ResultDelay = "2s"
	}

	if c.Log == nil {
		c.Log = &LogSettings{}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File == "" {
		c.Log.File = "bluff.log"
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Game.Name) == "" {
		return fmt.Errorf("game: name must not be blank")
	}
	if c.Game.Opponents != 0 {
		if err := CheckOpponentCount(c.Game.Opponents); err != nil {
			return fmt.Errorf("game: %w", err)
		}
	}
	if _, err := c.TurnDelay(); err != nil {
		return fmt.Errorf("pacing: turn_delay: %w", err)
	}
	if _, err := c.ResultDelay(); err != nil {
		return fmt.Errorf("pacing: result_delay: %w", err)
	}
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

// TurnDelay is the pause before each bot turn
func (c *Config) TurnDelay() (time.Duration, error) {
	return parseDelay(c.Pacing.TurnDelay)
}

// ResultDelay is the pause after a challenge is resolved
func (c *Config) ResultDelay() (time.Duration, error) {
	return parseDelay(c.Pacing.ResultDelay)
}

// LogLevel returns the parsed log level
func (c *Config) LogLevel() (log.Level, error) {
	return log.ParseLevel(c.Log.Level)
}

func parseDelay(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative delay %s", s)
	}
	return d, nil
}

// ParseOpponentCount parses the number of automated opponents typed by the user
func ParseOpponentCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPlayerCount, s)
	}
	if err := CheckOpponentCount(n); err != nil {
		return 0, err
	}
	return n, nil
}

// CheckOpponentCount reports whether n opponents can be seated
func CheckOpponentCount(n int) error {
	if n < MinOpponents || n > MaxOpponents {
		return fmt.Errorf("%w, got %d", ErrInvalidPlayerCount, n)
	}
	return nil
}

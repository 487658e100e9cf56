package store

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/planner/pkg/blocks"
)

const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
)

// Config locates the store and carries the planner's tunables.
type Config interface {
	BasePath() string
	Backend() string
	ArchiveDir() string
	Debounce() time.Duration
	Tick() time.Duration
	Blocks() blocks.Chain
}

// LoadConfig reads .planner.yaml from $PLANNER_CONFIG_PATH, the working
// directory or $HOME, with PLANNER_* environment overrides.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.planner.db")
	viper.SetDefault("backend", BackendDiskv)
	viper.SetDefault("archive", "")
	viper.SetDefault("debounce", "250ms")
	viper.SetDefault("tick", "5m")
	viper.SetConfigName(".planner") // .yaml is implicit
	viper.SetEnvPrefix("PLANNER")
	viper.AutomaticEnv()

	if override := os.Getenv("PLANNER_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		viper.AddConfigPath(home)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	cfg := &fileConfig{
		Path:     viper.GetString("path"),
		Kind:     viper.GetString("backend"),
		Archive:  viper.GetString("archive"),
		Quiet:    viper.GetDuration("debounce"),
		Interval: viper.GetDuration("tick"),
	}
	if err := viper.UnmarshalKey("blocks", &cfg.Chain); err != nil {
		return nil, fmt.Errorf("store: decode blocks: %w", err)
	}
	return cfg.expand()
}

type fileConfig struct {
	Path     string        `json:"path"`
	Kind     string        `json:"backend"`
	Archive  string        `json:"archive,omitempty"`
	Quiet    time.Duration `json:"debounce"`
	Interval time.Duration `json:"tick"`
	Chain    blocks.Chain  `json:"blocks"`
}

func (f *fileConfig) expand() (*fileConfig, error) {
	var err error
	if f.Path, err = homedir.Expand(f.Path); err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	if f.Archive != "" {
		if f.Archive, err = homedir.Expand(f.Archive); err != nil {
			return nil, fmt.Errorf("store: expand archive: %w", err)
		}
	}
	switch f.Kind {
	case "":
		f.Kind = BackendDiskv
	case BackendDiskv, BackendSQLite:
	default:
		return nil, fmt.Errorf("store: unknown backend %q", f.Kind)
	}
	if f.Quiet <= 0 {
		f.Quiet = 250 * time.Millisecond
	}
	if f.Interval <= 0 {
		f.Interval = 5 * time.Minute
	}
	if len(f.Chain) == 0 {
		f.Chain = blocks.Default()
	}
	return f, nil
}

func (f *fileConfig) BasePath() string        { return f.Path }
func (f *fileConfig) Backend() string         { return f.Kind }
func (f *fileConfig) ArchiveDir() string      { return f.Archive }
func (f *fileConfig) Debounce() time.Duration { return f.Quiet }
func (f *fileConfig) Tick() time.Duration     { return f.Interval }
func (f *fileConfig) Blocks() blocks.Chain    { return f.Chain }

// StaticConfig is a Config built in code, mostly for tests and embedding.
type StaticConfig struct {
	Path string
	Kind string
}

func (s StaticConfig) BasePath() string        { return s.Path }
func (s StaticConfig) Backend() string         { return s.Kind }
func (s StaticConfig) ArchiveDir() string      { return "" }
func (s StaticConfig) Debounce() time.Duration { return 250 * time.Millisecond }
func (s StaticConfig) Tick() time.Duration     { return 5 * time.Minute }
func (s StaticConfig) Blocks() blocks.Chain    { return blocks.Default() }

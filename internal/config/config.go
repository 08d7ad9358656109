package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"rpschain/x/rps/types"
)

const (
	// EnvPrefix is prepended to every environment override, e.g. RPS_ADDR.
	EnvPrefix = "RPS"

	// FileName is the config file written by `rpsd init` under <home>/config.
	FileName = "app.toml"
)

// Flag and config keys.
const (
	FlagHome        = "home"
	FlagAddr        = "addr"
	FlagTransport   = "transport"
	FlagDBBackend   = "db-backend"
	FlagKeepRecent  = "keep-recent"
	FlagLogLevel    = "log-level"
	FlagLogJSON     = "log-json"
	FlagStake       = "stake"
	FlagMinDeadline = "min-deadline"
)

type Config struct {
	Home       string `mapstructure:"home"`
	Addr       string `mapstructure:"addr"`
	Transport  string `mapstructure:"transport"`
	DBBackend  string `mapstructure:"db-backend"`
	KeepRecent int64  `mapstructure:"keep-recent"`
	LogLevel   string `mapstructure:"log-level"`
	LogJSON    bool   `mapstructure:"log-json"`

	// Genesis parameters, used when InitChain carries no app state.
	Stake       uint64 `mapstructure:"stake"`
	MinDeadline uint64 `mapstructure:"min-deadline"`
}

func DefaultConfig() Config {
	p := types.DefaultParams()
	return Config{
		Home:        ".rps",
		Addr:        "tcp://127.0.0.1:26658",
		Transport:   "socket",
		DBBackend:   "goleveldb",
		KeepRecent:  100,
		LogLevel:    "info",
		LogJSON:     false,
		Stake:       p.Stake,
		MinDeadline: p.MinDeadline,
	}
}

// AddFlags registers every config key on fs with its default value.
func AddFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()
	fs.String(FlagHome, d.Home, "node home directory (database under <home>/data)")
	fs.String(FlagAddr, d.Addr, "ABCI listen address")
	fs.String(FlagTransport, d.Transport, "ABCI transport (socket|grpc)")
	fs.String(FlagDBBackend, d.DBBackend, "state database backend (goleveldb|memdb)")
	fs.Int64(FlagKeepRecent, d.KeepRecent, "number of recent state snapshots to keep (0 keeps all)")
	fs.String(FlagLogLevel, d.LogLevel, "log level (trace|debug|info|warn|error)")
	fs.Bool(FlagLogJSON, d.LogJSON, "emit JSON logs")
	fs.Uint64(FlagStake, d.Stake, "required stake per player, in base units")
	fs.Uint64(FlagMinDeadline, d.MinDeadline, "minimum timeout window, in blocks")
}

// NewViper returns a viper instance with defaults and RPS_* env overrides.
func NewViper() *viper.Viper {
	v := viper.New()
	d := DefaultConfig()
	v.SetDefault(FlagHome, d.Home)
	v.SetDefault(FlagAddr, d.Addr)
	v.SetDefault(FlagTransport, d.Transport)
	v.SetDefault(FlagDBBackend, d.DBBackend)
	v.SetDefault(FlagKeepRecent, d.KeepRecent)
	v.SetDefault(FlagLogLevel, d.LogLevel)
	v.SetDefault(FlagLogJSON, d.LogJSON)
	v.SetDefault(FlagStake, d.Stake)
	v.SetDefault(FlagMinDeadline, d.MinDeadline)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Path returns the config file location for a home directory.
func Path(home string) string {
	return filepath.Join(home, "config", FileName)
}

// Load resolves configuration in precedence order flags > env > file > defaults.
// fs may be nil.
func Load(v *viper.Viper, fs *pflag.FlagSet) (Config, error) {
	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	path := Path(v.GetString(FlagHome))
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("stat config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Write persists cfg under its home directory, creating parents as needed.
func Write(cfg Config) (string, error) {
	path := Path(cfg.Home)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	v := viper.New()
	v.Set(FlagHome, cfg.Home)
	v.Set(FlagAddr, cfg.Addr)
	v.Set(FlagTransport, cfg.Transport)
	v.Set(FlagDBBackend, cfg.DBBackend)
	v.Set(FlagKeepRecent, cfg.KeepRecent)
	v.Set(FlagLogLevel, cfg.LogLevel)
	v.Set(FlagLogJSON, cfg.LogJSON)
	v.Set(FlagStake, cfg.Stake)
	v.Set(FlagMinDeadline, cfg.MinDeadline)
	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("write config %s: %w", path, err)
	}
	return path, nil
}

func (c Config) Validate() error {
	if c.Home == "" {
		return fmt.Errorf("home must not be empty")
	}
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	switch c.Transport {
	case "socket", "grpc":
	default:
		return fmt.Errorf("unsupported transport %q", c.Transport)
	}
	switch c.DBBackend {
	case "goleveldb", "memdb":
	default:
		return fmt.Errorf("unsupported db backend %q", c.DBBackend)
	}
	if c.KeepRecent < 0 {
		return fmt.Errorf("keep-recent must be >= 0")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return c.Params().Validate()
}

// Params returns the game parameters carried by the config.
func (c Config) Params() types.Params {
	return types.Params{Stake: c.Stake, MinDeadline: c.MinDeadline}
}

// Logger builds the node logger. Validate must have accepted the log level.
func (c Config) Logger(w io.Writer) log.Logger {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	opts := []log.Option{log.LevelOption(lvl)}
	if c.LogJSON {
		opts = append(opts, log.OutputJSONOption())
	}
	return log.NewLogger(w, opts...)
}

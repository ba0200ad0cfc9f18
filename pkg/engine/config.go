package engine

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/herohde/morlock-core/pkg/search"
)

// Config is the engine's full external configuration surface: the
// orchestration knobs Engine itself consumes (MaxDepth, TTSizeMB, Threads,
// MaxNodes) plus the embedded search.Config every worker's Searcher
// consults.
type Config struct {
	MaxDepth int `toml:"max_depth"`
	TTSizeMB int `toml:"tt_size_mb"`
	Threads  int `toml:"threads"` // 0 == auto: max(1, runtime.NumCPU()-1)
	MaxNodes uint64 `toml:"max_nodes"`

	Search search.Config `toml:"search"`
}

// DefaultConfig returns the built-in defaults: search.DefaultConfig's
// tuning knobs plus a modest depth/hash/thread default suitable for a
// standalone CLI invocation.
func DefaultConfig() Config {
	return Config{
		MaxDepth: 64,
		TTSizeMB: 64,
		Threads:  0,
		MaxNodes: 0,
		Search:   search.DefaultConfig(),
	}
}

// LoadConfig reads a TOML configuration file, starting from DefaultConfig
// and overwriting only the fields the file sets. An absent file or I/O
// error simply returns the defaults, since the CLI binaries are expected
// to run without a config file present.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

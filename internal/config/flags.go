package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagWidth     = flag.Int("width", 0, "Window width")
	flagHeight    = flag.Int("height", 0, "Window height")
	flagInstances = flag.Int("instances", 0, "Number of forest instances")
	flagSeed      = flag.Int64("seed", 0, "Placement seed (0 keeps the configured seed)")
	flagAtlasDump = flag.String("atlas-dump", "", "Directory to dump baked atlases as PNG")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagInstances > 0 {
		cfg.Forest.InstanceCount = *flagInstances
	}
	if *flagSeed != 0 {
		cfg.Forest.Seed = *flagSeed
	}
	if *flagAtlasDump != "" {
		cfg.Forest.AtlasDumpDir = *flagAtlasDump
	}
}

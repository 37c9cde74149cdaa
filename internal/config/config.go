// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Forest   ForestConfig   `yaml:"forest"`
	Lighting LightingConfig `yaml:"lighting"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// ForestConfig holds forest build and LOD settings.
type ForestConfig struct {
	// Placement
	InstanceCount int     `yaml:"instance_count"`
	AreaSize      float32 `yaml:"area_size"` // side length of the square scatter area
	Seed          int64   `yaml:"seed"`
	MinScale      float32 `yaml:"min_scale"`
	MaxScale      float32 `yaml:"max_scale"`

	// Atlas bake
	AtlasSize      int     `yaml:"atlas_size"`
	SpritesPerSide int     `yaml:"sprites_per_side"`
	Hemisphere     bool    `yaml:"hemisphere"`
	CameraMargin   float32 `yaml:"camera_margin"`
	BakeAlphaTest  float32 `yaml:"bake_alpha_test"`
	AtlasDumpDir   string  `yaml:"atlas_dump_dir"` // when set, baked atlases are saved as PNG for inspection

	// Terrain
	TerrainAmplitude float32 `yaml:"terrain_amplitude"` // hill height; 0 gives flat ground

	// LOD
	MidDistance float32 `yaml:"mid_distance"` // real mesh -> multi-sprite impostor
	FarDistance float32 `yaml:"far_distance"` // multi-sprite -> single-sprite impostor
	FadeRange   float32 `yaml:"fade_range"`
	AlphaClamp  float32 `yaml:"alpha_clamp"`
}

// LightingConfig holds runtime-mutable sun and ambient lighting.
type LightingConfig struct {
	SunLongitude float32    `yaml:"sun_longitude"` // degrees around Y
	SunLatitude  float32    `yaml:"sun_latitude"`  // degrees above horizon
	SunColor     [3]float32 `yaml:"sun_color"`
	AmbientColor [3]float32 `yaml:"ambient_color"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Forest: ForestConfig{
			InstanceCount:  5000,
			AreaSize:       800,
			Seed:           1,
			MinScale:       0.8,
			MaxScale:       1.3,
			AtlasSize:      1024,
			SpritesPerSide: 8,
			Hemisphere:     true,
			CameraMargin:   1.05,
			BakeAlphaTest:  0.5,

			TerrainAmplitude: 6,

			MidDistance: 60,
			FarDistance:    220,
			FadeRange:      8,
			AlphaClamp:     0.35,
		},
		Lighting: LightingConfig{
			SunLongitude: 35,
			SunLatitude:  50,
			SunColor:     [3]float32{1.0, 0.96, 0.88},
			AmbientColor: [3]float32{0.35, 0.38, 0.42},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

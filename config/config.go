// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"

	"github.com/spf13/viper"
)

// BinConfig is the default aggregation window, in bp, per data source.
type BinConfig struct {
	// bin width for repeat coverage tracks
	Repeat int `mapstructure:"repeat"`

	// bin width for depth tracks
	Depth int `mapstructure:"depth"`
}

// PlotConfig is the rendered image geometry.
type PlotConfig struct {
	// pixel width of the output image
	Width int `mapstructure:"width"`

	// pixel height of one layout unit; a track's height is a
	// kind-dependent multiple of this
	TrackHeight int `mapstructure:"track-height"`
}

// Config is the root-level settings struct, a mix of settings from an
// optional settings file and command line flags bound through viper.
type Config struct {
	// taxonomy level used to group repeat coverage
	Taxonomy string `mapstructure:"taxonomy"`

	// per-source binning defaults
	Bins BinConfig `mapstructure:"bins"`

	// output geometry
	Plot PlotConfig `mapstructure:"plot"`
}

// New returns a Config populated by Viper settings and defaults.
func New() *Config {
	setDefaults()

	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		log.Fatalf("unable to decode settings into struct, %v", err)
	}
	return c
}

func setDefaults() {
	viper.SetDefault("taxonomy", "class")
	viper.SetDefault("bins.repeat", 50000)
	viper.SetDefault("bins.depth", 10000)
	viper.SetDefault("plot.width", 1200)
	viper.SetDefault("plot.track-height", 120)
}

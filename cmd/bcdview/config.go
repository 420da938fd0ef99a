package main

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/yokwe/mesa-emulator-unix-sub002/listing"
)

// config is the optional TOML settings file. Command-line flags take
// precedence over it.
type config struct {
	Listing listing.Options `toml:"listing"`
	Batch   batchConfig     `toml:"batch"`
}

type batchConfig struct {
	// Jobs bounds the files decoded at once; 0 means GOMAXPROCS.
	Jobs int `toml:"jobs"`
}

func defaultConfig() config {
	return config{Listing: listing.DefaultOptions()}
}

func loadConfig(path string) (config, error) {
	c := defaultConfig()
	if path == "" {
		return c, nil
	}
	meta, err := toml.DecodeFile(path, &c)
	if err != nil {
		return c, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return c, fmt.Errorf("config %s: unknown key %s", path, undecoded[0])
	}
	return c, nil
}

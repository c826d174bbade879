package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Host carries the host-process settings resolved from DOODLEBOX_*
// environment variables. Command-line flags override these per run.
type Host struct {
	Engine       string `envconfig:"ENGINE" default:"doodlebox_engine.wasm"`
	WindowWidth  int    `envconfig:"WINDOW_WIDTH" default:"1280"`
	WindowHeight int    `envconfig:"WINDOW_HEIGHT" default:"720"`
	TargetFPS    int    `envconfig:"TARGET_FPS" default:"60"`
	Theme        string `envconfig:"THEME" default:"slate"`
	Audio        bool   `envconfig:"AUDIO" default:"false"`
}

func LoadHost() (*Host, error) {
	var h Host
	if err := envconfig.Process("doodlebox", &h); err != nil {
		return nil, err
	}
	return &h, nil
}

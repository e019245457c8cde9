package main

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Options are the command line flags.
type Options struct {
	ConfigFile string `short:"c" long:"config" description:"Optional YAML file; its values override flags"`
	LogLevel   string `long:"log-level" default:"info" description:"Log level (trace, debug, info, warn, error)"`

	Demo
}

// Demo describes the fan-in run. The ms tags name the config file keys.
type Demo struct {
	Channels  int    `short:"n" long:"channels" default:"4" description:"Number of producer channels" ms:"channels"`
	Capacity  int    `long:"capacity" default:"8" description:"Capacity of every channel; 0 for rendezvous" ms:"capacity"`
	Messages  int    `short:"m" long:"messages" default:"1000" description:"Messages sent per producer" ms:"messages"`
	Namespace string `long:"namespace" default:"demo" description:"Prometheus metric namespace" ms:"namespace"`
}

func (d *Demo) validate() error {
	switch {
	case d.Channels <= 0:
		return fmt.Errorf("channels must be > 0, got %d", d.Channels)
	case d.Capacity < 0:
		return fmt.Errorf("capacity must be >= 0, got %d", d.Capacity)
	case d.Messages < 0:
		return fmt.Errorf("messages must be >= 0, got %d", d.Messages)
	}
	return nil
}

// loadFile overlays the keys present in path onto d.
func (d *Demo) loadFile(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	err := v.Unmarshal(d, func(dc *mapstructure.DecoderConfig) {
		dc.ErrorUnused = true
		dc.TagName = "ms"
	})
	if err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

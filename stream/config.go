package stream

import (
	"io"

	"gopkg.in/yaml.v2"
)

// Config of the playback service.
type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		ClientID string `yaml:"clientId"`
		Topics   struct {
			Stream  string `yaml:"stream"`
			Control string `yaml:"control"`
			Export  string `yaml:"export"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	Playback struct {
		Tempo float64 `yaml:"tempo"`
		Loop  bool    `yaml:"loop"`
		// Fade is the cross-fade in seconds when switching between the
		// full model and the selected shapes. Zero switches at once.
		Fade float64 `yaml:"fade"`
	} `yaml:"playback"`
	Http struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
}

// DefaultConfig returns the settings used for anything a config file
// leaves out.
func DefaultConfig() Config {
	var c Config
	c.Mqtt.ClientID = "animtx"
	c.Mqtt.Topics.Stream = "animtx/stream"
	c.Mqtt.Topics.Control = "animtx/control"
	c.Mqtt.Topics.Export = "animtx/export"
	c.Playback.Tempo = 20
	c.Playback.Fade = 0.5
	c.Http.Addr = ":3000"
	return c
}

// ReadConfig decodes YAML over the defaults.
func ReadConfig(r io.Reader) (Config, error) {
	c := DefaultConfig()
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&c); err != nil && err != io.EOF {
		return c, err
	}
	return c, nil
}

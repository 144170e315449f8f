package emu

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/kirsle/configdir"

	"speccy/emu/log"
	"speccy/hw/input"
	"speccy/hw/machine"
	"speccy/hw/ula"
)

type Config struct {
	Machine MachineConfig `toml:"machine"`
	Input   input.Config  `toml:"input"`
	Audio   AudioConfig   `toml:"audio"`
}

type MachineConfig struct {
	Profile string `toml:"profile"`
	ROM     string `toml:"rom"`
	Printer bool   `toml:"printer"`
}

type AudioConfig struct {
	DisableAudio bool `toml:"disable_audio"`
	SampleRate   int  `toml:"sample_rate"`
}

func DefaultConfig() Config {
	return Config{
		Machine: MachineConfig{Profile: machine.Profile48.Name},
		Input:   input.DefaultConfig(),
		Audio:   AudioConfig{SampleRate: 44100},
	}
}

// Check reports the first invalid setting.
func (cfg *Config) Check() error {
	if _, err := machine.ProfileByName(cfg.Machine.Profile); err != nil {
		return fmt.Errorf("machine.profile: %w", err)
	}
	if cfg.Audio.SampleRate <= 0 || cfg.Audio.SampleRate > ula.MaxSampleRate {
		return fmt.Errorf("audio.sample_rate: %d out of range (1-%d)", cfg.Audio.SampleRate, ula.MaxSampleRate)
	}
	if err := cfg.Input.Check(); err != nil {
		return fmt.Errorf("input: %w", err)
	}
	return nil
}

const cfgFilename = "config.toml"

// DefaultConfigPath returns the path of the configuration file in the speccy
// configuration directory.
func DefaultConfigPath() string {
	return filepath.Join(configdir.LocalConfig("speccy"), cfgFilename)
}

// LoadConfigOrDefault loads the configuration at path. Settings missing from
// the file keep their default value. A missing or invalid file gives the
// default configuration.
func LoadConfigOrDefault(path string) Config {
	cfg := DefaultConfig()
	_, err := toml.DecodeFile(path, &cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return DefaultConfig()
	case err != nil:
		log.ModEmu.WarnZ("failed to load config, using defaults").
			String("path", path).
			Error("err", err).
			End()
		return DefaultConfig()
	}
	return cfg
}

// SaveConfig writes cfg at path, creating the parent directory if needed.
func SaveConfig(path string, cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := configdir.MakePath(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, buf, 0644)
}

package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"speccy/emu"
	"speccy/hw/input"
	"speccy/hw/machine"
)

func main() {
	args := parseArgs(os.Args[1:])

	cfgPath := args.Config
	if cfgPath == "" {
		cfgPath = emu.DefaultConfigPath()
	}
	cfg := emu.LoadConfigOrDefault(cfgPath)

	switch args.mode {
	case runMode:
		runMain(args.Run, cfg)
	case infoMode:
		infoMain(args.Info)
	case saveConfigMode:
		checkf(saveConfigMain(args.SaveConfig, cfg, cfgPath), "failed to save configuration")
		fmt.Println("configuration written to", cfgPath)
	case keysMode:
		for _, name := range input.KeyNames() {
			fmt.Println(name)
		}
	case versionMode:
		fmt.Println("speccy", version())
	}
}

// saveConfigMain applies args to cfg and writes it at path.
func saveConfigMain(args SaveConfig, cfg emu.Config, path string) error {
	if args.Profile != "" {
		cfg.Machine.Profile = args.Profile
	}
	if args.ROM != "" {
		cfg.Machine.ROM = args.ROM
	}
	if args.Printer {
		cfg.Machine.Printer = true
	}
	if err := cfg.Check(); err != nil {
		return err
	}
	return emu.SaveConfig(path, cfg)
}

func version() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi.Main.Version == "" {
		return "(devel)"
	}
	return bi.Main.Version
}

// infoMain prints the description of a freshly reset machine. No ROM is
// needed, an empty one is installed.
func infoMain(args Info) {
	p, err := machine.ProfileByName(args.Profile)
	checkf(err, "invalid profile")

	m := machine.New(machine.Config{SampleRate: 44100})
	checkf(m.Reset(p, make([]byte, p.ROMSize)), "machine reset failed")
	checkf(emu.DumpMachine(os.Stdout, m), "dump failed")
	fmt.Println()
}

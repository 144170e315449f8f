package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"speccy/emu/log"
)

type mode byte

const (
	runMode     mode = iota // Run a ROM
	infoMode                // Show machine description
	keysMode                // List host key names
	saveConfigMode          // Write configuration file
	versionMode             // Show version
)

type (
	CLI struct {
		Run        Run        `cmd:"" help:"Run ROM in emulator." default:"withargs"`
		Info       Info       `cmd:"" help:"Show machine timings, memory map and devices as JSON."`
		Keys       Keys       `cmd:"" help:"List host key names, as used in configuration and input scripts."`
		SaveConfig SaveConfig `cmd:"" help:"Write the configuration file, with the given settings changed."`
		Version    Version    `cmd:"" help:"Show speccy version."`

		Config string     `name:"config" help:"Configuration file." type:"path" placeholder:"FILE"`
		Log    logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`

		mode mode
	}

	Run struct {
		ROMPath string `arg:"" optional:"" name:"/path/to/rom" help:"${rompath_help}" type:"existingfile"`

		Profile    string   `name:"profile" help:"Machine profile (48 or 16), overrides configuration."`
		Frames     uint64   `name:"frames" help:"${frames_help}"`
		Keys       string   `name:"keys" help:"${keys_help}" type:"existingfile" placeholder:"FILE"`
		SDL        bool     `name:"sdl" help:"Read keyboard and game controllers through an SDL window."`
		Audio      *outfile `name:"audio" help:"Write audio as raw signed 16-bit little endian mono samples." placeholder:"FILE|stdout|stderr"`
		Snapshot   *outfile `name:"snapshot" help:"Write a JSON snapshot of the machine at exit." placeholder:"FILE|stdout|stderr"`
		Dump       bool     `name:"dump" help:"Print the machine description as JSON at exit."`
		Trace      *outfile `name:"trace" help:"Write CPU trace log." placeholder:"FILE|stdout|stderr"`
		CPUProfile string   `name:"cpuprofile" help:"Write CPU profile to file." type:"path"`
	}

	Info struct {
		Profile string `name:"profile" help:"Machine profile (48 or 16)." default:"48"`
	}

	SaveConfig struct {
		Profile string `name:"profile" help:"Machine profile (48 or 16)."`
		ROM     string `name:"rom" help:"Default ROM image." type:"existingfile" placeholder:"FILE"`
		Printer bool   `name:"printer" help:"Plug the ZX Printer in."`
	}

	Keys    struct{}
	Version struct{}
)

var vars = kong.Vars{
	"rompath_help": "ROM image, defaults to machine.rom from the configuration.",
	"frames_help":  "Number of frames to run. 0 runs until the SDL window is closed.",
	"keys_help":    "Input script, one '<frame> press|release KEY' per line.",
	"log_help":     "Enable logging for specified modules.",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("speccy"),
		kong.Description("48K/16K home computer emulator."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")

	switch ctx.Command() {
	case "info":
		cfg.mode = infoMode
	case "keys":
		cfg.mode = keysMode
	case "save-config":
		cfg.mode = saveConfigMode
	case "version":
		cfg.mode = versionMode
	default:
		cfg.mode = runMode
	}
	return cfg
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	if strings.HasPrefix(ctx.Command(), "run") {
		loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.
`
		var strs []string
		for _, m := range log.ModuleNames() {
			strs = append(strs, "    - "+m)
		}

		fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	}

	return nil
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	nolog := false
	allLogs := false

	tok := ctx.Scan.Pop()
	for _, v := range strings.Split(tok.Value.(string), ",") {
		switch v {
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return fmt.Errorf("unknown log module %s", v)
			}
			lm |= logModMask(mod.Mask())
		}
	}

	if nolog {
		if allLogs {
			return fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if lm != 0 {
			return fmt.Errorf("cannot combine 'no' with other log modules")
		}
		log.Disable()
		return nil
	}

	if allLogs {
		lm = logModMask(log.ModuleMaskAll)
	}

	log.EnableDebugModules(log.ModuleMask(lm))
	return nil
}

type outfile struct {
	w     io.Writer
	name  string
	close func() error
}

// Decode decodes FILE|stdout|stderr into an io.WriteCloser
// that writes to that file.
//
// Implements kong.MapperValue interface.
func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	f.name = tok.Value.(string)
	f.close = func() error { return nil }

	switch f.name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		fd, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.w = fd
		f.close = fd.Close
	}
	return nil
}

func (f *outfile) String() string              { return f.name }
func (f *outfile) Write(p []byte) (int, error) { return f.w.Write(p) }
func (f *outfile) Close() error                { return f.close() }

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+".\n"+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}

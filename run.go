package main

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"

	"github.com/veandco/go-sdl2/sdl"

	"speccy/emu"
	"speccy/emu/log"
	"speccy/hw/input/sdlinput"
	"speccy/hw/sdlaudio"
)

// runMain runs the emulator with the given rom.
func runMain(args Run, cfg emu.Config) {
	if args.Profile != "" {
		cfg.Machine.Profile = args.Profile
	}
	if args.ROMPath == "" {
		args.ROMPath = cfg.Machine.ROM
	}
	if args.ROMPath == "" {
		fatalf("no ROM given and machine.rom not configured")
	}
	if args.Frames == 0 && !args.SDL {
		fatalf("--frames is required without --sdl")
	}

	rom, err := os.ReadFile(args.ROMPath)
	checkf(err, "failed to read ROM")

	e, err := emu.New(cfg, rom)
	checkf(err, "failed to start emulator")

	if args.Trace != nil {
		defer args.Trace.Close()
		e.Machine.SetTraceOutput(args.Trace)
	}

	if args.Keys != "" {
		e.Script, err = emu.LoadScript(args.Keys)
		checkf(err, "failed to load input script")
	}

	if args.Audio != nil {
		defer args.Audio.Close()
		e.Audio = func(samples []int16) {
			if err := binary.Write(args.Audio, binary.LittleEndian, samples); err != nil {
				log.ModSound.ErrorZ("audio output failed").Error("err", err).End()
			}
		}
	}

	if args.CPUProfile != "" {
		f, err := os.Create(args.CPUProfile)
		checkf(err, "failed to create cpu profile file")
		checkf(pprof.StartCPUProfile(f), "failed to start cpu profile")
		defer func() {
			pprof.StopCPUProfile()
			f.Close()
			fmt.Println("CPU profile written to", args.CPUProfile)
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if args.SDL {
		var exitcode int
		sdl.Main(func() {
			src, err := sdlinput.Open("Speccy")
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to open input window: %v\n", err)
				exitcode = 1
				return
			}
			defer src.Close()

			if !cfg.Audio.DisableAudio {
				player, err := sdlaudio.Open(cfg.Audio.SampleRate)
				if err != nil {
					log.ModSound.WarnZ("audio disabled").Error("err", err).End()
				} else {
					defer player.Close()
					e.Audio = chainAudio(e.Audio, player.Play)
				}
			}

			e.Realtime = true
			if err := e.Run(ctx, src, args.Frames); err != nil {
				fmt.Fprintf(os.Stderr, "emulation error: %v\n", err)
				exitcode = 1
			}
		})
		if exitcode != 0 {
			os.Exit(exitcode)
		}
	} else {
		checkf(e.Run(ctx, nil, args.Frames), "emulation error")
	}

	if args.Dump {
		checkf(emu.DumpMachine(os.Stdout, e.Machine), "dump failed")
		fmt.Println()
	}
	if args.Snapshot != nil {
		defer args.Snapshot.Close()
		snap, err := e.Machine.Snapshot()
		checkf(err, "snapshot failed")
		buf, err := snap.MarshalJSON()
		checkf(err, "snapshot failed")
		_, err = args.Snapshot.Write(buf)
		checkf(err, "failed to write snapshot")
	}
}

func chainAudio(a, b func([]int16)) func([]int16) {
	if a == nil {
		return b
	}
	return func(samples []int16) {
		a(samples)
		b(samples)
	}
}

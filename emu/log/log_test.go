package log

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestModuleByName(t *testing.T) {
	mod, ok := ModuleByName("input")
	if !ok || mod != ModInput {
		t.Fatalf("ModuleByName(input) = %v, %t, want %v, true", mod, ok, ModInput)
	}
	if _, ok := ModuleByName("nope"); ok {
		t.Fatalf("ModuleByName(nope) found a module")
	}
}

func TestDebugGating(t *testing.T) {
	defer DisableDebugModules(ModuleMaskAll)

	if ModULA.DebugZ("x") != nil {
		t.Fatalf("debug entry should be nil when module is not enabled")
	}
	if ModULA.WarnZ("x") == nil {
		t.Fatalf("warnings are always enabled")
	}

	EnableDebugModules(ModULA.Mask())
	if ModULA.DebugZ("x") == nil {
		t.Fatalf("debug entry should be non-nil once module is enabled")
	}
	if ModMem.DebugZ("x") != nil {
		t.Fatalf("enabling ula must not enable mem")
	}
}

func TestNilEntryIsNoop(t *testing.T) {
	var e *EntryZ
	e.String("a", "b").Hex16("addr", 0x4000).Bool("ok", true).End()
}

func TestFatalCallsExitFunc(t *testing.T) {
	var code int
	old := SetExitFunc(func(c int) { code = c })
	defer SetExitFunc(old)

	ModEmu.FatalZ("boom").Error("err", errors.New("x")).End()
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
}

func TestFieldValues(t *testing.T) {
	e := newEntryZ().
		Hex8("h8", 0x0f).
		Hex16("h16", 0xbeef).
		Int("int", -3).
		Uint16("u16", 7).
		Bool("b", true).
		Blob("blob", []byte{0xa5})

	var got []string
	for i := range e.zfbuf[:e.zfidx] {
		got = append(got, e.zfbuf[i].Value())
	}
	want := []string{"0f", "beef", "-3", "7", "true", hex.Dump([]byte{0xa5})}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("field values mismatch (-want +got):\n%s", diff)
	}
}

package machine

import (
	"fmt"

	"speccy/hw/memory"
	"speccy/hw/timing"
)

// A Profile describes one machine model.
type Profile struct {
	Name    string
	Timing  timing.Params
	Layout  memory.Layout
	ROMSize int
}

var (
	Profile48 = Profile{
		Name:    "48",
		Timing:  timing.Spectrum48,
		Layout:  memory.Layout48,
		ROMSize: memory.BankSize,
	}
	Profile16 = Profile{
		Name:    "16",
		Timing:  timing.Spectrum48,
		Layout:  memory.Layout16,
		ROMSize: memory.BankSize,
	}
)

var profiles = []Profile{Profile48, Profile16}

// Profiles returns all supported machine profiles.
func Profiles() []Profile {
	return append([]Profile(nil), profiles...)
}

func ProfileByName(name string) (Profile, error) {
	for _, p := range profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("unknown machine profile %q", name)
}

func (p Profile) String() string {
	return p.Name
}

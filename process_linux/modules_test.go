//go:build linux

package process_linux

import (
	"errors"
	"strings"
	"testing"

	"github.com/Aryetis/CatalystAPI/process"
)

const sampleMaps = `560000000000-560000001000 r--p 00000000 103:02 131  /usr/bin/game
560000001000-560000005000 r-xp 00001000 103:02 131  /usr/bin/game
560000005000-560000006000 rw-p 00005000 103:02 131  /usr/bin/game
7f0000000000-7f0000080000 r-xp 00000000 103:02 442  /usr/lib/libengine.so
7f0000080000-7f0000081000 rw-p 00080000 103:02 442  /usr/lib/libengine.so
7f00000a0000-7f00000c0000 rw-p 00000000 00:00 0
7ffd00000000-7ffd00021000 rw-p 00000000 00:00 0    [stack]
`

func TestParseMapsGroupsByModule(t *testing.T) {
	modules, err := parseMaps(strings.NewReader(sampleMaps))
	if err != nil {
		t.Fatalf("parseMaps: %v", err)
	}
	if len(modules) != 2 {
		t.Fatalf("expected 2 file-backed modules, got %d: %v", len(modules), modules)
	}

	game := modules[0]
	if game.Name != "game" || game.Base != 0x560000000000 || game.Size != 0x6000 {
		t.Errorf("game module = %+v", game)
	}
	engine := modules[1]
	if engine.Name != "libengine.so" || engine.Base != 0x7f0000000000 || engine.Size != 0x81000 {
		t.Errorf("engine module = %+v", engine)
	}
}

func TestParseMapsSkipsAnonymousAndSpecial(t *testing.T) {
	modules, err := parseMaps(strings.NewReader(sampleMaps))
	if err != nil {
		t.Fatalf("parseMaps: %v", err)
	}
	for _, m := range modules {
		if m.Name == "[stack]" || m.Name == "" {
			t.Errorf("anonymous or special mapping leaked into modules: %+v", m)
		}
	}
}

func TestModuleLookupFromParsedMaps(t *testing.T) {
	modules, err := parseMaps(strings.NewReader(sampleMaps))
	if err != nil {
		t.Fatalf("parseMaps: %v", err)
	}

	base, err := process.FindModuleBase(modules, "libengine.so")
	if err != nil || base != 0x7f0000000000 {
		t.Errorf("FindModuleBase(libengine.so) = %s, %v", base, err)
	}

	// Exact match only: no extension stripping, no case folding.
	if _, err := process.FindModuleBase(modules, "LibEngine.so"); !errors.Is(err, process.ErrModuleNotFound) {
		t.Errorf("case-folded lookup should miss, got %v", err)
	}
}

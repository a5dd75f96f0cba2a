package hexdump

import (
	"strings"
	"testing"

	"github.com/Aryetis/CatalystAPI/process"
)

// stripANSI removes escape sequences so tests can compare visible text.
func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func TestDumpLayout(t *testing.T) {
	data := append([]byte("Hello, Catalyst!"), 0x00, 0x7f, 0x41, 0x42)
	out := stripANSI(DumpBytes(data))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("20 bytes at 16 per line should be 2 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "00000000  ") {
		t.Errorf("first line should start with the zero offset: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "00000010  ") {
		t.Errorf("second line offset should advance by a full line: %q", lines[1])
	}
	if !strings.Contains(lines[0], "48 65 6c 6c 6f") {
		t.Errorf("hex column missing: %q", lines[0])
	}
	if !strings.HasSuffix(lines[0], "Hello, Catalyst!") {
		t.Errorf("ascii column should render printable bytes verbatim: %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "..AB") {
		t.Errorf("zero and non-printable bytes should render as dots: %q", lines[1])
	}

	// The short last line pads its hex column so ASCII stays aligned.
	if strings.Index(lines[0], " | H") != strings.Index(lines[1], " | .") {
		t.Errorf("ascii columns misaligned:\n%q\n%q", lines[0], lines[1])
	}
}

func TestDumpAtAnchorsOffsets(t *testing.T) {
	out := stripANSI(DumpAt([]byte{0xde, 0xad}, 0x7ff6cb330000))
	if !strings.HasPrefix(out, "7ff6cb330000  ") {
		t.Errorf("offset column should show the remote address: %q", out)
	}
}

func TestMaxLinesTruncation(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxLines = 2
	out := stripANSI(Dump(make([]byte, 64), opts))

	if !strings.Contains(out, "... 32 more bytes") {
		t.Errorf("truncated dump should summarize the remainder:\n%s", out)
	}
	if got := strings.Count(out, "\n"); got != 3 {
		t.Errorf("expected 2 data lines plus the summary, got %d lines", got)
	}
}

func TestHighlightCoversWholePattern(t *testing.T) {
	data := []byte("xxABCyy")
	opts := DefaultOptions()
	opts.HighlightPattern = []byte("ABC")

	for i, want := range []bool{false, false, true, true, true, false, false} {
		if got := highlighted(data, i, opts); got != want {
			t.Errorf("highlighted(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestResolvePointer(t *testing.T) {
	modules := []process.ModuleInfo{
		{Name: "game.exe", Base: 0x140000000, Size: 0x1000},
		{Name: "engine.dll", Base: 0x7ff800000000, Size: 0x2000},
	}

	name, rel, ok := resolvePointer(0x140000010, modules)
	if !ok || name != "game.exe" || rel != 0x10 {
		t.Errorf("resolvePointer = %q+0x%x, %v", name, rel, ok)
	}
	if _, _, ok := resolvePointer(0x140001000, modules); ok {
		t.Error("one past the end of the module must not resolve")
	}
	if _, _, ok := resolvePointer(0x1000, nil); ok {
		t.Error("no modules, no resolution")
	}
}

func TestPointerAnnotation(t *testing.T) {
	opts := DefaultOptions()
	opts.AnnotatePointers = true
	opts.Modules = []process.ModuleInfo{{Name: "engine.dll", Base: 0x7ff800000000, Size: 0x10000}}

	data := make([]byte, 16)
	// Little-endian qword pointing 0x230 into engine.dll.
	copy(data, []byte{0x30, 0x02, 0x00, 0x00, 0xf8, 0x7f, 0x00, 0x00})

	out := stripANSI(Dump(data, opts))
	if !strings.Contains(out, "engine.dll+0x230") {
		t.Errorf("aligned in-module qword should be annotated:\n%s", out)
	}
}

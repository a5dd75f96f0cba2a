// Package hexdump renders byte slices as colored offset/hex/ASCII
// lines for inspecting memory read from another process. Qword columns
// that land inside a known module are annotated as module-relative
// pointers.
package hexdump

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/Aryetis/CatalystAPI/process"

	"github.com/Moonlight-Companies/gologger/coloransi"
)

// Options controls the dump layout and coloring.
type Options struct {
	// BytesPerLine is how many bytes each line covers.
	BytesPerLine int

	// GroupSize groups hex digits without separators (1, 2, 4 or 8).
	GroupSize int

	// ShowOffset and ShowASCII toggle the flanking columns.
	ShowOffset bool
	ShowASCII  bool

	// StartOffset is added to the offset column, so a dump of remote
	// memory shows remote addresses.
	StartOffset uint64

	// OffsetWidth is the offset column width in hex digits.
	OffsetWidth int

	// MaxLines truncates the dump, summarizing the remainder. 0 means
	// no limit.
	MaxLines int

	// HighlightPattern marks every occurrence of the byte sequence.
	HighlightPattern []byte

	// AnnotatePointers appends a column decoding aligned qwords that
	// fall inside one of Modules as module+offset.
	AnnotatePointers bool
	Modules          []process.ModuleInfo

	OffsetColor         coloransi.ColorCode
	HexColor            coloransi.ColorCode
	ASCIIColor          coloransi.ColorCode
	NonPrintableColor   coloransi.ColorCode
	ZeroColor           coloransi.ColorCode
	HighlightColor      coloransi.ColorCode
	HighlightBackground coloransi.ColorCode
	PointerColor        coloransi.ColorCode
}

// DefaultOptions returns the canonical 16-wide layout.
func DefaultOptions() Options {
	return Options{
		BytesPerLine:        16,
		GroupSize:           1,
		ShowOffset:          true,
		ShowASCII:           true,
		OffsetWidth:         8,
		OffsetColor:         coloransi.Cyan,
		HexColor:            coloransi.Green,
		ASCIIColor:          coloransi.White,
		NonPrintableColor:   coloransi.BrightBlack,
		ZeroColor:           coloransi.BrightBlack,
		HighlightColor:      coloransi.Yellow,
		HighlightBackground: coloransi.Black,
		PointerColor:        coloransi.Yellow,
	}
}

// Dump renders data with the given options.
func Dump(data []byte, opts Options) string {
	var buf bytes.Buffer
	DumpToWriter(&buf, data, opts)
	return buf.String()
}

// DumpBytes renders data with DefaultOptions.
func DumpBytes(data []byte) string {
	return Dump(data, DefaultOptions())
}

// DumpAt renders data with the offset column anchored at addr, the way
// the bytes would appear in the remote address space.
func DumpAt(data []byte, addr process.ProcessMemoryAddress) string {
	opts := DefaultOptions()
	opts.StartOffset = uint64(addr)
	opts.OffsetWidth = 12
	return Dump(data, opts)
}

// DumpToWriter streams the dump to w line by line.
func DumpToWriter(w io.Writer, data []byte, opts Options) {
	if opts.BytesPerLine <= 0 {
		opts.BytesPerLine = 16
	}
	if opts.GroupSize <= 0 {
		opts.GroupSize = 1
	}
	if opts.OffsetWidth <= 0 {
		opts.OffsetWidth = 8
	}

	lines := 0
	for off := 0; off < len(data); off += opts.BytesPerLine {
		if opts.MaxLines > 0 && lines >= opts.MaxLines {
			fmt.Fprintf(w, "... %d more bytes\n", len(data)-off)
			return
		}
		end := off + opts.BytesPerLine
		if end > len(data) {
			end = len(data)
		}
		writeLine(w, data, off, end, opts)
		lines++
	}
}

func writeLine(w io.Writer, data []byte, start, end int, opts Options) {
	line := data[start:end]

	if opts.ShowOffset {
		off := fmt.Sprintf("%0*x", opts.OffsetWidth, uint64(start)+opts.StartOffset)
		fmt.Fprint(w, coloransi.Foreground(opts.OffsetColor, off), "  ")
	}

	// Hex column. ANSI sequences make the emitted string longer than
	// what the terminal shows, so the visible width is tracked
	// separately to keep the ASCII column aligned on short last lines.
	width := 0
	split := -1
	if opts.BytesPerLine >= 8 {
		split = opts.BytesPerLine / 2
	}
	for i, b := range line {
		if i > 0 {
			if i == split {
				fmt.Fprint(w, " | ")
				width += 3
			} else if i%opts.GroupSize == 0 {
				fmt.Fprint(w, " ")
				width++
			}
		}
		fmt.Fprint(w, coloransi.Foreground(byteColor(data, start+i, line[i], opts), fmt.Sprintf("%02x", b)))
		width += 2
	}
	if pad := fullHexWidth(opts) - width; pad > 0 {
		fmt.Fprint(w, strings.Repeat(" ", pad))
	}

	if opts.ShowASCII {
		fmt.Fprint(w, " | ")
		for i, b := range line {
			switch {
			case b == 0:
				fmt.Fprint(w, coloransi.Foreground(opts.ZeroColor, "."))
			case !unicode.IsPrint(rune(b)):
				fmt.Fprint(w, coloransi.Foreground(opts.NonPrintableColor, "."))
			case highlighted(data, start+i, opts):
				fmt.Fprint(w, coloransi.Color(opts.HighlightColor, opts.HighlightBackground, string(rune(b))))
			default:
				fmt.Fprint(w, coloransi.Foreground(opts.ASCIIColor, string(rune(b))))
			}
		}
	}

	if opts.AnnotatePointers {
		for off := 0; off+8 <= len(line); off += 8 {
			ptr := process.ProcessMemoryAddress(binary.LittleEndian.Uint64(line[off : off+8]))
			if name, rel, ok := resolvePointer(ptr, opts.Modules); ok {
				fmt.Fprint(w, "  ", coloransi.Foreground(opts.PointerColor, fmt.Sprintf("%s+0x%x", name, rel)))
			}
		}
	}

	fmt.Fprintln(w)
}

// fullHexWidth is the visible width of the hex column on a full line.
func fullHexWidth(opts Options) int {
	groups := (opts.BytesPerLine + opts.GroupSize - 1) / opts.GroupSize
	width := opts.BytesPerLine*2 + groups - 1
	if split := opts.BytesPerLine / 2; opts.BytesPerLine >= 8 {
		if split%opts.GroupSize == 0 {
			// The divider replaces one group separator.
			width += 2
		} else {
			width += 3
		}
	}
	return width
}

func byteColor(data []byte, pos int, b byte, opts Options) coloransi.ColorCode {
	if highlighted(data, pos, opts) {
		return opts.HighlightColor
	}
	if b == 0 {
		return opts.ZeroColor
	}
	return opts.HexColor
}

// highlighted reports whether data[pos] lies inside any occurrence of
// the highlight pattern.
func highlighted(data []byte, pos int, opts Options) bool {
	n := len(opts.HighlightPattern)
	if n == 0 {
		return false
	}
	lo := pos - n + 1
	if lo < 0 {
		lo = 0
	}
	for s := lo; s <= pos && s+n <= len(data); s++ {
		if bytes.Equal(data[s:s+n], opts.HighlightPattern) {
			return true
		}
	}
	return false
}

// resolvePointer maps an address into the module whose range contains
// it, returning the module name and relative offset.
func resolvePointer(ptr process.ProcessMemoryAddress, modules []process.ModuleInfo) (string, uint64, bool) {
	for _, m := range modules {
		if ptr >= m.Base && uint64(ptr-m.Base) < m.Size {
			return m.Name, uint64(ptr - m.Base), true
		}
	}
	return "", 0, false
}

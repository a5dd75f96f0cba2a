package process

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"testing"
)

// fakeProcess serves reads out of a sparse in-memory address space and
// records writes back into it. Addresses outside the populated ranges
// fail the same way a real short transfer does.
type fakeProcess struct {
	pid     ProcessID
	mem     map[ProcessMemoryAddress][]byte
	modules []ModuleInfo
	closed  bool
}

func newFakeProcess() *fakeProcess {
	return &fakeProcess{pid: 4242, mem: map[ProcessMemoryAddress][]byte{}}
}

func (f *fakeProcess) put(addr ProcessMemoryAddress, data []byte) {
	f.mem[addr] = data
}

func (f *fakeProcess) Open(pid ProcessID) error { f.pid = pid; return nil }
func (f *fakeProcess) Close() error             { f.closed = true; return nil }
func (f *fakeProcess) Pid() ProcessID           { return f.pid }

func (f *fakeProcess) Modules() ([]ModuleInfo, error) {
	if f.closed {
		return nil, ErrHandleClosed
	}
	return f.modules, nil
}

func (f *fakeProcess) ModuleBase(name string) (ProcessMemoryAddress, error) {
	mods, err := f.Modules()
	if err != nil {
		return 0, err
	}
	return FindModuleBase(mods, name)
}

func (f *fakeProcess) ReadMemory(addr ProcessMemoryAddress, size ProcessMemorySize) ([]byte, error) {
	if f.closed {
		return nil, ErrHandleClosed
	}
	for base, blob := range f.mem {
		if addr >= base && addr+ProcessMemoryAddress(size) <= base+ProcessMemoryAddress(len(blob)) {
			off := addr - base
			out := make([]byte, size)
			copy(out, blob[off:])
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: read of %d bytes at %s", ErrAccessDenied, size, addr)
}

func (f *fakeProcess) WriteMemory(addr ProcessMemoryAddress, data []byte) error {
	if f.closed {
		return ErrHandleClosed
	}
	for base, blob := range f.mem {
		if addr >= base && addr+ProcessMemoryAddress(len(data)) <= base+ProcessMemoryAddress(len(blob)) {
			copy(blob[addr-base:], data)
			return nil
		}
	}
	return fmt.Errorf("%w: write of %d bytes at %s", ErrAccessDenied, len(data), addr)
}

func TestTypedReadsLittleEndian(t *testing.T) {
	fp := newFakeProcess()

	buf := make([]byte, 32)
	buf[0] = 0x7F
	binary.LittleEndian.PutUint32(buf[4:], 0xDEADBEEF)
	binary.LittleEndian.PutUint64(buf[8:], 0x1122334455667788)
	binary.LittleEndian.PutUint32(buf[16:], math.Float32bits(13.5))
	binary.LittleEndian.PutUint64(buf[24:], math.Float64bits(-2.25))
	fp.put(0x1000, buf)

	if v, err := ReadUint8(fp, 0x1000); err != nil || v != 0x7F {
		t.Errorf("ReadUint8 = %v, %v", v, err)
	}
	if v, err := ReadUint32(fp, 0x1004); err != nil || v != 0xDEADBEEF {
		t.Errorf("ReadUint32 = %#x, %v", v, err)
	}
	if v, err := ReadUint64(fp, 0x1008); err != nil || v != 0x1122334455667788 {
		t.Errorf("ReadUint64 = %#x, %v", v, err)
	}
	if v, err := ReadInt64(fp, 0x1008); err != nil || v != 0x1122334455667788 {
		t.Errorf("ReadInt64 = %#x, %v", v, err)
	}
	if v, err := ReadFloat32(fp, 0x1010); err != nil || v != 13.5 {
		t.Errorf("ReadFloat32 = %v, %v", v, err)
	}
	if v, err := ReadFloat64(fp, 0x1018); err != nil || v != -2.25 {
		t.Errorf("ReadFloat64 = %v, %v", v, err)
	}
}

func TestTypedWritesRoundTrip(t *testing.T) {
	fp := newFakeProcess()
	fp.put(0x2000, make([]byte, 16))

	if err := WriteFloat32(fp, 0x2000, 99.75); err != nil {
		t.Fatalf("WriteFloat32: %v", err)
	}
	if v, err := ReadFloat32(fp, 0x2000); err != nil || v != 99.75 {
		t.Errorf("read back = %v, %v", v, err)
	}

	if err := WriteUint64(fp, 0x2008, 0xCAFEF00D); err != nil {
		t.Fatalf("WriteUint64: %v", err)
	}
	if v, err := ReadUint64(fp, 0x2008); err != nil || v != 0xCAFEF00D {
		t.Errorf("read back = %#x, %v", v, err)
	}
}

func TestTypedReadPropagatesFailure(t *testing.T) {
	fp := newFakeProcess()
	// 0x3000 holds only 2 bytes; a 4-byte read must fail outright,
	// never return a truncated buffer.
	fp.put(0x3000, []byte{0xAA, 0xBB})

	if _, err := ReadUint32(fp, 0x3000); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("ReadUint32 on short region: err = %v, want ErrAccessDenied", err)
	}
}

func TestReadAfterCloseFails(t *testing.T) {
	fp := newFakeProcess()
	fp.put(0x1000, make([]byte, 8))
	fp.Close()

	if _, err := ReadUint64(fp, 0x1000); !errors.Is(err, ErrHandleClosed) {
		t.Errorf("read after close: err = %v, want ErrHandleClosed", err)
	}
	if err := WriteUint8(fp, 0x1000, 1); !errors.Is(err, ErrHandleClosed) {
		t.Errorf("write after close: err = %v, want ErrHandleClosed", err)
	}
}

func TestFindModuleBase(t *testing.T) {
	modules := []ModuleInfo{
		{Name: "a.exe", Base: 0x140000000, Size: 0x1000},
		{Name: "b.dll", Base: 0x7FF800000000, Size: 0x2000},
	}

	if base, err := FindModuleBase(modules, "b.dll"); err != nil || base != 0x7FF800000000 {
		t.Errorf("b.dll: base = %s, err = %v", base, err)
	}
	if _, err := FindModuleBase(modules, "c.dll"); !errors.Is(err, ErrModuleNotFound) {
		t.Errorf("c.dll: err = %v, want ErrModuleNotFound", err)
	}
	// Exact match includes case and extension.
	if _, err := FindModuleBase(modules, "B.dll"); !errors.Is(err, ErrModuleNotFound) {
		t.Errorf("B.dll: err = %v, want ErrModuleNotFound", err)
	}
	if _, err := FindModuleBase(nil, "b.dll"); !errors.Is(err, ErrModuleNotFound) {
		t.Errorf("empty list: err = %v, want ErrModuleNotFound", err)
	}
}

func TestReadPath(t *testing.T) {
	fp := newFakeProcess()

	// base+0x10 -> ptr to 0x5000; 0x5000+0x8 -> ptr to 0x6000; value at 0x6000+0x4
	root := make([]byte, 0x20)
	binary.LittleEndian.PutUint64(root[0x10:], 0x5000)
	fp.put(0x4000, root)

	mid := make([]byte, 0x10)
	binary.LittleEndian.PutUint64(mid[0x8:], 0x6000)
	fp.put(0x5000, mid)

	leaf := make([]byte, 0x10)
	binary.LittleEndian.PutUint32(leaf[0x4:], math.Float32bits(3.75))
	fp.put(0x6000, leaf)

	v, err := ReadPath[float32](fp, 0x4000, 0x10, 0x8, 0x4)
	if err != nil {
		t.Fatalf("ReadPath: %v", err)
	}
	if v != 3.75 {
		t.Errorf("ReadPath = %v, want 3.75", v)
	}
}

func TestReadPathNullLink(t *testing.T) {
	fp := newFakeProcess()
	fp.put(0x4000, make([]byte, 0x20)) // all-zero pointers

	if _, err := ReadPath[uint32](fp, 0x4000, 0x10, 0x8); err == nil {
		t.Error("ReadPath through null pointer: expected error")
	}
}

func TestReadPathNoOffsets(t *testing.T) {
	fp := newFakeProcess()
	blob := make([]byte, 8)
	binary.LittleEndian.PutUint64(blob, 77)
	fp.put(0x4000, blob)

	v, err := ReadPath[uint64](fp, 0x4000)
	if err != nil || v != 77 {
		t.Errorf("ReadPath direct = %v, %v", v, err)
	}
}

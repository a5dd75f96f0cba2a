package process

import (
	"encoding/binary"
	"math"
)

// Typed transfer helpers. These are thin conveniences built strictly on
// ReadMemory/WriteMemory; every value is interpreted little-endian and
// every underlying transfer failure is propagated unchanged.

// ReadUint8 reads an unsigned 8-bit integer from the specified address
func ReadUint8(p Process, addr ProcessMemoryAddress) (uint8, error) {
	data, err := p.ReadMemory(addr, 1)
	if err != nil {
		return 0, err
	}
	return data[0], nil
}

// ReadUint16 reads an unsigned 16-bit integer from the specified address
func ReadUint16(p Process, addr ProcessMemoryAddress) (uint16, error) {
	data, err := p.ReadMemory(addr, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(data), nil
}

// ReadUint32 reads an unsigned 32-bit integer from the specified address
func ReadUint32(p Process, addr ProcessMemoryAddress) (uint32, error) {
	data, err := p.ReadMemory(addr, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(data), nil
}

// ReadUint64 reads an unsigned 64-bit integer from the specified address
func ReadUint64(p Process, addr ProcessMemoryAddress) (uint64, error) {
	data, err := p.ReadMemory(addr, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(data), nil
}

// ReadInt32 reads a signed 32-bit integer from the specified address
func ReadInt32(p Process, addr ProcessMemoryAddress) (int32, error) {
	v, err := ReadUint32(p, addr)
	return int32(v), err
}

// ReadInt64 reads a signed 64-bit integer from the specified address
func ReadInt64(p Process, addr ProcessMemoryAddress) (int64, error) {
	v, err := ReadUint64(p, addr)
	return int64(v), err
}

// ReadFloat32 reads a 32-bit floating point number from the specified address
func ReadFloat32(p Process, addr ProcessMemoryAddress) (float32, error) {
	v, err := ReadUint32(p, addr)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadFloat64 reads a 64-bit floating point number from the specified address
func ReadFloat64(p Process, addr ProcessMemoryAddress) (float64, error) {
	v, err := ReadUint64(p, addr)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadPointer reads a 64-bit pointer value from the specified address
func ReadPointer(p Process, addr ProcessMemoryAddress) (ProcessMemoryAddress, error) {
	v, err := ReadUint64(p, addr)
	return ProcessMemoryAddress(v), err
}

// WriteUint8 writes an unsigned 8-bit integer to the specified address
func WriteUint8(p Process, addr ProcessMemoryAddress, v uint8) error {
	return p.WriteMemory(addr, []byte{v})
}

// WriteUint32 writes an unsigned 32-bit integer to the specified address
func WriteUint32(p Process, addr ProcessMemoryAddress, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return p.WriteMemory(addr, buf[:])
}

// WriteUint64 writes an unsigned 64-bit integer to the specified address
func WriteUint64(p Process, addr ProcessMemoryAddress, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return p.WriteMemory(addr, buf[:])
}

// WriteFloat32 writes a 32-bit floating point number to the specified address
func WriteFloat32(p Process, addr ProcessMemoryAddress, v float32) error {
	return WriteUint32(p, addr, math.Float32bits(v))
}

// WriteFloat64 writes a 64-bit floating point number to the specified address
func WriteFloat64(p Process, addr ProcessMemoryAddress, v float64) error {
	return WriteUint64(p, addr, math.Float64bits(v))
}

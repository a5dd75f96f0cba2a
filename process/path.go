package process

import (
	"fmt"
	"unsafe"
)

// ReadPath reads a value of type T at the end of a pointer path.
// It starts at base, adds the first offset, reads a pointer, adds the
// next offset, reads a pointer, and so on. The last offset is added to
// the final pointer and T is read from that address. With no offsets,
// T is read directly from base. Pointers are assumed to be 8 bytes.
func ReadPath[T any](p Process, base ProcessMemoryAddress, offsets ...ProcessMemorySize) (T, error) {
	currentAddr := base

	for i := 0; i < len(offsets)-1; i++ {
		ptrAddr := currentAddr + ProcessMemoryAddress(offsets[i])

		ptrVal, err := ReadUint64(p, ptrAddr)
		if err != nil {
			var zero T
			return zero, fmt.Errorf("failed to read pointer at offset %d (addr %s): %w", i, ptrAddr, err)
		}
		if ptrVal == 0 {
			var zero T
			return zero, fmt.Errorf("pointer at offset %d (addr %s) is null", i, ptrAddr)
		}

		currentAddr = ProcessMemoryAddress(ptrVal)
	}

	finalOffset := ProcessMemorySize(0)
	if len(offsets) > 0 {
		finalOffset = offsets[len(offsets)-1]
	}

	return readT[T](p, currentAddr+ProcessMemoryAddress(finalOffset))
}

func readT[T any](p Process, addr ProcessMemoryAddress) (T, error) {
	var t T
	size := ProcessMemorySize(unsafe.Sizeof(t))
	if size == 0 {
		return t, nil
	}

	data, err := p.ReadMemory(addr, size)
	if err != nil {
		return t, err
	}

	dst := unsafe.Slice((*byte)(unsafe.Pointer(&t)), size)
	copy(dst, data)
	return t, nil
}

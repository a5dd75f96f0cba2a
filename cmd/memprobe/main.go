package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Aryetis/CatalystAPI/hexdump"
	"github.com/Aryetis/CatalystAPI/process"
)

func main() {
	nameFlag := flag.String("name", "", "Process image name to attach to")
	pidFlag := flag.Int("pid", 0, "Process ID to attach to (alternative to -name)")
	moduleFlag := flag.String("module", "", "Module whose base the address is relative to")
	addrFlag := flag.String("addr", "0x0", "Address to read, hex (relative to -module when set)")
	lenFlag := flag.Uint("len", 256, "Number of bytes to read")
	modulesFlag := flag.Bool("modules", false, "List the process modules and exit")
	flag.Parse()

	if *nameFlag == "" && *pidFlag == 0 {
		fmt.Println("Error: one of -name or -pid is required")
		flag.Usage()
		os.Exit(1)
	}

	proc, err := getProcess(*nameFlag, *pidFlag)
	if err != nil {
		fmt.Printf("Error attaching to process: %v\n", err)
		os.Exit(1)
	}
	defer proc.Close()

	fmt.Printf("Attached to process %d\n", proc.Pid())

	modules, err := proc.Modules()
	if err != nil {
		fmt.Printf("Error enumerating modules: %v\n", err)
		os.Exit(1)
	}

	if *modulesFlag {
		for _, m := range modules {
			fmt.Printf("%s  %s  0x%x\n", m.Base, m.Name, m.Size)
		}
		return
	}

	addr, err := parseAddress(*addrFlag)
	if err != nil {
		fmt.Printf("Error parsing -addr: %v\n", err)
		os.Exit(1)
	}

	if *moduleFlag != "" {
		base, err := process.FindModuleBase(modules, *moduleFlag)
		if err != nil {
			fmt.Printf("Error resolving module: %v\n", err)
			os.Exit(1)
		}
		addr += base
	}

	data, err := proc.ReadMemory(addr, process.ProcessMemorySize(*lenFlag))
	if err != nil {
		fmt.Printf("Error reading %d bytes at %s: %v\n", *lenFlag, addr, err)
		os.Exit(1)
	}

	opts := hexdump.DefaultOptions()
	opts.StartOffset = uint64(addr)
	opts.OffsetWidth = 12
	opts.AnnotatePointers = true
	opts.Modules = modules
	fmt.Print(hexdump.Dump(data, opts))
}

func parseAddress(s string) (process.ProcessMemoryAddress, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 64)
	if err != nil {
		return 0, err
	}
	return process.ProcessMemoryAddress(v), nil
}

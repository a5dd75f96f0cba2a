package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/Aryetis/CatalystAPI/input"
)

// Virtual keys worth watching by default: WASD plus space and shift.
var watched = []struct {
	name string
	code input.KeyCode
}{
	{"W", 0x57},
	{"A", 0x41},
	{"S", 0x53},
	{"D", 0x44},
	{"SPACE", 0x20},
	{"SHIFT", 0x10},
}

func main() {
	targetFlag := flag.String("target", "", "Only report input while this process owns the foreground window")
	intervalFlag := flag.Duration("interval", 10*time.Millisecond, "Poll interval")
	flag.Parse()

	tracker := input.NewTracker()
	if err := tracker.EnableHook(); err != nil {
		fmt.Printf("Error enabling input hooks: %v\n", err)
		os.Exit(1)
	}
	defer tracker.DisableHook()

	if *targetFlag != "" {
		tracker.SetScopeTarget(*targetFlag)
		fmt.Printf("Scoped to %s\n", *targetFlag)
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	ticker := time.NewTicker(*intervalFlag)
	defer ticker.Stop()

	last := ""
	for {
		select {
		case <-interrupt:
			fmt.Println()
			return
		case <-ticker.C:
			line := describe(tracker)
			if line != last {
				fmt.Println(line)
				last = line
			}
		}
	}
}

func describe(t *input.Tracker) string {
	held := ""
	for _, k := range watched {
		if t.IsHeld(k.code) {
			held += k.name + " "
		}
	}
	for _, b := range []input.Button{
		input.ButtonLeft, input.ButtonRight, input.ButtonMiddle,
		input.ButtonX1, input.ButtonX2, input.WheelUp, input.WheelDown,
	} {
		if t.IsButtonHeld(b) {
			held += b.String() + " "
		}
	}
	x, y := t.CursorPosition()
	return fmt.Sprintf("cursor=(%d,%d) held=[%s]", x, y, held)
}

//go:build windows

package input

import (
	"fmt"
	"runtime"
	"sync"
	"syscall"
	"unsafe"
)

var (
	user32                  = syscall.NewLazyDLL("user32.dll")
	kernel32                = syscall.NewLazyDLL("kernel32.dll")
	procSetWindowsHookEx    = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procGetMessage          = user32.NewProc("GetMessageW")
	procPostThreadMessage   = user32.NewProc("PostThreadMessageW")
	procGetKeyState         = user32.NewProc("GetKeyState")
	procGetCurrentThreadId  = kernel32.NewProc("GetCurrentThreadId")
)

const (
	WH_KEYBOARD_LL = 13
	WH_MOUSE_LL    = 14

	WM_KEYDOWN     = 0x0100
	WM_KEYUP       = 0x0101
	WM_SYSKEYDOWN  = 0x0104
	WM_SYSKEYUP    = 0x0105
	WM_MOUSEMOVE   = 0x0200
	WM_LBUTTONDOWN = 0x0201
	WM_LBUTTONUP   = 0x0202
	WM_RBUTTONDOWN = 0x0204
	WM_RBUTTONUP   = 0x0205
	WM_MBUTTONDOWN = 0x0207
	WM_MBUTTONUP   = 0x0208
	WM_MOUSEWHEEL  = 0x020A
	WM_XBUTTONDOWN = 0x020B
	WM_XBUTTONUP   = 0x020C
	WM_QUIT        = 0x0012

	XBUTTON1 = 1
	XBUTTON2 = 2

	VK_CAPITAL = 0x14
	VK_NUMLOCK = 0x90
	VK_SCROLL  = 0x91
)

type POINT struct {
	X, Y int32
}

type MSG struct {
	Hwnd    syscall.Handle
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      POINT
}

type KBDLLHOOKSTRUCT struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type MSLLHOOKSTRUCT struct {
	Pt          POINT
	MouseData   uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

// windowsBackend runs both low-level hooks on one dedicated OS thread.
// Low-level hooks deliver through the registering thread's message
// queue, so that thread is locked and pumps messages until uninstall
// posts WM_QUIT. The hook callbacks stay minimal: translate the payload
// and hand it to the tracker, which only flips bit flags — a stalled
// callback risks the OS force-unhooking us.
type windowsBackend struct {
	mu       sync.Mutex
	apply    func(RawEvent)
	threadID uint32
	done     chan struct{}

	keyboardCb uintptr
	mouseCb    uintptr
}

func newPlatformBackend() hookBackend {
	b := &windowsBackend{}
	// NewCallback allocations are permanent, so make them once per
	// backend, not per install.
	b.keyboardCb = syscall.NewCallback(b.onKeyboard)
	b.mouseCb = syscall.NewCallback(b.onMouse)
	return b
}

func (b *windowsBackend) install(apply func(RawEvent)) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.done != nil {
		return fmt.Errorf("hooks already installed")
	}
	b.apply = apply

	ready := make(chan error, 1)
	done := make(chan struct{})
	go b.hookThread(ready, done)

	if err := <-ready; err != nil {
		return err
	}
	b.done = done
	return nil
}

// hookThread registers both hooks, reports readiness and pumps messages
// until WM_QUIT. Either both hooks come up or neither does: a mouse
// registration failure rolls the keyboard hook back before reporting.
func (b *windowsBackend) hookThread(ready chan<- error, done chan struct{}) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(done)

	tid, _, _ := procGetCurrentThreadId.Call()

	keyHook, _, err := procSetWindowsHookEx.Call(WH_KEYBOARD_LL, b.keyboardCb, 0, 0)
	if keyHook == 0 {
		ready <- fmt.Errorf("SetWindowsHookEx(WH_KEYBOARD_LL): %v", err)
		return
	}
	mouseHook, _, err := procSetWindowsHookEx.Call(WH_MOUSE_LL, b.mouseCb, 0, 0)
	if mouseHook == 0 {
		procUnhookWindowsHookEx.Call(keyHook)
		ready <- fmt.Errorf("SetWindowsHookEx(WH_MOUSE_LL): %v", err)
		return
	}

	b.threadID = uint32(tid)
	ready <- nil

	var msg MSG
	for {
		ret, _, _ := procGetMessage.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
		if int32(ret) <= 0 {
			break
		}
	}

	procUnhookWindowsHookEx.Call(keyHook)
	procUnhookWindowsHookEx.Call(mouseHook)
}

func (b *windowsBackend) uninstall() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.done == nil {
		return
	}
	procPostThreadMessage.Call(uintptr(b.threadID), WM_QUIT, 0, 0)
	<-b.done
	b.done = nil
	b.threadID = 0
}

// lockKeyStates reads the low-order toggle bit the OS keeps for
// lock-style keys, so a tracker enabled while caps lock is already on
// reports the correct parity immediately.
func (b *windowsBackend) lockKeyStates() map[KeyCode]bool {
	states := make(map[KeyCode]bool, 3)
	for _, vk := range []KeyCode{VK_CAPITAL, VK_NUMLOCK, VK_SCROLL} {
		ret, _, _ := procGetKeyState.Call(uintptr(vk))
		states[vk] = ret&1 != 0
	}
	return states
}

func (b *windowsBackend) onKeyboard(nCode int, wParam, lParam uintptr) uintptr {
	if nCode >= 0 {
		kb := (*KBDLLHOOKSTRUCT)(unsafe.Pointer(lParam))
		switch wParam {
		case WM_KEYDOWN, WM_SYSKEYDOWN:
			b.apply(RawEvent{Kind: KeyDown, Key: KeyCode(kb.VkCode)})
		case WM_KEYUP, WM_SYSKEYUP:
			b.apply(RawEvent{Kind: KeyUp, Key: KeyCode(kb.VkCode)})
		}
	}
	ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
	return ret
}

func (b *windowsBackend) onMouse(nCode int, wParam, lParam uintptr) uintptr {
	if nCode >= 0 {
		ms := (*MSLLHOOKSTRUCT)(unsafe.Pointer(lParam))
		switch wParam {
		case WM_MOUSEMOVE:
			b.apply(RawEvent{Kind: Move, X: ms.Pt.X, Y: ms.Pt.Y})
		case WM_LBUTTONDOWN:
			b.apply(RawEvent{Kind: ButtonDown, Button: ButtonLeft})
		case WM_LBUTTONUP:
			b.apply(RawEvent{Kind: ButtonUp, Button: ButtonLeft})
		case WM_RBUTTONDOWN:
			b.apply(RawEvent{Kind: ButtonDown, Button: ButtonRight})
		case WM_RBUTTONUP:
			b.apply(RawEvent{Kind: ButtonUp, Button: ButtonRight})
		case WM_MBUTTONDOWN:
			b.apply(RawEvent{Kind: ButtonDown, Button: ButtonMiddle})
		case WM_MBUTTONUP:
			b.apply(RawEvent{Kind: ButtonUp, Button: ButtonMiddle})
		case WM_XBUTTONDOWN:
			b.apply(RawEvent{Kind: ButtonDown, Button: xbutton(ms.MouseData)})
		case WM_XBUTTONUP:
			b.apply(RawEvent{Kind: ButtonUp, Button: xbutton(ms.MouseData)})
		case WM_MOUSEWHEEL:
			b.apply(RawEvent{Kind: Wheel, WheelDelta: int16(ms.MouseData >> 16)})
		}
	}
	ret, _, _ := procCallNextHookEx.Call(0, uintptr(nCode), wParam, lParam)
	return ret
}

// xbutton disambiguates side buttons via the high word of the event's
// mouse data.
func xbutton(mouseData uint32) Button {
	if uint16(mouseData>>16) == XBUTTON2 {
		return ButtonX2
	}
	return ButtonX1
}

//go:build windows

package overlay

import (
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver"
)

const (
	gwlExStyle int32 = -20

	wsExLayered     = 0x00080000
	wsExTransparent = 0x00000020
	wsExNoActivate  = 0x08000000
	wsExToolWindow  = 0x00000080

	hwndTopmost   = ^uintptr(0) // (HWND)-1
	swpNoSize     = 0x0001
	swpNoMove     = 0x0002
	swpNoActivate = 0x0010
)

var (
	user32DLL             = syscall.NewLazyDLL("user32.dll")
	procGetWindowLongPtrW = user32DLL.NewProc("GetWindowLongPtrW")
	procSetWindowLongPtrW = user32DLL.NewProc("SetWindowLongPtrW")
	procSetWindowPos      = user32DLL.NewProc("SetWindowPos")
)

// applyPassthrough makes the surface click-through, non-activating, and
// topmost so it never intercepts input and stays above full-screen apps.
func applyPassthrough(window fyne.Window) {
	nativeWindow, ok := window.(driver.NativeWindow)
	if !ok {
		return
	}

	nativeWindow.RunNative(func(context any) {
		var hwnd uintptr
		switch value := context.(type) {
		case driver.WindowsWindowContext:
			hwnd = value.HWND
		case *driver.WindowsWindowContext:
			hwnd = value.HWND
		default:
			return
		}
		if hwnd == 0 {
			return
		}

		style, _, _ := procGetWindowLongPtrW.Call(hwnd, int32ToUintptr(gwlExStyle))
		wanted := style | wsExLayered | wsExTransparent | wsExNoActivate | wsExToolWindow
		if wanted != style {
			procSetWindowLongPtrW.Call(hwnd, int32ToUintptr(gwlExStyle), wanted)
		}
		procSetWindowPos.Call(hwnd, hwndTopmost, 0, 0, 0, 0, swpNoSize|swpNoMove|swpNoActivate)
	})
}

func int32ToUintptr(value int32) uintptr {
	return uintptr(uint32(value))
}

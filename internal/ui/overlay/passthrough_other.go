//go:build !windows

package overlay

import "fyne.io/fyne/v2"

// applyPassthrough is a no-op outside Windows. The splash window driver
// already yields an undecorated always-on-top surface on those platforms.
func applyPassthrough(window fyne.Window) {}

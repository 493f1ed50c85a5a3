package platform

// Autostart toggles launch-at-login registration for the agent.
type Autostart interface {
	Enable(appName, execPath string) error
	Disable(appName string) error
}

type autostartService struct{}

// NewAutostart returns the platform-specific autostart implementation.
func NewAutostart() Autostart {
	return autostartService{}
}

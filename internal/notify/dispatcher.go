// Package notify delivers alarm side effects: desktop notifications and sound.
// Both are best-effort and independent of each other.
package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"sync"

	"github.com/0xAX/notificator"
)

type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

func ParsePermission(s string) Permission {
	switch Permission(s) {
	case PermissionGranted, PermissionDenied:
		return Permission(s)
	}
	return PermissionDefault
}

// Dispatcher is a capability-gated notification sink. RequestPermission must
// return without waiting on the user.
type Dispatcher interface {
	Permission() Permission
	RequestPermission() Permission
	Notify(title, body string) error
}

// Desktop pushes notifications through the platform notifier binary. Permission
// "default" resolves on request to granted when that binary is installed.
type Desktop struct {
	mu         sync.Mutex
	permission Permission
	notifier   *notificator.Notificator
	icon       string
	lookPath   func(string) (string, error)
}

func NewDesktop(appName, icon string, permission Permission) *Desktop {
	return &Desktop{
		permission: permission,
		notifier: notificator.New(notificator.Options{
			DefaultIcon: icon,
			AppName:     appName,
		}),
		icon:     icon,
		lookPath: exec.LookPath,
	}
}

func (d *Desktop) Permission() Permission {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.permission
}

func (d *Desktop) RequestPermission() Permission {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.permission != PermissionDefault {
		return d.permission
	}
	if _, err := d.lookPath(notifierBinary()); err != nil {
		d.permission = PermissionDenied
	} else {
		d.permission = PermissionGranted
	}
	return d.permission
}

func (d *Desktop) Notify(title, body string) error {
	if d.Permission() != PermissionGranted {
		return fmt.Errorf("notification permission is %s", d.Permission())
	}
	if err := d.notifier.Push(title, body, d.icon, notificator.UR_CRITICAL); err != nil {
		return fmt.Errorf("❌ Failed to push notification: %w", err)
	}
	return nil
}

func notifierBinary() string {
	switch runtime.GOOS {
	case "darwin":
		return "osascript"
	case "windows":
		return "growlnotify"
	default:
		return "notify-send"
	}
}

// Disabled never delivers anything. Used when notifications are switched off.
type Disabled struct{}

func (Disabled) Permission() Permission          { return PermissionDenied }
func (Disabled) RequestPermission() Permission   { return PermissionDenied }
func (Disabled) Notify(title, body string) error { return fmt.Errorf("notifications disabled") }

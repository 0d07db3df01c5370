// +build !windows

package spanbglib

import (
	"errors"
	"os"
	"os/exec"
	"os/user"
	"strings"
)

const dbusAddress = "DBUS_SESSION_BUS_ADDRESS"

func setDBUSAddress() error {
	dbus := os.Getenv(dbusAddress)
	if dbus == "" {
		// For now just assume we're dealing with per-user dbus sessions
		user, err := user.Current()
		if err != nil {
			return nil
		}
		uid := user.Uid
		if uid == "" {
			return errors.New("No $UID set")
		}
		return os.Setenv(dbusAddress, "unix:path=/run/user/"+uid+"/bus")
	}

	return nil
}

func setGnomeWallpaper(path string) error {
	_, err := runBash(`
		gsettings set org.gnome.desktop.background picture-options spanned
		gsettings set org.gnome.desktop.background picture-uri "file://` + path + `"
	`)
	return err
}

// A spanning image anchored at the global top left is exactly what tiled
// mode displays when xinerama is ignored.
func setFehWallpaper(path string) error {
	cmd := exec.Command("feh", "--no-xinerama", "--bg-tile", path)
	cmd.SysProcAttr = sysProcAttr
	return cmd.Run()
}

// Apply sets path as the background of the session found during Displays,
// discovering one if Displays was never called.
func (d *xDesktop) Apply(path string) error {
	s := d.session
	if s == nil {
		sessions, err := listSessions()
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			return errors.New("No usable X sessions found")
		}
		s = &sessions[0]
		if _, err := xSessionRects(s); err != nil {
			return err
		}
		d.session = s
	}

	os.Setenv("DISPLAY", s.display)

	if err := setDBUSAddress(); err != nil {
		return err
	}

	if s.env == gnome {
		return setGnomeWallpaper(path)
	}

	return setFehWallpaper(path)
}

// CheckIfLocked reports whether a screen locker appears to be active.
// GNOME exposes this over dbus; for everything else look for the common
// locker processes.
func CheckIfLocked() (bool, error) {
	if err := setDBUSAddress(); err != nil {
		return false, err
	}

	out, err := runBash(
		`gdbus call --session --dest org.gnome.ScreenSaver ` +
			`--object-path /org/gnome/ScreenSaver ` +
			`--method org.gnome.ScreenSaver.GetActive 2>/dev/null ` +
			`|| pgrep -x 'i3lock|slock|xsecurelock' || true`)
	if err != nil {
		return false, err
	}

	out = strings.TrimSpace(out)
	return out != "" && out != "(false,)", nil
}

// No-op
func AttachParentConsole() {}

func runBash(cmd string) (string, error) {
	// See http://redsymbol.net/articles/unofficial-bash-strict-mode/
	command := `
		set -euo pipefail
		IFS=$'\n\t'
		` + cmd + "\n"

	bash := exec.Command("/usr/bin/env", "bash")
	bash.Stdin = strings.NewReader(command)
	bash.Stderr = os.Stderr

	bashOut, err := bash.Output()
	return string(bashOut), err
}

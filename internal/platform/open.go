package platform

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// ErrNotOpenable is returned for links that are missing or not http(s).
var ErrNotOpenable = errors.New("link cannot be opened")

// CheckLink validates that link is an absolute http or https URL.
func CheckLink(link string) error {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q", ErrNotOpenable, link)
	}
	return nil
}

// opener returns the command that opens a URL in the default browser.
func opener(goos string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}
	default:
		return "xdg-open", nil
	}
}

// OpenURL starts the system browser on link and returns without waiting
// for it.
func OpenURL(link string) error {
	if err := CheckLink(link); err != nil {
		return err
	}
	name, args := opener(runtime.GOOS)
	cmd := exec.Command(name, append(args, link)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening %s: %w", link, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

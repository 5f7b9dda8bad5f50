package extension

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/pkg/browser"
)

// Opener launches a shortcut target.
type Opener func(target string) error

// OpenTarget opens URLs in the browser and runs anything else as a shell
// command without waiting for it.
func OpenTarget(target string) error {
	if isURL(target) {
		return browser.OpenURL(target)
	}
	cmd := exec.Command("sh", "-c", target)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to run %q: %w", target, err)
	}
	go cmd.Wait() //nolint:errcheck
	return nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

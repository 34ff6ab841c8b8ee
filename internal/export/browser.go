package export

import (
	"fmt"
	"log"

	"github.com/go-rod/rod/lib/launcher"
)

// resolveBrowser downloads a Chromium build if one is not cached yet and returns the
// path to its executable.
func resolveBrowser() (string, error) {
	log.Printf("[export] resolving browser binary")
	path, err := launcher.NewBrowser().Get()
	if err != nil {
		return "", fmt.Errorf("failed to download browser: %w", err)
	}
	return path, nil
}

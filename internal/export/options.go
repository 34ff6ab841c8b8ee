package export

import "time"

// chromeConfig holds the configuration of a ChromeEngine
type chromeConfig struct {
	chromePath   string
	timeout      time.Duration
	noSandbox    bool
	autoDownload bool
	headless     string
}

func defaultChromeConfig() chromeConfig {
	return chromeConfig{
		timeout:  30 * time.Second,
		headless: "new",
	}
}

// Option configures a ChromeEngine.
type Option func(*chromeConfig)

// WithChromePath sets the Chrome or Chromium executable. By default chromedp searches
// the standard install locations.
func WithChromePath(path string) Option {
	return func(c *chromeConfig) {
		c.chromePath = path
	}
}

// WithTimeout bounds a single render. A zero or negative value disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *chromeConfig) {
		c.timeout = d
	}
}

// WithNoSandbox disables the Chrome sandbox, which is required when running as root.
func WithNoSandbox() Option {
	return func(c *chromeConfig) {
		c.noSandbox = true
	}
}

// WithAutoDownload fetches a Chromium build into the local cache when no executable
// path is configured.
func WithAutoDownload() Option {
	return func(c *chromeConfig) {
		c.autoDownload = true
	}
}

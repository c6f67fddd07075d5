package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvRoutesManifest  = "WAYPOINT_ROUTES_MANIFEST"
	EnvRoutesTrimSlash = "WAYPOINT_ROUTES_TRIM_SLASH"
	EnvRoutesReload    = "WAYPOINT_ROUTES_RELOAD"
)

// RoutesConfig controls route discovery and request path normalization.
// TrimSlash and Reload are pointers so an overlay can explicitly set false.
type RoutesConfig struct {
	Manifest  string `toml:"manifest"`
	TrimSlash *bool  `toml:"trim_slash"`
	Reload    *bool  `toml:"reload"`
}

// TrimSlashEnabled reports whether trailing slashes are redirected away.
func (c *RoutesConfig) TrimSlashEnabled() bool {
	return c.TrimSlash != nil && *c.TrimSlash
}

// ReloadEnabled reports whether the route table is rebuilt on SIGHUP.
func (c *RoutesConfig) ReloadEnabled() bool {
	return c.Reload != nil && *c.Reload
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *RoutesConfig) Finalize() error {
	c.loadDefaults()
	if err := c.loadEnv(); err != nil {
		return err
	}
	return c.validate()
}

// Merge overwrites fields set in overlay.
func (c *RoutesConfig) Merge(overlay *RoutesConfig) {
	if overlay.Manifest != "" {
		c.Manifest = overlay.Manifest
	}
	if overlay.TrimSlash != nil {
		c.TrimSlash = overlay.TrimSlash
	}
	if overlay.Reload != nil {
		c.Reload = overlay.Reload
	}
}

func (c *RoutesConfig) loadDefaults() {
	if c.TrimSlash == nil {
		c.TrimSlash = boolPtr(true)
	}
	if c.Reload == nil {
		c.Reload = boolPtr(false)
	}
}

func (c *RoutesConfig) loadEnv() error {
	if v := os.Getenv(EnvRoutesManifest); v != "" {
		c.Manifest = v
	}
	if v := os.Getenv(EnvRoutesTrimSlash); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvRoutesTrimSlash, err)
		}
		c.TrimSlash = &b
	}
	if v := os.Getenv(EnvRoutesReload); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvRoutesReload, err)
		}
		c.Reload = &b
	}
	return nil
}

func (c *RoutesConfig) validate() error {
	if c.Manifest == "" {
		return nil
	}
	info, err := os.Stat(c.Manifest)
	if err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("manifest %s is a directory", c.Manifest)
	}
	return nil
}

func boolPtr(b bool) *bool {
	return &b
}

package assets

import (
	"fmt"
	"os"
)

// Asset source selectors.
const (
	SourceFile = "file"
	SourceBlob = "blob"
)

// Config selects and parameterizes the asset provider.
type Config struct {
	Source     string `toml:"source"`
	Dir        string `toml:"dir"`
	BlobPrefix string `toml:"blob_prefix"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Source     string
	Dir        string
	BlobPrefix string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Source != "" {
		c.Source = overlay.Source
	}
	if overlay.Dir != "" {
		c.Dir = overlay.Dir
	}
	if overlay.BlobPrefix != "" {
		c.BlobPrefix = overlay.BlobPrefix
	}
}

func (c *Config) loadDefaults() {
	if c.Source == "" {
		c.Source = SourceFile
	}
	if c.Dir == "" {
		c.Dir = "assets"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Source != "" {
		if v := os.Getenv(env.Source); v != "" {
			c.Source = v
		}
	}
	if env.Dir != "" {
		if v := os.Getenv(env.Dir); v != "" {
			c.Dir = v
		}
	}
	if env.BlobPrefix != "" {
		if v := os.Getenv(env.BlobPrefix); v != "" {
			c.BlobPrefix = v
		}
	}
}

func (c *Config) validate() error {
	switch c.Source {
	case SourceFile, SourceBlob:
		return nil
	default:
		return fmt.Errorf("invalid asset source: %s", c.Source)
	}
}

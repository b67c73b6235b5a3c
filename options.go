package shaper

import "github.com/gogpu/shaper/unicodes"

// Option configures a HarfBuzz shaper during creation.
//
// Example:
//
//	// Default Unicode backend
//	s, err := shaper.MakeShapeThenWrap(mgr)
//
//	// Backend instance supplied by the caller
//	s, err := shaper.MakeShapeThenWrap(mgr, shaper.WithUnicode(u))
type Option func(*config)

// config holds optional configuration for shaper creation.
type config struct {
	unicode  unicodes.Unicode
	backend  string
	language string
}

// defaultConfig returns the default shaper configuration.
func defaultConfig() config {
	return config{
		backend: unicodes.DefaultBackend,
	}
}

// WithUnicode makes the shaper use u instead of constructing a backend.
func WithUnicode(u unicodes.Unicode) Option {
	return func(c *config) {
		c.unicode = u
	}
}

// WithUnicodeBackend selects the registered Unicode backend by name.
// It is ignored when WithUnicode is also given.
func WithUnicodeBackend(name string) Option {
	return func(c *config) {
		c.backend = name
	}
}

// WithDefaultLanguage sets the BCP 47 language used by Shape. Without it
// Shape uses the process locale.
func WithDefaultLanguage(tag string) Option {
	return func(c *config) {
		c.language = tag
	}
}

// resolveUnicode returns the configured backend, constructing it if needed.
func (c *config) resolveUnicode() (unicodes.Unicode, error) {
	if c.unicode != nil {
		return c.unicode, nil
	}
	return unicodes.Make(c.backend)
}

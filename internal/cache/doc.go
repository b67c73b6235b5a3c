// Package cache provides the small generic cache used for font fallback
// lookups.
//
//	c := cache.New[rune, *font.Typeface](1024)
//	tf := c.GetOrCreate('ж', func() *font.Typeface { return mgr.match('ж') })
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache

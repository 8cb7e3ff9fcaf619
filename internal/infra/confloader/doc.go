// Package confloader loads configuration with koanf.
//
// Sources are layered, later ones overriding earlier ones:
//
//  1. Defaults (the values already present in the target struct)
//  2. A YAML file
//  3. Environment variables with the BSS_ prefix
//
// Environment keys map to dotted paths: BSS_API_TIMEOUT sets api.timeout.
// Keys therefore never contain underscores.
//
// Watcher reports writes to a loaded file so callers can re-read the
// settings that may change at runtime.
package confloader

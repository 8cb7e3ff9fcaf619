// Package memory provides the in-process token store.
package memory

// Package engine declares the formatting engines numconform drives but
// does not implement.
//
// Two engine shapes are supported:
//
// LegacyFormat and PlatformFormat are mutable formatters built from a
// pattern and a locale and configured through individual setters. Setter
// order matters: a later call may overwrite state written by an earlier
// one (a localized pattern resets digit counts, for example). The
// platform surface is a strict subset of the legacy one.
//
// PropertiesEngine works on a plain Properties record. A pattern is
// parsed into a record, the record is adjusted field by field, and a
// formatter is built from the finished record.
//
// Engines are bound by embedders. The numconform binary binds the
// platform surface to golang.org/x/text (package platform) and nothing
// else.
//
// Formatters are built per call and never shared, so implementations need
// not be safe for concurrent use.
package engine

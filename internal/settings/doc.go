// Package settings holds the default configuration records of the
// vocabulary extension: word styling, translation and dictionary engines,
// the page widget, Anki export and so on. The records are plain data. Only
// the Anki part is consumed by this program, the rest is shipped so it can
// be printed and overridden from a YAML file.
package settings

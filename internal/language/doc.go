// Package language normalizes language codes between ISO 639-1 and ISO 639-2
// forms so records tagged "eng", "en", and "English" compare equal when
// language matching is enabled.
package language

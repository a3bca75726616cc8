// Package emoji extracts, classifies and formats Unicode and text-style
// emoji.
//
// Unicode detection is by code-point range plus a curated name table; the
// Go runtime has no Unicode character-name database, so classification
// keywords (happy, sad, love, surprise) are resolved against the table
// instead of character names. A rune inside an emoji range but absent from
// the table classifies as "unknown"; a tabled rune with no keyword match
// classifies as "other".
package emoji

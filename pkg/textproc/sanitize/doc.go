/*
Package sanitize provides the content sanitization transforms: profanity
replacement, whitespace and line-break normalization, and punctuation
standardization with excess-run removal.

Every transform follows the same contract: it is constructed once from an
immutable configuration, takes a text and returns the rewritten text plus a
textproc.Stats describing what changed. Absence of matches is a valid
zero-effect outcome, not an error. The normalizers are idempotent:
re-running one on its own output produces no further changes.

Transforms that must not rewrite code, URLs or markdown protect those
regions through the spans package for the duration of the call.
*/
package sanitize

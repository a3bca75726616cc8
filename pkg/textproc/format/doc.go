/*
Package format provides the content formatting transforms: formality
adjustment (casual and formal setters) and tone-polarity adjustment
(positive and negative appliers).

Substitution tables are ordered and sorted longest-source-first before
matching so that multi-word phrases are never shadowed by shorter
substrings. Code spans are protected through the spans package; the
formality setters additionally protect quoted text.

The tone appliers pick prefixes and qualifying phrases through a
configurable Chooser. The default chooser is random, which makes tone
output non-deterministic across runs; tests install a fixed chooser.
*/
package format

// Package content orchestrates the text transformation pipeline.
//
// A Pipeline runs raw content through a configured, ordered subset of the
// sanitize, format and emoji transforms, appending one ContentModification
// per logical step. The resulting ProcessedContent carries the full audit
// trail: replaying the trail from the original content always reconstructs
// the final content.
package content

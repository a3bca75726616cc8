/*
Package spans protects substrings from being rewritten by text transforms.

A Preserver extracts every substring matching its configured pattern kinds,
replaces each with a sentinel token, and later restores the originals
verbatim. Transforms run against the sentinel-bearing text and never see the
protected content.

	p := spans.NewPreserver(spans.KindCode, spans.KindURL)
	protected, m := p.Protect(text)
	// ... rewrite protected ...
	restored := p.Restore(protected, m)

Restoration is lossy: if a transform destroys a sentinel token, the
corresponding span is dropped from the output and logged, never raised as an
error.
*/
package spans

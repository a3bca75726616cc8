// Package lookup provides a client for the MediaWiki search and extract
// APIs. Searches resolve queries to article titles and lookups fetch the
// opening sentences of an article. Requests retry with exponential backoff
// and honor context cancellation.
package lookup

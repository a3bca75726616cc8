// Package messages models chat messages: role assignment and
// role-specific behavior, finish-reason classification and length
// metadata.
//
// The content transformation itself lives in pkg/content; this package
// only carries the message envelope around it.
package messages

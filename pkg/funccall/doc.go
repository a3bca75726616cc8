// Package funccall tracks function calls carried by chat messages: name
// identification and sanitization, argument extraction and validation,
// and execution result storage and formatting.
package funccall

// Package httpapi is the HTTP transport adapter for the task manager.
//
// It depends on the application layer (internal/app/tasklists) and owns
// request decoding, path parsing, and the translation of application errors
// into status codes. It must not be imported by internal/app or internal/domain.
package httpapi

// Package api implements the HTTP handlers for the task and user resources,
// the decoding of the ad-hoc list query surface, and the mapping from
// internal errors to HTTP status codes and client-safe messages.
package api

// Package store defines the persistence interfaces for tasks and users,
// the internal query-specification type decoded from the ad-hoc list query
// surface, and the sentinel errors shared by all store implementations.
package store

// Package mocks provides mock implementations of the store interfaces for
// testing. Each mock exposes per-method function fields to override behavior
// and records calls for verification.
package mocks

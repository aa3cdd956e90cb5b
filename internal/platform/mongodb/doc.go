// Package mongodb implements the store interfaces on top of a MongoDB
// database using the official driver. It owns the translation from the
// internal query-specification type to bson filter, sort and projection
// documents, and the index bootstrap run at startup.
package mongodb

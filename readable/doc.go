// Package readable provides lazy, typed numeric value sources.
//
// A Readable produces one value of a single numeric kind each time Read is
// called. Nothing is cached: a Readable backed by an attribute column
// reflects the column's current content on every read. Composite readables
// combine two children through an operator registry.
package readable

// Package services defines the error taxonomy shared by the external
// service clients and the sub-packages that implement them.
//
// Every external call site wraps its failure with one of the sentinel
// markers so callers can classify without string matching. Nothing in the
// taxonomy is fatal to a reconciliation run: resolution misses and transient
// failures degrade the affected item, configuration gaps skip the affected
// capability.
package services

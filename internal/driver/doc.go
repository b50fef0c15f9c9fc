// Package driver is the entry point for callers of the front end: it turns
// a label plus bytes (or a path on disk) into exactly one outcome, a syntax
// tree or one error diagnostic.
//
// Besides single parses it runs directory checks in parallel, reports
// progress events, caches outcomes on disk keyed by content hash and
// collects phase timings.
package driver

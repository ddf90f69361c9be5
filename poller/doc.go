// Package poller drives the commute pipeline on a fixed cadence.
//
// Each cycle captures the clock once, fetches every distinct feed the configured routes need
// (concurrently, at most once per feed), evaluates and ranks all routes against that single
// snapshot and publishes the outcome to the sinks. A route whose feed cannot be fetched,
// decoded or is stale is reported as unavailable; the cycle itself never fails.
package poller

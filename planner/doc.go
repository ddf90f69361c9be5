// Package planner turns decoded trip-update feeds into a ranked list of catchable commute options.
//
// # Pipeline
//
// One evaluation runs four pure steps per route and one across routes:
//   - ExtractTrips picks the boarding instant at the origin stop (departure, else arrival) and
//     the arrival instant at the destination stop (arrival, else departure) of every trip that
//     serves both stops in order.
//   - FilterCatchable keeps trips the rider can still reach after walking to the station.
//   - EvaluateRoute computes total door-to-office time and leave-in time for the trips selected
//     by a Policy, or emits an unavailable Result when nothing is catchable.
//   - Rank merges all routes, orders them by total time (unavailable last), applies the optional
//     threshold and picks the best route.
//
// All time arithmetic in one evaluation uses a single "now" supplied by the caller.
package planner

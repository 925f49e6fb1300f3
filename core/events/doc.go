// Package events defines the highway events emitted on the event bus.
//
// Available event types:
//   - CommandEvent: outcome of a station, vehicle or route operation
//   - RouteEvent: result and timing of a route query
//   - IndexEvent: station count after the index changed
package events

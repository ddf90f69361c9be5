// Package gtfsrt fetches and decodes GTFS-Realtime trip-update feeds.
//
// A feed is addressed by a feed identifier (for the MTA subway, the suffix appended to the
// mtagtfsfeeds base URL, e.g. "gtfs-bdfm"). Source resolves the identifier, fetches the raw
// protobuf bytes with Client and decodes them into a Feed:
//
//	src := gtfsrt.NewSource(gtfsrt.NewClient(10*time.Second, apiKey), baseURL)
//	feed, err := src.Fetch(ctx, "gtfs-bdfm")
//
// Only trip updates are kept; vehicle positions and alerts in the same message are ignored.
package gtfsrt

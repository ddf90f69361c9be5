// Package gtfsrttest builds GTFS-RT trip-update fixtures for tests.
package gtfsrttest

import (
	"fmt"
	"testing"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/gtfsrt-commute/gtfsrt"
)

// Stop is a stop-time update; a zero Arrival or Departure (unix seconds) is left unset.
type Stop struct {
	StopID    string
	Arrival   int64
	Departure int64
}

// Trip is a trip update with its stop-time updates in order.
type Trip struct {
	TripID  string
	RouteID string
	Stops   []Stop
}

// FeedMessage builds a protobuf FeedMessage with one entity per trip.
func FeedMessage(timestamp int64, trips ...Trip) *gtfsrtpb.FeedMessage {
	header := &gtfsrtpb.FeedHeader{GtfsRealtimeVersion: proto.String("2.0")}
	if timestamp > 0 {
		header.Timestamp = proto.Uint64(uint64(timestamp))
	}
	fm := &gtfsrtpb.FeedMessage{Header: header}
	for i, trip := range trips {
		updates := make([]*gtfsrtpb.TripUpdate_StopTimeUpdate, 0, len(trip.Stops))
		for _, s := range trip.Stops {
			stu := &gtfsrtpb.TripUpdate_StopTimeUpdate{StopId: proto.String(s.StopID)}
			if s.Arrival != 0 {
				stu.Arrival = &gtfsrtpb.TripUpdate_StopTimeEvent{Time: proto.Int64(s.Arrival)}
			}
			if s.Departure != 0 {
				stu.Departure = &gtfsrtpb.TripUpdate_StopTimeEvent{Time: proto.Int64(s.Departure)}
			}
			updates = append(updates, stu)
		}
		fm.Entity = append(fm.Entity, &gtfsrtpb.FeedEntity{
			Id: proto.String(fmt.Sprintf("%d", i+1)),
			TripUpdate: &gtfsrtpb.TripUpdate{
				Trip: &gtfsrtpb.TripDescriptor{
					TripId:  proto.String(trip.TripID),
					RouteId: proto.String(trip.RouteID),
				},
				StopTimeUpdate: updates,
			},
		})
	}
	return fm
}

// FeedBytes marshals FeedMessage(timestamp, trips...) or fails the test.
func FeedBytes(tb testing.TB, timestamp int64, trips ...Trip) []byte {
	tb.Helper()
	b, err := proto.Marshal(FeedMessage(timestamp, trips...))
	if err != nil {
		tb.Fatalf("Failed to marshal feed: %v", err)
	}
	return b
}

// Feed builds a decoded feed directly, without a protobuf round trip.
func Feed(trips ...Trip) *gtfsrt.Feed {
	feed := &gtfsrt.Feed{}
	for _, trip := range trips {
		tu := gtfsrt.TripUpdate{TripID: trip.TripID, RouteID: trip.RouteID}
		for _, s := range trip.Stops {
			ev := gtfsrt.StopTimeEvent{StopID: s.StopID}
			if s.Arrival != 0 {
				ev.Arrival = time.Unix(s.Arrival, 0)
			}
			if s.Departure != 0 {
				ev.Departure = time.Unix(s.Departure, 0)
			}
			tu.StopTimes = append(tu.StopTimes, ev)
		}
		feed.TripUpdates = append(feed.TripUpdates, tu)
	}
	return feed
}

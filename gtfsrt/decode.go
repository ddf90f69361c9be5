package gtfsrt

import (
	"fmt"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// Decode parses raw GTFS-RT protobuf bytes into a Feed.
// Entities without a trip update are skipped, as are stop-time updates without a stop id.
// Event times that are absent or not positive are left unset.
func Decode(b []byte) (*Feed, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(b, &fm); err != nil {
		return nil, fmt.Errorf("decode feed message: %w", err)
	}
	return fromFeedMessage(&fm), nil
}

func fromFeedMessage(fm *gtfsrtpb.FeedMessage) *Feed {
	feed := &Feed{TripUpdates: make([]TripUpdate, 0, len(fm.GetEntity()))}
	if ts := fm.GetHeader().GetTimestamp(); ts > 0 {
		feed.Timestamp = time.Unix(int64(ts), 0)
	}
	for _, e := range fm.GetEntity() {
		tu := e.GetTripUpdate()
		if tu == nil {
			continue
		}
		update := TripUpdate{
			TripID:    tu.GetTrip().GetTripId(),
			RouteID:   tu.GetTrip().GetRouteId(),
			StopTimes: make([]StopTimeEvent, 0, len(tu.GetStopTimeUpdate())),
		}
		for _, stu := range tu.GetStopTimeUpdate() {
			if stu.StopId == nil {
				continue
			}
			ev := StopTimeEvent{StopID: stu.GetStopId()}
			// A zero epoch carries no prediction.
			if t := stu.GetArrival().GetTime(); t > 0 {
				ev.Arrival = time.Unix(t, 0)
			}
			if t := stu.GetDeparture().GetTime(); t > 0 {
				ev.Departure = time.Unix(t, 0)
			}
			update.StopTimes = append(update.StopTimes, ev)
		}
		feed.TripUpdates = append(feed.TripUpdates, update)
	}
	return feed
}

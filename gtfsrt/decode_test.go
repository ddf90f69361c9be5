package gtfsrt_test

import (
	"testing"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/gtfsrt-commute/gtfsrt"
	"github.com/theoremus-urban-solutions/gtfsrt-commute/gtfsrt/gtfsrttest"
)

func TestDecode_TripUpdates(t *testing.T) {
	b := gtfsrttest.FeedBytes(t, 1700000000,
		gtfsrttest.Trip{TripID: "T1", RouteID: "F", Stops: []gtfsrttest.Stop{
			{StopID: "F21N", Arrival: 1700000100, Departure: 1700000130},
			{StopID: "D15N", Arrival: 1700000900},
		}},
		gtfsrttest.Trip{TripID: "T2", RouteID: "G"},
	)

	feed, err := gtfsrt.Decode(b)
	require.NoError(t, err)

	assert.Equal(t, time.Unix(1700000000, 0), feed.Timestamp)
	require.Len(t, feed.TripUpdates, 2)

	tu := feed.TripUpdates[0]
	assert.Equal(t, "T1", tu.TripID)
	assert.Equal(t, "F", tu.RouteID)
	require.Len(t, tu.StopTimes, 2)
	assert.Equal(t, time.Unix(1700000100, 0), tu.StopTimes[0].Arrival)
	assert.Equal(t, time.Unix(1700000130, 0), tu.StopTimes[0].Departure)
	assert.True(t, tu.StopTimes[1].Departure.IsZero())
	assert.Empty(t, feed.TripUpdates[1].StopTimes)
}

func TestDecode_SkipsNonTripEntitiesAndStoplessUpdates(t *testing.T) {
	fm := gtfsrttest.FeedMessage(0, gtfsrttest.Trip{TripID: "T1", Stops: []gtfsrttest.Stop{{StopID: "A", Arrival: 10}}})
	fm.Entity[0].TripUpdate.StopTimeUpdate = append(fm.Entity[0].TripUpdate.StopTimeUpdate,
		&gtfsrtpb.TripUpdate_StopTimeUpdate{Arrival: &gtfsrtpb.TripUpdate_StopTimeEvent{Time: proto.Int64(20)}})
	fm.Entity = append(fm.Entity, &gtfsrtpb.FeedEntity{
		Id:      proto.String("vehicle"),
		Vehicle: &gtfsrtpb.VehiclePosition{},
	})
	b, err := proto.Marshal(fm)
	require.NoError(t, err)

	feed, err := gtfsrt.Decode(b)
	require.NoError(t, err)

	assert.True(t, feed.Timestamp.IsZero())
	require.Len(t, feed.TripUpdates, 1)
	require.Len(t, feed.TripUpdates[0].StopTimes, 1)
	assert.Equal(t, "A", feed.TripUpdates[0].StopTimes[0].StopID)
}

func TestDecode_ZeroEventTimeIsNotAPrediction(t *testing.T) {
	fm := gtfsrttest.FeedMessage(0, gtfsrttest.Trip{TripID: "T1", Stops: []gtfsrttest.Stop{
		{StopID: "F21N", Arrival: 1000},
		{StopID: "D15N"},
	}})
	stops := fm.Entity[0].TripUpdate.StopTimeUpdate
	stops[0].Departure = &gtfsrtpb.TripUpdate_StopTimeEvent{Time: proto.Int64(0)}
	stops[1].Arrival = &gtfsrtpb.TripUpdate_StopTimeEvent{Time: proto.Int64(0)}
	b, err := proto.Marshal(fm)
	require.NoError(t, err)

	feed, err := gtfsrt.Decode(b)
	require.NoError(t, err)

	require.Len(t, feed.TripUpdates[0].StopTimes, 2)
	origin := feed.TripUpdates[0].StopTimes[0]
	assert.Equal(t, time.Unix(1000, 0), origin.Arrival)
	assert.True(t, origin.Departure.IsZero())
	assert.False(t, feed.TripUpdates[0].StopTimes[1].Predicted())
}

func TestDecode_Malformed(t *testing.T) {
	_, err := gtfsrt.Decode([]byte{0xff, 0xff, 0xff})
	assert.Error(t, err)
}

func TestStopTimeEvent_Predicted(t *testing.T) {
	assert.False(t, gtfsrt.StopTimeEvent{StopID: "A"}.Predicted())
	assert.True(t, gtfsrt.StopTimeEvent{StopID: "A", Arrival: time.Unix(1, 0)}.Predicted())
	assert.True(t, gtfsrt.StopTimeEvent{StopID: "A", Departure: time.Unix(1, 0)}.Predicted())
}

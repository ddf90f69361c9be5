package sink

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/theoremus-urban-solutions/gtfsrt-commute/planner"
	"github.com/theoremus-urban-solutions/gtfsrt-commute/utils"
)

// NATS publishes every outcome as one JSON message on a fixed subject.
type NATS struct {
	nc      *nats.Conn
	subject string
}

// NewNATS connects to the NATS server at url and publishes on subject.
func NewNATS(url, subject string) (*NATS, error) {
	nc, err := nats.Connect(url,
		nats.Name("gtfsrt-commute"),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("nats disconnected")
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info().Str("url", c.ConnectedUrl()).Msg("nats reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			log.Info().Msg("nats closed")
		}),
	)
	if err != nil {
		return nil, err
	}
	return &NATS{nc: nc, subject: subject}, nil
}

func (n *NATS) Name() string { return "nats" }

func (n *NATS) Publish(_ context.Context, o planner.Outcome) error {
	b, err := json.Marshal(NewOutcomeMessage(o))
	if err != nil {
		return err
	}
	log.Debug().Str("subject", n.subject).Int("bytes", len(b)).Msg("nats publish")
	return n.nc.Publish(n.subject, b)
}

func (n *NATS) Close() {
	if n.nc != nil {
		n.nc.Drain()
		n.nc.Close()
	}
}

// OutcomeMessage is the JSON payload published for one outcome.
type OutcomeMessage struct {
	Timestamp string          `json:"timestamp"`
	Best      string          `json:"best,omitempty"`
	Results   []ResultMessage `json:"results"`
}

// ResultMessage is one result within an OutcomeMessage; numbers are omitted when unavailable.
type ResultMessage struct {
	Route          string `json:"route"`
	Available      bool   `json:"available"`
	Reason         string `json:"reason,omitempty"`
	TripID         string `json:"tripId,omitempty"`
	Board          string `json:"board,omitempty"`
	Arrive         string `json:"arrive,omitempty"`
	OfficeArrival  string `json:"officeArrival,omitempty"`
	TotalMinutes   *int   `json:"totalMinutes,omitempty"`
	LeaveInMinutes *int   `json:"leaveInMinutes,omitempty"`
}

// NewOutcomeMessage converts an outcome into its wire form.
func NewOutcomeMessage(o planner.Outcome) OutcomeMessage {
	msg := OutcomeMessage{
		Timestamp: utils.Iso8601FromTime(o.Now),
		Best:      o.BestRoute(),
		Results:   make([]ResultMessage, 0, len(o.Results)),
	}
	for _, r := range o.Results {
		rm := ResultMessage{Route: r.Route, Available: r.Available, Reason: string(r.Reason)}
		if r.Available {
			total, _ := r.TotalMinutes()
			leave, _ := r.LeaveInMinutes()
			rm.TripID = r.TripID
			rm.Board = utils.Iso8601FromTime(r.Board)
			rm.Arrive = utils.Iso8601FromTime(r.Arrive)
			rm.OfficeArrival = utils.Iso8601FromTime(r.OfficeArrival)
			rm.TotalMinutes = &total
			rm.LeaveInMinutes = &leave
		}
		msg.Results = append(msg.Results, rm)
	}
	return msg
}

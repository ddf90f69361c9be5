// Package sink publishes ranked commute outcomes.
//
// Every output (console text, a pixel matrix, a NATS subject) implements Sink. The poll loop
// writes the same planner.Outcome to each configured sink in order and never knows which
// ones are active. Display hardware is optional: OpenMatrix reports ErrNoMatrix when the
// requested kind cannot be opened and callers continue with the remaining sinks.
package sink

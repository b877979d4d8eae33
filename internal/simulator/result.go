package simulator

import (
	"fmt"

	"github.com/kirbo/go-sensorsim/internal/models"
)

// Outcome classifies one send.
type Outcome int

const (
	// Accepted means the service processed the reading and reported success.
	Accepted Outcome = iota
	// Rejected means the call completed but the service reported failure.
	Rejected
	// TransportError means the call itself did not complete.
	TransportError
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	case TransportError:
		return "transport error"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Result is what one iteration produced.
type Result struct {
	Outcome Outcome
	Reading models.SensorReading
	Ack     models.ServerAck
	Err     error
}

func classify(reading models.SensorReading, ack models.ServerAck, err error) Result {
	switch {
	case err != nil:
		return Result{Outcome: TransportError, Reading: reading, Err: err}
	case !ack.Success:
		return Result{Outcome: Rejected, Reading: reading, Ack: ack}
	default:
		return Result{Outcome: Accepted, Reading: reading, Ack: ack}
	}
}

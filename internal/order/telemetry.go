package order

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/arborlang/typeorder/internal/config"
)

// OrderEvent is the abstract "report invalid order operation" signal
// spec.md §9 calls for: a Connect or DisconnectSuccessors against a
// type the graph store doesn't track. Primary/Secondary are the offending types
// (Secondary is nil for single-type operations).
type OrderEvent struct {
	EngineID  string
	Operation string
	Primary   Type
	Secondary Type
}

// TelemetryReporter receives OrderEvents emitted by non-fatal graph
// mutation failures. Implementations must not panic or block.
type TelemetryReporter interface {
	ReportInvalidOrderOperation(event OrderEvent)
}

// NullReporter drops every event. It is the default inside
// Builder.Create when no reporter is supplied.
type NullReporter struct{}

func (NullReporter) ReportInvalidOrderOperation(OrderEvent) {}

// StdlibReporter writes one line per event via the standard log
// package, to whatever output log.SetOutput was last configured with
// (a host embedding the engine is expected to route this to stderr,
// never stdout, since stdout may carry ToDot output).
type StdlibReporter struct{}

func (StdlibReporter) ReportInvalidOrderOperation(event OrderEvent) {
	if event.Secondary != nil {
		log.Printf("order[%s]: invalid %s(%s, %s)", event.EngineID, event.Operation, event.Primary.String(), event.Secondary.String())
		return
	}
	log.Printf("order[%s]: invalid %s(%s)", event.EngineID, event.Operation, event.Primary.String())
}

var testEngineIDCounter int

// newEngineID mints a fresh engine identifier: a random UUID normally,
// or a deterministic counter under config.IsTestMode so telemetry
// output and golden files stay diffable across test runs.
func newEngineID() string {
	if config.IsTestMode {
		testEngineIDCounter++
		return fmt.Sprintf("test-engine-%d", testEngineIDCounter)
	}
	return uuid.New().String()
}

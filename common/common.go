package common

const (
	AppName = "traincore"
)

// Logger field keys used to scope log entries to a piece of the procedure engine.
const (
	LogFieldApp       = "App"
	LogFieldProcedure = "Procedure"
	LogFieldSession   = "Session"
	LogFieldStep      = "Step"
	LogFieldZone      = "Zone"
)

// Zone names for the four placement regions a learner works with.
const (
	ZoneLeft   = "left"
	ZoneRight  = "right"
	ZoneTop    = "top"
	ZoneBottom = "bottom"
)

// AllZones lists the zone names in canonical display order.
var AllZones = []string{ZoneLeft, ZoneRight, ZoneTop, ZoneBottom}

// ProcedureState describes where a procedure run stands overall.
type ProcedureState int

const (
	StatePending  ProcedureState = iota // steps loaded, nothing done yet
	StateRunning                        // at least one operation performed
	StateComplete                       // final step validated or advanced past
)

func (s ProcedureState) String() string {
	switch s {
	case StatePending:
		return "Pending"
	case StateRunning:
		return "Running"
	case StateComplete:
		return "Complete"
	default:
		return "Unknown"
	}
}

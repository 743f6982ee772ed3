package guidance

// TurnType classifies the maneuver at the start of a RouteStep.
type TurnType uint8

const (
	NoTurn TurnType = iota
	NewName
	Continue
	Turn
	Merge
	OnRamp
	OffRamp
	Fork
	EndOfRoad
	Notification
	Suppressed
	Sliproad
	EnterRoundabout
	EnterAndExitRoundabout
	EnterRotary
	EnterAndExitRotary
	EnterRoundaboutIntersection
	EnterAndExitRoundaboutIntersection
	EnterRoundaboutAtExit
	ExitRoundabout
	EnterRotaryAtExit
	ExitRotary
	EnterRoundaboutIntersectionAtExit
	ExitRoundaboutIntersection
	StayOnRoundabout
	MaxTurnType
)

var turnTypeNames = [...]string{
	NoTurn:                             "no_turn",
	NewName:                            "new_name",
	Continue:                           "continue",
	Turn:                               "turn",
	Merge:                              "merge",
	OnRamp:                             "on_ramp",
	OffRamp:                            "off_ramp",
	Fork:                               "fork",
	EndOfRoad:                          "end_of_road",
	Notification:                       "notification",
	Suppressed:                         "suppressed",
	Sliproad:                           "invalid", // hidden in the wire format
	EnterRoundabout:                    "roundabout",
	EnterAndExitRoundabout:             "roundabout",
	EnterRotary:                        "rotary",
	EnterAndExitRotary:                 "rotary",
	EnterRoundaboutIntersection:        "roundabout_turn",
	EnterAndExitRoundaboutIntersection: "roundabout_turn",
	EnterRoundaboutAtExit:              "roundabout",
	ExitRoundabout:                     "exit_roundabout",
	EnterRotaryAtExit:                  "rotary",
	ExitRotary:                         "exit_rotary",
	EnterRoundaboutIntersectionAtExit:  "roundabout_turn",
	ExitRoundaboutIntersection:         "exit_roundabout",
	StayOnRoundabout:                   "on_roundabout",
}

// String returns the lower-snake-case wire encoding from spec.md §6.3.
func (t TurnType) String() string {
	if int(t) < len(turnTypeNames) && turnTypeNames[t] != "" {
		return turnTypeNames[t]
	}
	return "no_turn"
}

// IsRoundaboutType reports whether t is any roundabout/rotary variant.
func (t TurnType) IsRoundaboutType() bool {
	switch t {
	case EnterRoundabout, EnterAndExitRoundabout, EnterRotary, EnterAndExitRotary,
		EnterRoundaboutIntersection, EnterAndExitRoundaboutIntersection,
		EnterRoundaboutAtExit, ExitRoundabout, EnterRotaryAtExit, ExitRotary,
		EnterRoundaboutIntersectionAtExit, ExitRoundaboutIntersection, StayOnRoundabout:
		return true
	}
	return false
}

// IsEnterRoundabout reports whether t begins a roundabout/rotary run.
func (t TurnType) IsEnterRoundabout() bool {
	switch t {
	case EnterRoundabout, EnterAndExitRoundabout, EnterRotary, EnterAndExitRotary,
		EnterRoundaboutIntersection, EnterAndExitRoundaboutIntersection,
		EnterRoundaboutAtExit, EnterRotaryAtExit:
		return true
	}
	return false
}

// IsExitRoundabout reports whether t ends a roundabout/rotary run.
func (t TurnType) IsExitRoundabout() bool {
	switch t {
	case ExitRoundabout, ExitRotary, ExitRoundaboutIntersection,
		EnterAndExitRoundabout, EnterAndExitRotary, EnterAndExitRoundaboutIntersection:
		return true
	}
	return false
}

// DirectionModifier classifies the angular character of a turn.
type DirectionModifier uint8

const (
	UTurn DirectionModifier = iota
	SharpRight
	Right
	SlightRight
	Straight
	SlightLeft
	Left
	SharpLeft
)

var directionModifierNames = [...]string{
	UTurn:       "uturn",
	SharpRight:  "sharp right",
	Right:       "right",
	SlightRight: "slight right",
	Straight:    "straight",
	SlightLeft:  "slight left",
	Left:        "left",
	SharpLeft:   "sharp left",
}

// String returns the wire encoding from spec.md §6.3.
func (m DirectionModifier) String() string {
	return directionModifierNames[m]
}

// IsLeftSided reports whether a modifier leans to the left of straight.
func (m DirectionModifier) IsLeftSided() bool {
	return m == SlightLeft || m == Left || m == SharpLeft
}

// IsRightSided reports whether a modifier leans to the right of straight.
func (m DirectionModifier) IsRightSided() bool {
	return m == SlightRight || m == Right || m == SharpRight
}

// idealizedAngle is the canonical turn angle of each modifier on turnAngle's
// scale (0 = back along the incoming road reversed, 180 = straight ahead)
// used by the turn-lane matcher's quality scoring.
var idealizedAngle = [...]float64{
	UTurn:       0,
	SharpRight:  35,
	Right:       90,
	SlightRight: 135,
	Straight:    180,
	SlightLeft:  225,
	Left:        270,
	SharpLeft:   315,
}

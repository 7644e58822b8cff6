package osmnav

type TurnType uint16

const (
	TURN_STRAIGHT = TurnType(iota + 1)
	TURN_LEFT
	TURN_RIGHT
	TURN_DESTINATION_REACHED
)

func (iotaIdx TurnType) String() string {
	return [...]string{"straight", "left", "right", "destination_reached"}[iotaIdx-1]
}

// straightThreshold is maximum absolute bearing change (degrees) which is still considered as going straight
const straightThreshold = 20.0

// classifyTurn returns maneuver for change of heading from previous bearing to the next one
func classifyTurn(prevBearing, bearing float64) TurnType {
	delta := angleDelta(prevBearing, bearing)
	switch {
	case delta > straightThreshold:
		return TURN_RIGHT
	case delta < -straightThreshold:
		return TURN_LEFT
	default:
		return TURN_STRAIGHT
	}
}

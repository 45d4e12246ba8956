package neural

// Motor identifies what an output-layer neuron drives when it fires.
// The value is the neuron's slot index in the output layer.
type Motor uint8

const (
	LeftTurn Motor = iota
	Accelerate
	RightTurn
	Decelerate
	NumMotors
)

// String returns the motor name.
func (m Motor) String() string {
	switch m {
	case LeftTurn:
		return "left"
	case Accelerate:
		return "accel"
	case RightTurn:
		return "right"
	case Decelerate:
		return "decel"
	default:
		return "none"
	}
}

// MotorCounts accumulates output-layer firings per motor over one tick.
type MotorCounts [NumMotors]int

// Reset zeroes all counters.
func (c *MotorCounts) Reset() {
	*c = MotorCounts{}
}

// Turn returns the net left-minus-right firing count.
func (c *MotorCounts) Turn() int {
	return c[LeftTurn] - c[RightTurn]
}

// Thrust returns the net accelerate-minus-decelerate firing count.
func (c *MotorCounts) Thrust() int {
	return c[Accelerate] - c[Decelerate]
}

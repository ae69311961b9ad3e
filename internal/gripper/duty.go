package gripper

// DutyCycle converts an angle to a duty register value: the angle is
// interpolated linearly from [MinAngle, MaxAngle] to [MinPulseUS, MaxPulseUS]
// and the resulting pulse width scaled as a fraction of the refresh period
// into 0..MaxDuty, truncating.
//
// Pure function, no clamping: callers validate with InRange first. An
// out-of-range angle yields an out-of-range duty value without crashing.
func (c Config) DutyCycle(angle int) uint32 {
	span := int64(c.MaxAngle - c.MinAngle)
	pulse := int64(c.MinPulseUS) + int64(angle-c.MinAngle)*int64(c.MaxPulseUS-c.MinPulseUS)/span
	return uint32(pulse * int64(c.MaxDuty()) / int64(c.RefreshUS))
}

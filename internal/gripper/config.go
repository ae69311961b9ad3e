// Package gripper maps a bounded angle domain onto a PWM duty cycle and owns
// the hardware handle that moves the physical servo.
package gripper

import "fmt"

// Config holds the hardware constants for one servo variant. Fixed after
// startup; differing variants are expressed as profiles, not code changes.
type Config struct {
	Pin        string // pin or channel label, informational past HAL setup
	Frequency  uint   // PWM refresh frequency in Hz
	Resolution uint   // duty register width in bits
	MinAngle   int    // degrees
	MaxAngle   int    // degrees
	MinPulseUS uint   // pulse width at MinAngle, microseconds
	MaxPulseUS uint   // pulse width at MaxAngle, microseconds
	RefreshUS  uint   // PWM period, microseconds
}

// Validate ensures all parts of the config are consistent.
func (c Config) Validate() error {
	if c.Frequency == 0 {
		return fmt.Errorf("frequency must be positive")
	}
	if c.Resolution == 0 || c.Resolution > 32 {
		return fmt.Errorf("resolution %d out of range 1-32 bits", c.Resolution)
	}
	if c.MinAngle > c.MaxAngle {
		return fmt.Errorf("min angle %d above max angle %d", c.MinAngle, c.MaxAngle)
	}
	if c.MinAngle == c.MaxAngle {
		return fmt.Errorf("angle range is empty at %d", c.MinAngle)
	}
	if c.MinPulseUS > c.MaxPulseUS {
		return fmt.Errorf("min pulse %dus above max pulse %dus", c.MinPulseUS, c.MaxPulseUS)
	}
	if c.RefreshUS == 0 {
		return fmt.Errorf("refresh period must be positive")
	}
	if c.MaxPulseUS > c.RefreshUS {
		return fmt.Errorf("max pulse %dus exceeds refresh period %dus", c.MaxPulseUS, c.RefreshUS)
	}
	return nil
}

// MaxDuty returns the top of the duty register range, 2^resolution - 1.
func (c Config) MaxDuty() uint32 {
	return uint32((uint64(1) << c.Resolution) - 1)
}

// InRange reports whether angle lies inside the configured angle domain.
func (c Config) InRange(angle int) bool {
	return angle >= c.MinAngle && angle <= c.MaxAngle
}

// Profiles for the known device variants. 50 Hz / 20 ms / 16-bit duty is
// common to both; they differ in travel and safe pulse widths.
var profiles = map[string]Config{
	"gripper-120": {
		Frequency:  50,
		Resolution: 16,
		MinAngle:   0,
		MaxAngle:   120,
		MinPulseUS: 900,
		MaxPulseUS: 2100,
		RefreshUS:  20000,
	},
	"standard-180": {
		Frequency:  50,
		Resolution: 16,
		MinAngle:   0,
		MaxAngle:   180,
		MinPulseUS: 500,
		MaxPulseUS: 2500,
		RefreshUS:  20000,
	},
}

// Profile returns the named preset config.
func Profile(name string) (Config, bool) {
	c, ok := profiles[name]
	return c, ok
}

// ProfileNames lists the available presets.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	return names
}

package gripper

import (
	"errors"
	"fmt"
	"sync"

	"github.com/opengrab/go-gripper-serial/internal/hal"
	"github.com/opengrab/go-gripper-serial/internal/logging"
)

// ErrAngleRange is returned when a requested angle lies outside the
// configured angle domain. The hardware is left untouched.
var ErrAngleRange = errors.New("angle out of range")

// Gripper owns the PWM handle for a single servo. The physical position is
// write-only: Angle reports the last commanded angle, not a readback.
type Gripper struct {
	cfg Config
	pwm hal.PWM

	mu    sync.Mutex
	angle int
	moved bool
}

// New validates cfg and wraps the injected PWM backend.
func New(cfg Config, pwm hal.PWM) (*Gripper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("gripper config: %w", err)
	}
	return &Gripper{cfg: cfg, pwm: pwm}, nil
}

// Open moves the jaw to the maximum angle.
func (g *Gripper) Open() error {
	return g.SetAngle(g.cfg.MaxAngle)
}

// Close moves the jaw to the minimum angle.
func (g *Gripper) Close() error {
	return g.SetAngle(g.cfg.MinAngle)
}

// SetAngle validates angle and writes the corresponding duty value to the
// PWM backend. This is the only point where physical state changes.
func (g *Gripper) SetAngle(angle int) error {
	if !g.cfg.InRange(angle) {
		return ErrAngleRange
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	duty := g.cfg.DutyCycle(angle)
	if err := g.pwm.SetDuty(duty); err != nil {
		return err
	}

	g.angle = angle
	g.moved = true
	servoAngle.Set(float64(angle))
	servoMoves.Inc()
	logging.Debug("Servo moved to %d deg (duty %d)", angle, duty)
	return nil
}

// Angle returns the last commanded angle. ok is false until the first
// successful move; before that the physical position is unknown.
func (g *Gripper) Angle() (angle int, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.angle, g.moved
}

// Config returns the hardware constants in use.
func (g *Gripper) Config() Config {
	return g.cfg
}

// Release closes the PWM backend.
func (g *Gripper) Release() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pwm.Close()
}

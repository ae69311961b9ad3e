// Package hal abstracts the PWM backend that carries the servo signal.
// The real implementations drive host hardware through periph.io; the fake
// implementation allows testing and dry runs without hardware.
package hal

// PWM is the minimal interface the gripper needs from a PWM backend.
//
// Duty is an integer fraction of maxDuty, which is fixed at construction
// from the configured resolution (2^bits - 1). Backends rescale to whatever
// their hardware natively supports.
//
// Close should be best-effort and leave the output in a safe state.
type PWM interface {
	SetDuty(duty uint32) error
	Close() error
}

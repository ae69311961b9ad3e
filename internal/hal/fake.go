package hal

// Fake is an in-memory PWM backend for tests and hardware-free runs. It
// records every duty write in order.
type Fake struct {
	Duties []uint32
	Closed bool
	Err    error // returned by SetDuty when non-nil
}

func (f *Fake) SetDuty(duty uint32) error {
	if f.Err != nil {
		return f.Err
	}
	f.Duties = append(f.Duties, duty)
	return nil
}

// Last returns the most recent duty write, if any.
func (f *Fake) Last() (uint32, bool) {
	if len(f.Duties) == 0 {
		return 0, false
	}
	return f.Duties[len(f.Duties)-1], true
}

func (f *Fake) Close() error {
	f.Closed = true
	return nil
}

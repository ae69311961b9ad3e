package gripper

import (
	"errors"
	"testing"

	"github.com/opengrab/go-gripper-serial/internal/hal"
)

func TestGripper_OpenClose(t *testing.T) {
	cfg := gripper120()
	fake := &hal.Fake{}
	g, err := New(cfg, fake)
	if err != nil {
		t.Fatal(err)
	}

	if err := g.Close(); err != nil {
		t.Fatal(err)
	}
	if last, _ := fake.Last(); last != cfg.DutyCycle(cfg.MinAngle) {
		t.Errorf("Close wrote duty %d, want %d", last, cfg.DutyCycle(cfg.MinAngle))
	}

	if err := g.Open(); err != nil {
		t.Fatal(err)
	}
	if last, _ := fake.Last(); last != cfg.DutyCycle(cfg.MaxAngle) {
		t.Errorf("Open wrote duty %d, want %d", last, cfg.DutyCycle(cfg.MaxAngle))
	}

	if angle, ok := g.Angle(); !ok || angle != cfg.MaxAngle {
		t.Errorf("Angle() = %d,%v, want %d,true", angle, ok, cfg.MaxAngle)
	}
}

func TestGripper_SetAngleOutOfRange(t *testing.T) {
	fake := &hal.Fake{}
	g, err := New(gripper120(), fake)
	if err != nil {
		t.Fatal(err)
	}

	for _, angle := range []int{-1, 121, 200, -90} {
		if err := g.SetAngle(angle); !errors.Is(err, ErrAngleRange) {
			t.Errorf("SetAngle(%d) = %v, want ErrAngleRange", angle, err)
		}
	}
	if len(fake.Duties) != 0 {
		t.Errorf("hardware touched on rejected angles: %v", fake.Duties)
	}
	if _, ok := g.Angle(); ok {
		t.Error("Angle() reports a position before any successful move")
	}
}

func TestGripper_HardwareError(t *testing.T) {
	wantErr := errors.New("bus gone")
	g, err := New(gripper120(), &hal.Fake{Err: wantErr})
	if err != nil {
		t.Fatal(err)
	}

	if err := g.SetAngle(60); !errors.Is(err, wantErr) {
		t.Errorf("SetAngle = %v, want %v", err, wantErr)
	}
	if _, ok := g.Angle(); ok {
		t.Error("failed write must not update the commanded angle")
	}
}

func TestGripper_InvalidConfig(t *testing.T) {
	cfg := gripper120()
	cfg.MinAngle, cfg.MaxAngle = 100, 50
	if _, err := New(cfg, &hal.Fake{}); err == nil {
		t.Fatal("expected config validation error")
	}
}

func TestGripper_Release(t *testing.T) {
	fake := &hal.Fake{}
	g, err := New(gripper120(), fake)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Release(); err != nil {
		t.Fatal(err)
	}
	if !fake.Closed {
		t.Error("Release did not close the PWM backend")
	}
}

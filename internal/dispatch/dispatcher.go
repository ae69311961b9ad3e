// Package dispatch routes one protocol line through a parse-validate-act-
// respond cycle. Stateless between invocations; every response is a side
// effect on the supplied writer.
package dispatch

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/opengrab/go-gripper-serial/internal/gripper"
	"github.com/opengrab/go-gripper-serial/internal/logging"
	"github.com/opengrab/go-gripper-serial/internal/protocol"
)

// Dispatcher handles request lines against a single gripper. Safe for use
// from multiple transports; the gripper serializes hardware access.
type Dispatcher struct {
	grip     *gripper.Gripper
	framer   protocol.Framer
	identity protocol.Identity
}

func New(g *gripper.Gripper, f protocol.Framer, identity protocol.Identity) *Dispatcher {
	return &Dispatcher{grip: g, framer: f, identity: identity}
}

// Dispatch processes one request line and writes any response to w. Lines
// whose task is missing or unrecognized are not addressed to this device and
// produce no output at all, so other listeners on a shared line can claim
// them. All errors are terminal for the current line and fatal to nothing.
func (d *Dispatcher) Dispatch(line []byte, w io.Writer) {
	var cmd protocol.Command
	if err := json.Unmarshal(line, &cmd); err != nil {
		parseErrors.Inc()
		logging.Warn("Error unmarshalling JSON: %s %v", err, string(line))
		d.fail(w, "JSON parse error", nil)
		return
	}

	logging.Debug("Received command %s", cmd.String())

	switch cmd.Task {
	case protocol.TaskStateGet:
		d.stateGet(w, &cmd)
	case protocol.TaskGripperAct:
		d.gripperAct(w, &cmd)
	default:
		commandsTotal.WithLabelValues("unrecognized", "ignored").Inc()
	}
}

func (d *Dispatcher) stateGet(w io.Writer, cmd *protocol.Command) {
	id := d.identity
	id.Success = 1
	id.QID = cmd.QID
	if err := d.framer.WriteIdentity(w, id); err != nil {
		logging.Warn("Error writing identity: %v", err)
	}
	commandsTotal.WithLabelValues("state_get", "ok").Inc()
}

func (d *Dispatcher) gripperAct(w io.Writer, cmd *protocol.Command) {
	switch cmd.Action {
	case "":
		d.fail(w, "No action specified", cmd.QID)
		commandsTotal.WithLabelValues("gripper_act", "no_action").Inc()

	case protocol.ActionOpen:
		d.move(w, cmd, d.grip.Open)

	case protocol.ActionClose:
		d.move(w, cmd, d.grip.Close)

	case protocol.ActionDegree:
		// A degree command without a value never touches the hardware:
		// defaulting a missing integer to 0 would silently slam the jaw shut.
		if cmd.Value == nil {
			d.fail(w, "Invalid angle", cmd.QID)
			commandsTotal.WithLabelValues("gripper_act", "invalid_angle").Inc()
			return
		}
		value := *cmd.Value
		d.move(w, cmd, func() error { return d.grip.SetAngle(value) })

	default:
		d.fail(w, "Unknown action", cmd.QID)
		commandsTotal.WithLabelValues("gripper_act", "unknown_action").Inc()
	}
}

func (d *Dispatcher) move(w io.Writer, cmd *protocol.Command, f func() error) {
	err := f()
	if err == nil {
		if werr := d.framer.WriteResponse(w, protocol.OK(cmd.QID)); werr != nil {
			logging.Warn("Error writing response: %v", werr)
		}
		commandsTotal.WithLabelValues("gripper_act", "ok").Inc()
		logging.Info("Gripper %s done", cmd.Action)
		return
	}

	if errors.Is(err, gripper.ErrAngleRange) {
		d.fail(w, "Invalid angle", cmd.QID)
		commandsTotal.WithLabelValues("gripper_act", "invalid_angle").Inc()
		return
	}

	logging.Error("Error moving servo: %v", err)
	d.fail(w, "Hardware write failed", cmd.QID)
	commandsTotal.WithLabelValues("gripper_act", "hardware_error").Inc()
}

func (d *Dispatcher) fail(w io.Writer, msg string, qid *int64) {
	if err := d.framer.WriteResponse(w, protocol.Fail(msg, qid)); err != nil {
		logging.Warn("Error writing response: %v", err)
	}
}

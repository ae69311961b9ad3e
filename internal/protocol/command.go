// Package protocol defines the line-oriented JSON command protocol spoken
// over the serial link (and mirrored on the MQTT bridge).
package protocol

import "fmt"

// Recognized task values. Anything else is treated as addressed to another
// device on the line and ignored without a response.
const (
	TaskStateGet   = "/state_get"
	TaskGripperAct = "/gripper_act"
)

// Actions for TaskGripperAct.
const (
	ActionOpen   = "open"
	ActionClose  = "close"
	ActionDegree = "degree"
)

// QIDAbsent is the internal sentinel for "no correlation id supplied". It
// never appears on the wire: absence is expressed by omitting the qid key.
const QIDAbsent int64 = -1

// Command is one parsed request line. Instances live only for the duration
// of a single dispatch.
type Command struct {
	Task   string `json:"task"`
	Action string `json:"action,omitempty"`
	Value  *int   `json:"value,omitempty"`
	QID    *int64 `json:"qid,omitempty"`
}

func (c *Command) String() string {
	return fmt.Sprintf("task:%s action:%s qid:%d", c.Task, c.Action, c.qid())
}

func (c *Command) qid() int64 {
	if c.QID == nil {
		return QIDAbsent
	}
	return *c.QID
}

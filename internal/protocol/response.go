package protocol

// Response is the payload for everything except identity reports.
type Response struct {
	Success int    `json:"success"`
	Error   string `json:"error,omitempty"`
	QID     *int64 `json:"qid,omitempty"`
}

// OK builds a success response, echoing qid when the request carried one.
func OK(qid *int64) Response {
	return Response{Success: 1, QID: qid}
}

// Fail builds an error response, echoing qid when the request carried one.
func Fail(msg string, qid *int64) Response {
	return Response{Success: 0, Error: msg, QID: qid}
}

// Identity is the fixed identity report returned for TaskStateGet. The field
// names (including the shouting IDENTIFIER_NAME) are part of the wire format.
type Identity struct {
	Name        string `json:"identifier_name"`
	ID          string `json:"identifier_id"`
	Date        string `json:"identifier_date"`
	Author      string `json:"identifier_author"`
	InternalID  string `json:"IDENTIFIER_NAME"`
	ConfigIsSet int    `json:"configIsSet"`
	PinDef      string `json:"pindef"`
	Success     int    `json:"success"`
	QID         *int64 `json:"qid,omitempty"`
}

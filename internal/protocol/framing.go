package protocol

import (
	"encoding/json"
	"fmt"
	"io"
)

// Two response dialects exist in the field. The delimited one wraps every
// response in marker lines so a host can detect complete messages amid line
// noise; the plain one emits human-readable text for everything except the
// identity report. A daemon picks one at startup and never mixes them.
const (
	DialectDelimited = "delimited"
	DialectPlain     = "plain"
)

// Markers used by the delimited dialect, each on its own line.
const (
	startMarker = "++"
	endMarker   = "--"
)

// Framer renders responses onto the transport in one dialect.
type Framer interface {
	WriteResponse(w io.Writer, r Response) error
	WriteIdentity(w io.Writer, id Identity) error
}

// NewFramer returns the framer for the named dialect.
func NewFramer(dialect string) (Framer, error) {
	switch dialect {
	case DialectDelimited:
		return delimitedFramer{}, nil
	case DialectPlain:
		return plainFramer{}, nil
	default:
		return nil, fmt.Errorf("unknown protocol dialect %q", dialect)
	}
}

type delimitedFramer struct{}

func (delimitedFramer) WriteResponse(w io.Writer, r Response) error {
	return writeDelimited(w, r)
}

func (delimitedFramer) WriteIdentity(w io.Writer, id Identity) error {
	return writeDelimited(w, id)
}

func writeDelimited(w io.Writer, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n%s\n%s\n", startMarker, body, endMarker)
	return err
}

type plainFramer struct{}

func (plainFramer) WriteResponse(w io.Writer, r Response) error {
	var line string
	if r.Success == 1 {
		line = "ok"
	} else {
		line = "error: " + r.Error
	}
	if r.QID != nil {
		line = fmt.Sprintf("%s qid=%d", line, *r.QID)
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

// Identity stays structured even in the plain dialect so hosts can probe
// firmware versions programmatically.
func (plainFramer) WriteIdentity(w io.Writer, id Identity) error {
	body, err := json.Marshal(id)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", body)
	return err
}

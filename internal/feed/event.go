package feed

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// WireEvent is a single parsed SSE event, delimited by a blank line in
// the upstream byte stream.
type WireEvent struct {
	// Type is the SSE event name from the "event:" field. An empty string
	// means the default "message" type per the SSE spec.
	Type string
	// Data is the concatenated contents of all "data:" lines, joined with
	// "\n".
	Data string
	// ID is the last event id from the "id:" field, if present.
	ID string
	// Retry is the server-suggested reconnect delay in milliseconds, or 0.
	Retry int
}

// Decoder reads SSE events off a long-lived response body.
//
// See https://html.spec.whatwg.org/multipage/server-sent-events.html for
// the wire format: "field: value" lines, comment lines starting with ':',
// events delimited by a blank line.
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder wraps r for event reading.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Next returns the next complete event. It blocks until a blank line
// terminates an event with at least one field, or returns the underlying
// read error (io.EOF at end of stream).
func (d *Decoder) Next() (WireEvent, error) {
	var ev WireEvent
	var data []string
	seen := false
	for {
		line, err := d.r.ReadString('\n')
		if err != nil {
			return WireEvent{}, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if !seen {
				continue // stray blank line between events
			}
			ev.Data = strings.Join(data, "\n")
			if ev.Type == "" {
				ev.Type = "message"
			}
			return ev, nil
		}
		if strings.HasPrefix(line, ":") {
			continue // comment / keepalive
		}
		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "event":
			ev.Type = value
			seen = true
		case "data":
			data = append(data, value)
			seen = true
		case "id":
			ev.ID = value
			seen = true
		case "retry":
			if n, err := strconv.Atoi(value); err == nil {
				ev.Retry = n
			}
			seen = true
		}
		// Unknown fields are ignored per the SSE spec.
	}
}

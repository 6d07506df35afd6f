package feed

import (
	"io"
	"strings"
	"testing"
)

func TestDecoderNamedEvent(t *testing.T) {
	d := NewDecoder(strings.NewReader("event: sales\ndata: {\"id\":1}\n\n"))
	ev, err := d.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if ev.Type != "sales" || ev.Data != `{"id":1}` {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestDecoderDefaultsToMessage(t *testing.T) {
	d := NewDecoder(strings.NewReader("data: hello\n\n"))
	ev, err := d.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if ev.Type != "message" {
		t.Fatalf("expected default message type, got %q", ev.Type)
	}
}

func TestDecoderJoinsMultiDataLines(t *testing.T) {
	d := NewDecoder(strings.NewReader("data: a\ndata: b\n\n"))
	ev, err := d.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if ev.Data != "a\nb" {
		t.Fatalf("multi-data join: %q", ev.Data)
	}
}

func TestDecoderSkipsCommentsAndStrayBlanks(t *testing.T) {
	d := NewDecoder(strings.NewReader(": keepalive\n\n\nevent: alert\ndata: {}\nid: 7\nretry: 5000\n\n"))
	ev, err := d.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if ev.Type != "alert" || ev.ID != "7" || ev.Retry != 5000 {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestDecoderCRLF(t *testing.T) {
	d := NewDecoder(strings.NewReader("event: sales\r\ndata: {}\r\n\r\n"))
	ev, err := d.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if ev.Type != "sales" || ev.Data != "{}" {
		t.Fatalf("crlf handling: %+v", ev)
	}
}

func TestDecoderEOF(t *testing.T) {
	d := NewDecoder(strings.NewReader(""))
	if _, err := d.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

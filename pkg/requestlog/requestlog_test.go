package requestlog

import (
	"strconv"
	"testing"
)

func TestLogAssignsIDAndTimestamp(t *testing.T) {
	s := NewInMemoryStore(10)
	entry := &Entry{Method: "GET", Path: "/candidates", ResponseStatus: 200}
	s.Log(entry)

	if entry.ID == "" {
		t.Error("ID was not assigned")
	}
	if entry.Timestamp.IsZero() {
		t.Error("timestamp was not assigned")
	}
	if got := s.Get(entry.ID); got != entry {
		t.Errorf("Get(%q) = %v", entry.ID, got)
	}
	if s.Get("missing") != nil {
		t.Error("Get of unknown ID should return nil")
	}
}

func TestCircularBufferEviction(t *testing.T) {
	s := NewInMemoryStore(3)
	for i := 0; i < 5; i++ {
		s.Log(&Entry{Method: "GET", Path: "/p/" + strconv.Itoa(i)})
	}

	if s.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", s.Count())
	}
	entries := s.List(nil)
	if entries[0].Path != "/p/4" {
		t.Errorf("newest first, got %s", entries[0].Path)
	}
	if entries[2].Path != "/p/2" {
		t.Errorf("oldest retained should be /p/2, got %s", entries[2].Path)
	}
}

func TestListFilters(t *testing.T) {
	s := NewInMemoryStore(10)
	s.Log(&Entry{Method: "GET", Path: "/candidates", ResponseStatus: 200, EndpointID: "ep-1"})
	s.Log(&Entry{Method: "POST", Path: "/candidates", ResponseStatus: 400, EndpointID: "ep-1"})
	s.Log(&Entry{Method: "GET", Path: "/jobs", ResponseStatus: 200, EndpointID: "ep-2"})

	if got := s.List(&Filter{Method: "GET"}); len(got) != 2 {
		t.Errorf("method filter: got %d entries", len(got))
	}
	if got := s.List(&Filter{Path: "/candidates"}); len(got) != 2 {
		t.Errorf("path filter: got %d entries", len(got))
	}
	if got := s.List(&Filter{EndpointID: "ep-2"}); len(got) != 1 {
		t.Errorf("endpoint filter: got %d entries", len(got))
	}
	if got := s.List(&Filter{StatusCode: 400}); len(got) != 1 {
		t.Errorf("status filter: got %d entries", len(got))
	}
	if got := s.List(&Filter{Limit: 1, Offset: 1}); len(got) != 1 || got[0].Path != "/candidates" {
		t.Errorf("limit/offset: got %v", got)
	}
}

func TestClear(t *testing.T) {
	s := NewInMemoryStore(10)
	s.Log(&Entry{Method: "GET", Path: "/candidates"})
	s.Clear()
	if s.Count() != 0 {
		t.Errorf("Count() after Clear = %d", s.Count())
	}
}

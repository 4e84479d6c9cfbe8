package spacestore

import (
	"errors"
	"testing"

	"github.com/flowcore/engine/pkg/serialize"
)

func TestCreateRequiresName(t *testing.T) {
	s := New()
	_, err := s.Create("", "", serialize.SpaceJSON{})
	if !errors.Is(err, ErrNameRequired) {
		t.Errorf("expected ErrNameRequired, got %v", err)
	}
}

func TestCreateGetRoundTrip(t *testing.T) {
	s := New()
	id, err := s.Create("pipeline-a", "demo", serialize.SpaceJSON{Version: serialize.Version})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	entry, err := s.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if entry.Name != "pipeline-a" || entry.Description != "demo" {
		t.Errorf("unexpected entry: %+v", entry)
	}
	if entry.CreatedAt.IsZero() || entry.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestGetUnknownID(t *testing.T) {
	s := New()
	if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateBumpsTimestamp(t *testing.T) {
	s := New()
	id, _ := s.Create("a", "", serialize.SpaceJSON{})
	before, _ := s.Get(id)

	if err := s.Update(id, serialize.SpaceJSON{Version: 2}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	after, _ := s.Get(id)

	if after.Space.Version != 2 {
		t.Errorf("expected updated payload, got %+v", after.Space)
	}
	if after.UpdatedAt.Before(before.UpdatedAt) {
		t.Error("expected UpdatedAt to advance or stay equal after Update")
	}
}

func TestUpdateUnknownID(t *testing.T) {
	s := New()
	if err := s.Update("missing", serialize.SpaceJSON{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := New()
	id, _ := s.Create("a", "", serialize.SpaceJSON{})
	s.Delete(id)
	if _, err := s.Get(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected entry to be gone after Delete, got %v", err)
	}
	s.Delete(id) // deleting again must not panic
}

func TestListReturnsSummariesWithoutPayload(t *testing.T) {
	s := New()
	_, _ = s.Create("a", "", serialize.SpaceJSON{})
	_, _ = s.Create("b", "", serialize.SpaceJSON{})

	list := s.List()
	if len(list) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(list))
	}
	names := map[string]bool{}
	for _, entry := range list {
		names[entry.Name] = true
	}
	if !names["a"] || !names["b"] {
		t.Errorf("expected both a and b in listing, got %v", list)
	}
}

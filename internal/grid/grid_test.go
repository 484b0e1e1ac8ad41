package grid

import (
	"encoding/json"
	"io"
	"log/slog"
	"reflect"
	"testing"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestBuild(t *testing.T) {
	g, err := Build([]string{"2024-01-15", "2024-07-15"}, "09:00", "10:00", "America/New_York", DefaultInterval, quietLogger)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"09:00", "09:30", "10:00"}; !reflect.DeepEqual(g.Times, want) {
		t.Errorf("Times = %v, want %v", g.Times, want)
	}
	want := []string{
		"2024-01-15T14:00:00.000Z", "2024-01-15T14:30:00.000Z", "2024-01-15T15:00:00.000Z",
		"2024-07-15T13:00:00.000Z", "2024-07-15T13:30:00.000Z", "2024-07-15T14:00:00.000Z",
	}
	if got := g.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	cell, ok := g.Lookup("2024-07-15T13:30:00.000Z")
	if !ok || cell.Date != "2024-07-15" || cell.Time != "09:30" || cell.Fallback {
		t.Errorf("Lookup() = %+v, %v", cell, ok)
	}
	if g.Contains("2024-07-15T13:15:00.000Z") {
		t.Error("Contains() matched an off-grid key")
	}
}

func TestBuildFallsBackOnUnknownZone(t *testing.T) {
	g, err := Build([]string{"2024-01-15"}, "09:00", "09:30", "Nowhere/Special", DefaultInterval, quietLogger)
	if err != nil {
		t.Fatalf("Build() error = %v, want literal fallback", err)
	}
	for _, c := range g.Rows[0].Cells {
		if !c.Fallback {
			t.Errorf("cell %+v not flagged as fallback", c)
		}
	}
	if got := g.Rows[0].Cells[1].Key; got != "2024-01-15T09:30:00.000Z" {
		t.Errorf("fallback key = %s", got)
	}
}

func TestBuildRejectsBadInput(t *testing.T) {
	if _, err := Build([]string{"2024-01-15"}, "10:00", "09:00", "UTC", DefaultInterval, quietLogger); err == nil {
		t.Error("reversed range accepted")
	}
	if _, err := Build([]string{"15/01/2024"}, "09:00", "10:00", "UTC", DefaultInterval, quietLogger); err == nil {
		t.Error("malformed date accepted")
	}
}

func TestSlotSetJSON(t *testing.T) {
	var fromList SlotSet
	if err := json.Unmarshal([]byte(`["b","a","b"]`), &fromList); err != nil {
		t.Fatal(err)
	}
	if got := fromList.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("list form = %v", got)
	}

	var fromObject SlotSet
	if err := json.Unmarshal([]byte(`{"a": true, "b": false, "c": true}`), &fromObject); err != nil {
		t.Fatal(err)
	}
	if got := fromObject.Keys(); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Errorf("object form = %v", got)
	}

	var bad SlotSet
	if err := json.Unmarshal([]byte(`"a"`), &bad); err == nil {
		t.Error("string form accepted")
	}

	out, err := json.Marshal(NewSlotSet("z", "y"))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `["y","z"]` {
		t.Errorf("Marshal = %s", out)
	}
}

func TestSlotSetCloneIsIndependent(t *testing.T) {
	s := NewSlotSet("a")
	c := s.Clone()
	c.Add("b")
	if s.Has("b") {
		t.Error("Clone shares storage with the original")
	}
}

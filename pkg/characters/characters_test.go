package characters

import (
	"encoding/json"
	"testing"
)

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ID
		wantErr bool
	}{
		{name: "graphql string id", input: `"42"`, want: 42},
		{name: "numeric id", input: `42`, want: 42},
		{name: "null", input: `null`, want: 0},
		{name: "garbage", input: `"rick"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			err := json.Unmarshal([]byte(tt.input), &id)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != tt.want {
				t.Errorf("got %d, want %d", id, tt.want)
			}
		})
	}
}

func TestID_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(ID(7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "7" {
		t.Errorf("got %s, want 7", data)
	}
}

func TestCharacter_UnmarshalToleratesUnknownFields(t *testing.T) {
	payload := `{
		"id": "1",
		"name": "Rick Sanchez",
		"status": "Alive",
		"species": "Human",
		"gender": "Male",
		"origin": {"name": "Earth (C-137)", "dimension": "Dimension C-137"},
		"location": {"name": "Citadel of Ricks"},
		"image": "https://example.test/1.jpeg",
		"some_future_field": {"nested": true}
	}`

	var c Character
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID != 1 || c.Name != "Rick Sanchez" {
		t.Errorf("unexpected character: %+v", c)
	}
	if c.Origin.Dimension == nil || *c.Origin.Dimension != "Dimension C-137" {
		t.Errorf("expected origin dimension to survive, got %+v", c.Origin)
	}
	if c.Episode != nil {
		t.Errorf("expected missing episode list to stay nil")
	}
}

func TestFilter_Key(t *testing.T) {
	t.Run("field-wise equal filters share a key", func(t *testing.T) {
		f1 := Filter{Name: "rick", Status: StatusAlive}
		f2 := Filter{Status: StatusAlive, Name: "rick"}
		if f1.Key() != f2.Key() {
			t.Errorf("keys differ: %s vs %s", f1.Key(), f2.Key())
		}
	})

	t.Run("different filters get different keys", func(t *testing.T) {
		f1 := Filter{Name: "rick"}
		f2 := Filter{Name: "morty"}
		if f1.Key() == f2.Key() {
			t.Errorf("keys collide: %s", f1.Key())
		}
	})

	t.Run("zero filter", func(t *testing.T) {
		if (Filter{}).Key() != "{}" {
			t.Errorf("got %s", (Filter{}).Key())
		}
		if !(Filter{}).IsZero() {
			t.Error("zero filter not detected")
		}
	})
}

func TestFilter_MarshalOmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(Filter{Status: StatusDead})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `{"status":"dead"}` {
		t.Errorf("got %s", data)
	}
}

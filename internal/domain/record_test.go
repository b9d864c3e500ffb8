package domain

import "testing"

func TestImageRecord_FieldPrecedence(t *testing.T) {
	tests := []struct {
		name      string
		intrinsic string
		override  *string
		want      string
	}{
		{name: "override wins", intrinsic: "X", override: String("Y"), want: "Y"},
		{name: "empty override falls back", intrinsic: "X", override: String(""), want: "X"},
		{name: "blank override is still an override", intrinsic: "X", override: String("   "), want: "   "},
		{name: "no override uses intrinsic", intrinsic: "X", want: "X"},
		{name: "nothing is unknown", want: Unknown},
		{name: "override over unknown", intrinsic: Unknown, override: String("R5"), want: "R5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewImageRecord("a.jpg", Intrinsic{Model: tt.intrinsic}, nil)
			r.Override.Model = tt.override

			if got := r.Model(); got != tt.want {
				t.Errorf("Model() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestImageRecord_NotesHaveNoIntrinsic(t *testing.T) {
	r := NewImageRecord("a.jpg", Intrinsic{}, nil)
	if r.Notes() != "" {
		t.Errorf("expected empty notes, got %q", r.Notes())
	}
	if r.HasNotes() {
		t.Error("expected HasNotes() to be false")
	}

	r.Override.Notes = String("  ")
	if r.HasNotes() {
		t.Error("expected blank notes not to count")
	}

	r.Override.Notes = String("beach day")
	if r.Notes() != "beach day" {
		t.Errorf("expected notes to be copied verbatim, got %q", r.Notes())
	}
}

func TestImageRecord_ApplyIsIdempotent(t *testing.T) {
	r := NewImageRecord("a.jpg", Intrinsic{Make: "Canon", Model: "X"}, nil)
	stored := &StoredMetadata{
		Identity: "a.jpg",
		Override: Override{Model: String("R5"), Notes: String("n")},
	}

	r.Apply(stored)
	first := *r
	r.Apply(stored)

	if r.Model() != "R5" || first.Model() != "R5" {
		t.Errorf("expected model R5, got %q then %q", first.Model(), r.Model())
	}
	if r.Make() != "Canon" {
		t.Errorf("expected intrinsic make to survive, got %q", r.Make())
	}

	// The record must not alias the stored pointers
	*stored.Override.Model = "changed"
	if r.Model() != "R5" {
		t.Errorf("record aliases stored override: model = %q", r.Model())
	}

	r.Apply(nil)
	if r.Model() != "X" {
		t.Errorf("expected Apply(nil) to drop overrides, got %q", r.Model())
	}
}

func TestOverride_Patch(t *testing.T) {
	base := Override{Make: String("Canon")}
	got := base.Patch(Override{Model: String("R5")})

	if v, _ := got.Get(FieldMake); v != "Canon" {
		t.Errorf("expected make Canon, got %q", v)
	}
	if v, _ := got.Get(FieldModel); v != "R5" {
		t.Errorf("expected model R5, got %q", v)
	}
	if _, ok := base.Get(FieldModel); ok {
		t.Error("Patch must not modify the receiver")
	}

	cleared := got.Patch(Override{Make: String("")})
	if v, ok := cleared.Get(FieldMake); !ok || v != "" {
		t.Errorf("expected explicit empty make, got %q (present=%v)", v, ok)
	}
}

func TestOverride_IsEmpty(t *testing.T) {
	if !(Override{}).IsEmpty() {
		t.Error("zero override should be empty")
	}
	if (Override{Artist: String("")}).IsEmpty() {
		t.Error("override with a present empty field should not be empty")
	}
}

func TestParseField(t *testing.T) {
	tests := []struct {
		in   string
		want Field
		ok   bool
	}{
		{"notes", FieldNotes, true},
		{"date_created", FieldDateCreated, true},
		{"dateCreated", FieldDateCreated, true},
		{"MODEL", FieldModel, true},
		{"iso", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseField(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseField(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

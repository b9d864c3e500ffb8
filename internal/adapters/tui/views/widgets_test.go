package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"photonotes/internal/domain"
)

func TestPager_Scrolling(t *testing.T) {
	p := NewPager(3)
	p.SetTotal(8)

	for range 3 {
		p.Down()
	}
	if start, end := p.Visible(); p.Cursor() != 3 || start != 1 || end != 4 {
		t.Errorf("after 3 downs: cursor %d, visible %d-%d", p.Cursor(), start, end)
	}

	p.PageDown()
	if start, _ := p.Visible(); p.Cursor() != 6 || start != 4 {
		t.Errorf("after page down: cursor %d, top %d", p.Cursor(), start)
	}

	p.PageDown()
	if start, end := p.Visible(); start != 5 || end != 8 || p.Cursor() != 7 {
		t.Errorf("last page visible %d-%d cursor %d, want 5-8 cursor 7", start, end, p.Cursor())
	}

	p.SetCursor(5)
	if !p.PageDown() || p.Cursor() != 7 {
		t.Errorf("page down on the last page should reach the last row, cursor %d", p.Cursor())
	}
	if p.PageDown() {
		t.Error("page down at the end should report no move")
	}
	if page, pages := p.Page(); page != pages || pages != 3 {
		t.Errorf("page %d of %d, want 3 of 3", page, pages)
	}
}

func TestPager_JumpAndClamp(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		jump      int
		wantCur   int
		wantStart int
	}{
		{"middle", 10, 4, 4, 4},
		{"near end keeps a full page", 10, 8, 8, 6},
		{"past end", 10, 42, 9, 6},
		{"negative", 10, -1, 0, 0},
		{"empty", 0, 3, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPager(4)
			p.SetTotal(tt.total)
			p.Jump(tt.jump)
			start, _ := p.Visible()
			if p.Cursor() != tt.wantCur || start != tt.wantStart {
				t.Errorf("Jump(%d) = cursor %d top %d, want %d %d", tt.jump, p.Cursor(), start, tt.wantCur, tt.wantStart)
			}
		})
	}
}

func TestPager_ShrinkingTotal(t *testing.T) {
	p := NewPager(5)
	p.SetTotal(20)
	p.SetCursor(18)
	p.SetTotal(4)
	if p.Cursor() != 3 {
		t.Errorf("cursor = %d, want 3", p.Cursor())
	}
	if start, end := p.Visible(); start != 0 || end != 4 {
		t.Errorf("visible %d-%d, want 0-4", start, end)
	}

	p.Resize(2)
	if start, end := p.Visible(); start != 2 || end != 4 {
		t.Errorf("after resize visible %d-%d, want 2-4", start, end)
	}
}

func TestFieldForm_Focus(t *testing.T) {
	r := photo("Trip/a.jpg", "2023-05-15 09:00:00", "X100", "line one\nline two")
	form := NewFieldForm(r)

	if form.Len() != len(domain.EditableFields)-1 {
		t.Fatalf("multi-line notes should be left out, got %d inputs", form.Len())
	}
	if form.Field(0) != domain.FieldDateCreated {
		t.Errorf("first input = %s, want dateCreated", form.Field(0))
	}

	form.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if form.focused != form.Len()-1 {
		t.Errorf("shift+tab from the first input should wrap, focused %d", form.focused)
	}
	form.Update(tea.KeyMsg{Type: tea.KeyTab})
	if form.focused != 0 {
		t.Errorf("tab should wrap back to 0, focused %d", form.focused)
	}

	if !form.Patch().IsEmpty() {
		t.Error("untouched form should not patch anything")
	}
}

func TestHelpModel_ListsEveryBinding(t *testing.T) {
	m := NewHelpModel()
	out := m.View()
	for _, section := range helpSections() {
		if !strings.Contains(out, section.title) {
			t.Errorf("help is missing section %q", section.title)
		}
		for _, b := range section.bindings {
			if desc := b.Help().Desc; !strings.Contains(out, desc) {
				t.Errorf("help is missing %q", desc)
			}
		}
	}

	_, cmd := m.Update(keyPress("?"))
	if cmd == nil {
		t.Fatal("? should close the help")
	}
	if _, ok := cmd().(SwitchToGalleryMsg); !ok {
		t.Errorf("got %#v, want SwitchToGalleryMsg", cmd())
	}
}

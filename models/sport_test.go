package models

import "testing"

func TestSportsReturnsCopy(t *testing.T) {
	sports := Sports()
	if len(sports) != 2 {
		t.Fatalf("len = %d, want 2", len(sports))
	}
	sports[0].Name = "changed"

	if got, _ := FindSport("soccer"); got.Name != "Soccer ⚽" {
		t.Fatalf("catalog mutated through Sports(): %q", got.Name)
	}
}

func TestSportIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range Sports() {
		if seen[s.ID] {
			t.Fatalf("duplicate sport id %q", s.ID)
		}
		seen[s.ID] = true
	}
}

func TestFindSport(t *testing.T) {
	tests := []struct {
		id     string
		want   string
		wantOK bool
	}{
		{"soccer", "Soccer ⚽", true},
		{"basketball", "Basketball 🏀", true},
		{"Soccer", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := FindSport(tt.id)
		if ok != tt.wantOK || got.Name != tt.want {
			t.Errorf("FindSport(%q) = %+v, %v", tt.id, got, ok)
		}
	}
}

func TestTeamValid(t *testing.T) {
	for team, want := range map[Team]bool{TeamA: true, TeamB: true, "team_c": false, "": false} {
		if got := team.Valid(); got != want {
			t.Errorf("Team(%q).Valid() = %v", team, got)
		}
	}
}

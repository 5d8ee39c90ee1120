package model

import "testing"

func TestItemMatchesText(t *testing.T) {
	tests := []struct {
		name string
		item Item
		text string
		want bool
	}{
		{
			name: "matches_name",
			item: Item{Name: "Cordless Drill", Available: true},
			text: "drill",
			want: true,
		},
		{
			name: "matches_description",
			item: Item{Name: "Ladder", Description: "includes a Drill bit set", Available: true},
			text: "drill",
			want: true,
		},
		{
			name: "unavailable_never_matches",
			item: Item{Name: "Cordless Drill", Available: false},
			text: "drill",
			want: false,
		},
		{
			name: "no_substring",
			item: Item{Name: "Tent", Description: "4 person", Available: true},
			text: "drill",
			want: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.item.MatchesText(test.text); got != test.want {
				t.Errorf("MatchesText(%q) = %v, want %v", test.text, got, test.want)
			}
		})
	}
}

func TestItemClone(t *testing.T) {
	reqID := int64(7)
	item := &Item{ID: 1, Name: "Drill", RequestID: &reqID}

	clone := item.Clone()
	*clone.RequestID = 99

	if *item.RequestID != 7 {
		t.Errorf("clone shares RequestID pointer with original")
	}
}

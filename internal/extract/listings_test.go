// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestListings(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "three physics problems",
			text: "Here are three hard problems:\n1. **Quantum gravity** Unify GR and QM.\n2. **Dark matter** What is it made of?\n3. **Hierarchy problem** Why is gravity so weak?   \n",
			want: []string{
				"**Quantum gravity** Unify GR and QM.",
				"**Dark matter** What is it made of?",
				"**Hierarchy problem** Why is gravity so weak?",
			},
		},
		{
			name: "multi-digit markers",
			text: "List:\n9. nine\n10. ten\n11. eleven",
			want: []string{"nine", "ten", "eleven"},
		},
		{
			name: "first line is not matched",
			text: "1. first\n2. second",
			want: []string{"second"},
		},
		{
			name: "indented markers are not matched",
			text: "intro\n  1. indented\n2. flush",
			want: []string{"flush"},
		},
		{
			name: "crlf line endings",
			text: "intro\r\n1. alpha\r\n2. beta\r\n",
			want: []string{"alpha", "beta"},
		},
		{
			name: "continuation lines are ignored",
			text: "intro\n1. alpha\n   more about alpha\n2. beta",
			want: []string{"alpha", "beta"},
		},
		{
			name: "no numbered items",
			text: "Just prose without any list.\n- a bullet\n",
			want: nil,
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Listings(tt.text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Listings() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

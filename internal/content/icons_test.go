package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveIcon(t *testing.T) {
	cases := []struct {
		name string
		want Icon
	}{
		{"Science Lab", IconFlaskConical},
		{"School Library", IconBookOpen},
		{"xyz-unknown", IconBuilding2},
		{"", IconBuilding2},
		{"computer", IconMonitor},
		{"SPORTS", IconTrophy},
		{"Playground", IconTrophy},
		{"Dining Hall", IconMusic},
		{"food court", IconUtensilsCrossed},
		{"Health", IconHeartPulse},
		{"smart", IconTv2},
		// library outranks lab
		{"library lab", IconBookOpen},
		// "hall" is checked before "food"
		{"food hall", IconMusic},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveIcon(tc.name))
		})
	}
}

func TestResolveIcon_CaseInsensitive(t *testing.T) {
	assert.Equal(t, ResolveIcon("science"), ResolveIcon("SCIENCE"))
	assert.Equal(t, ResolveIcon("Canteen"), ResolveIcon("cAnTeEn"))
}

func TestIconRules_Order(t *testing.T) {
	rules := IconRules()
	got := make([]Icon, len(rules))
	for i, r := range rules {
		got[i] = r.Icon
	}
	assert.Equal(t, []Icon{
		IconBookOpen, IconFlaskConical, IconMonitor, IconTrophy,
		IconMusic, IconUtensilsCrossed, IconHeartPulse, IconTv2,
	}, got)

	rules[0].Keywords[0] = "mutated"
	assert.Equal(t, "library", IconRules()[0].Keywords[0])
}

package content

import "strings"

// Icon names a glyph in the site icon sprite.
type Icon string

const (
	IconBookOpen        Icon = "BookOpen"
	IconFlaskConical    Icon = "FlaskConical"
	IconMonitor         Icon = "Monitor"
	IconTrophy          Icon = "Trophy"
	IconMusic           Icon = "Music"
	IconUtensilsCrossed Icon = "UtensilsCrossed"
	IconHeartPulse      Icon = "HeartPulse"
	IconTv2             Icon = "Tv2"
	IconBuilding2       Icon = "Building2"
)

// DefaultIcon is used when no rule matches.
const DefaultIcon = IconBuilding2

// IconRule maps any of its keywords, as a substring of the lower-cased name, to Icon.
type IconRule struct {
	Keywords []string
	Icon     Icon
}

// order matters: the first matching rule wins
var iconRules = []IconRule{
	{Keywords: []string{"library", "book"}, Icon: IconBookOpen},
	{Keywords: []string{"science", "lab"}, Icon: IconFlaskConical},
	{Keywords: []string{"computer"}, Icon: IconMonitor},
	{Keywords: []string{"sport", "ground"}, Icon: IconTrophy},
	{Keywords: []string{"auditorium", "hall"}, Icon: IconMusic},
	{Keywords: []string{"canteen", "food"}, Icon: IconUtensilsCrossed},
	{Keywords: []string{"medical", "health"}, Icon: IconHeartPulse},
	{Keywords: []string{"classroom", "smart"}, Icon: IconTv2},
}

// IconRules returns a copy of the ordered rule table.
func IconRules() []IconRule {
	out := make([]IconRule, len(iconRules))
	for i, r := range iconRules {
		out[i] = IconRule{Keywords: append([]string(nil), r.Keywords...), Icon: r.Icon}
	}
	return out
}

// ResolveIcon picks the icon for a facility icon name.
func ResolveIcon(name string) Icon {
	n := strings.ToLower(name)
	for _, r := range iconRules {
		for _, kw := range r.Keywords {
			if strings.Contains(n, kw) {
				return r.Icon
			}
		}
	}
	return DefaultIcon
}

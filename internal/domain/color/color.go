// Package color buckets free-text color descriptions into named color families.
package color

import (
	"regexp"
	"strings"
)

// Family is a human-readable color-group label.
type Family string

// Color families. Unknown is returned for a missing color, Mixed when no rule matches.
const (
	BlackGreys  Family = "Black & Greys"
	WhiteOffs   Family = "White & Off-Whites"
	Blues       Family = "Blues"
	Greens      Family = "Greens"
	Reds        Family = "Reds"
	Purples     Family = "Purples & Mauves"
	Pinks       Family = "Pinks"
	Yellows     Family = "Yellows"
	Oranges     Family = "Oranges"
	Browns      Family = "Browns"
	GoldsMetals Family = "Golds & Metallics"
	Mixed       Family = "Multi / Mixed & Others"
	Unknown     Family = "Unknown"
)

type rule struct {
	family Family
	re     *regexp.Regexp
}

// rules are evaluated in order; the first matching family wins.
// "tomato red" hits both Reds and Oranges and resolves to Reds.
var rules = []rule{
	compile(BlackGreys,
		`\bblack\b`, `\bdark black\b`, `\bmatte black\b`,
		`\bgrey\b`, `\bgray\b`, `\bcharcoal\b`, `\bash grey\b`,
		`\bsteel grey\b`, `\biy? icy grey\b`, `\bmidnight dark grey\b`),
	compile(WhiteOffs,
		`\bwhite\b`, `\bpure white\b`, `\boff white\b`, `\bivory\b`,
		`\bcream\b`, `\bvanila\b`, `\bpure cream\b`, `\bbeige\b`,
		`\boat beige\b`),
	compile(Blues,
		`\bnavy\b`, `\bmidnight blue\b`, `\broyal blue\b`,
		`\b(prussian|powder|sky|baby|azure|sea|pastel dark) blue\b`,
		`\bteal blue\b`, `\bpeacock blue\b`, `\bturquoise blue\b`,
		`\baqua blue\b`, `\bfirozi\b`, `\bink blue\b`),
	compile(Greens,
		`\bgreen\b`, `\bdark green\b`, `\bolive\b`, `\bpistachio\b`,
		`\bmint\b`, `\bseafoam\b`, `\bsage\b`, `\bfern\b`,
		`\bapple\b`, `\bliril\b`, `\bparrot\b`, `\bme(h|hn)di\b`,
		`\bmoss\b`, `\bceladon\b`, `\bcastleton\b`, `\bpeacock green\b`,
		`\bemerald\b`, `\bpure green\b`, `\bbright green\b`),
	compile(Reds,
		`\bred\b`, `\bdeep red\b`, `\bcherry red\b`, `\bruby\b`,
		`\btomato\b`, `\bchilly red\b`, `\bbrick red\b`, `\bwine\b`,
		`\bmaroon\b`, `\bburgundy\b`, `\brani\b`),
	compile(Purples,
		`\bpurple\b`, `\bplum\b`, `\bmauve\b`, `\blavender\b`,
		`\bviolet\b`, `\bmagenta\b`, `\btyrian\b`),
	compile(Pinks,
		`\bpink\b`, `\bpale pink\b`, `\bdusty pink\b`, `\bbaby pink\b`,
		`\bblush pink\b`, `\bcoral pink\b`, `\bbubble gum\b`,
		`\brani pink\b`, `\btaffy pink\b`),
	compile(Yellows,
		`\byellow\b`, `\bmustard\b`, `\bturmeric\b`, `\bpale yellow\b`,
		`\blight yellow\b`, `\bpure yellow\b`, `\btrombone yellow\b`,
		`\blemon yellow\b`, `\byellow beige\b`),
	compile(Oranges,
		`\borange\b`, `\blight orange\b`, `\bpure orange\b`,
		`\bsalmon\b`, `\bcoral\b`, `\bcarrot\b`, `\brust orange\b`,
		`\btomato red\b`, `\bdusty orange\b`, `\bgradient.*orange\b`),
	compile(Browns,
		`\bbrown\b`, `\bcoffee\b`, `\bchik+k?o?\b`, `\bcopper\b`,
		`\bcinnamon\b`, `\bchocolate\b`),
	compile(GoldsMetals,
		`\bgold\b`, `\bpure gold\b`, `\bgolden\b`, `\bsilver\b`),
}

func compile(f Family, patterns ...string) rule {
	return rule{family: f, re: regexp.MustCompile(`(?i)` + strings.Join(patterns, "|"))}
}

// Classify maps a color description to its family.
func Classify(raw string) Family {
	s := strings.ToLower(strings.TrimSpace(raw))
	for _, r := range rules {
		if r.re.MatchString(s) {
			return r.family
		}
	}
	return Mixed
}

// ClassifyOptional is Classify for a possibly missing value; nil yields Unknown.
func ClassifyOptional(raw *string) Family {
	if raw == nil {
		return Unknown
	}
	return Classify(*raw)
}

// Families returns every family a classification can produce, in rule order,
// followed by Mixed and Unknown.
func Families() []Family {
	out := make([]Family, 0, len(rules)+2)
	for _, r := range rules {
		out = append(out, r.family)
	}
	return append(out, Mixed, Unknown)
}

func (f Family) String() string { return string(f) }

package fields

import "strings"

// Role identifies the semantic slot a form field plays in an application form
type Role string

const (
	RoleName        Role = "name"
	RoleEmail       Role = "email"
	RolePhone       Role = "phone"
	RoleLinkedIn    Role = "linkedin"
	RoleGitHub      Role = "github"
	RolePortfolio   Role = "portfolio"
	RoleCoverLetter Role = "cover_letter"
)

// AllRoles lists roles in the order they are resolved. URL-bearing roles
// with distinctive keywords (linkedin, github) run before the generic
// portfolio role so a bare "website" field is never stolen from them.
var AllRoles = []Role{
	RoleName,
	RoleEmail,
	RolePhone,
	RoleLinkedIn,
	RoleGitHub,
	RolePortfolio,
	RoleCoverLetter,
}

// MatchTier orders matcher strength. Lower tiers win; ties within a tier
// fall through to edit distance.
type MatchTier int

const (
	// TierExact matches a whole attribute value against a keyword
	TierExact MatchTier = iota
	// TierSubstring matches a keyword anywhere inside an attribute value
	TierSubstring
	// TierInputType matches the element's type attribute alone
	TierInputType
	tierNone
)

// Rule is the declarative matching recipe for one role
type Rule struct {
	// Keywords are compared against name, id, label, and placeholder,
	// first exactly and then by substring
	Keywords []string
	// InputTypes match the element's type attribute as a last resort
	InputTypes []string
	// WantsTextarea restricts the role to textarea elements when set
	WantsTextarea bool
	// ExcludeKeywords disqualify a field outright; a "github" field must
	// never satisfy the portfolio role
	ExcludeKeywords []string
}

// rules is the resolution table. Editing it changes matching behavior
// without touching resolver code.
var rules = map[Role]Rule{
	RoleName: {
		Keywords:        []string{"name", "full_name", "fullname", "full-name", "applicant"},
		ExcludeKeywords: []string{"user", "company", "file"},
	},
	RoleEmail: {
		Keywords:   []string{"email", "e-mail", "mail"},
		InputTypes: []string{"email"},
	},
	RolePhone: {
		Keywords:   []string{"phone", "phone_number", "telephone", "mobile", "cell"},
		InputTypes: []string{"tel"},
	},
	RoleLinkedIn: {
		Keywords: []string{"linkedin", "linked_in", "linked-in"},
	},
	RoleGitHub: {
		Keywords: []string{"github", "git_hub", "git-hub"},
	},
	RolePortfolio: {
		Keywords:        []string{"portfolio", "website", "site", "url", "homepage", "personal_site"},
		InputTypes:      []string{"url"},
		ExcludeKeywords: []string{"linkedin", "github"},
	},
	RoleCoverLetter: {
		Keywords:      []string{"cover_letter", "coverletter", "cover-letter", "cover", "letter", "motivation", "why"},
		WantsTextarea: true,
	},
}

// RuleFor returns the matching rule for a role
func RuleFor(role Role) (Rule, bool) {
	r, ok := rules[role]
	return r, ok
}

// match scores field against the rule and returns the strongest tier it
// satisfies plus the keyword that matched (empty for type-only matches).
// tierNone means no match.
func (r Rule) match(field FormField) (MatchTier, string) {
	attrs := field.matchableAttrs()

	for _, kw := range r.ExcludeKeywords {
		for _, attr := range attrs {
			if strings.Contains(attr, kw) {
				return tierNone, ""
			}
		}
	}

	if r.WantsTextarea && field.Tag != "textarea" {
		return tierNone, ""
	}

	best := tierNone
	matched := ""
	for _, kw := range r.Keywords {
		for _, attr := range attrs {
			if attr == kw && TierExact < best {
				best, matched = TierExact, kw
			} else if strings.Contains(attr, kw) && TierSubstring < best {
				best, matched = TierSubstring, kw
			}
		}
	}
	if best != tierNone {
		return best, matched
	}

	for _, t := range r.InputTypes {
		if field.Type == t {
			return TierInputType, ""
		}
	}
	return tierNone, ""
}

// levenshtein computes edit distance, used only to break ties between
// fields matching at the same tier
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[lb]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// Package rules applies an ordered cascade of pattern substitutions that fix
// common English grammar mistakes.
//
// All rules run case-insensitively against the evolving buffer, so later
// rules see the rewrites of earlier ones. Order is significant: contraction
// canonicalization must run before punctuation spacing, and the two article
// rules (a→an, an→a) deliberately run back to back in this order.
package rules

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rule is a single pattern → replacement substitution. Pattern is an RE2
// expression compiled case-insensitively; Replacement may use $1, $2 group
// references.
type Rule struct {
	Pattern     string
	Replacement string
}

// DefaultRules is the built-in correction table, applied strictly in
// declaration order.
var DefaultRules = []Rule{
	// Subject–verb agreement, "is" vs "are"
	{`\b(you)\s+(is)\b`, `$1 are`},
	{`\b(we)\s+(is)\b`, `$1 are`},
	{`\b(they)\s+(is)\b`, `$1 are`},
	{`\b(I)\s+(are)\b`, `$1 am`},
	{`\b(he)\s+(are)\b`, `$1 is`},
	{`\b(she)\s+(are)\b`, `$1 is`},
	{`\b(it)\s+(are)\b`, `$1 is`},
	// Inverted order, as in questions ("how is you?")
	{`\b(is)\s+(you|we|they)\b`, `are $2`},
	{`\b(am|are)\s+(he|she|it)\b`, `is $2`},

	// Subject–verb agreement, broader forms
	{`\b(he|she|it)\s+(am|are)\s+`, `$1 is `},
	{`\b(I)\s+(are|is)\s+`, `$1 am `},
	{`\b(we|you|they)\s+(am|is)\s+`, `$1 are `},
	{`\b(I|he|she|it)\s+(go|goes)\s+`, `$1 goes `},
	{`\b(we|you|they)\s+(goes)\s+`, `$1 go `},

	// Past perfect ("had done playing" → "had finished playing")
	{`\bI\s+had\s+done\s+playing\b`, `I had finished playing`},
	{`\bI\s+had\s+done\s+(\w+ing)\b`, `I had finished $1`},
	{`\b(he|she|it)\s+had\s+done\s+(\w+ing)\b`, `$1 had finished $2`},
	{`\b(we|you|they)\s+had\s+done\s+(\w+ing)\b`, `$1 had finished $2`},

	// Present perfect
	{`\bI\s+have\s+done\s+playing\b`, `I have finished playing`},
	{`\bI\s+have\s+done\s+(\w+ing)\b`, `I have finished $1`},

	// Articles: a ↔ an. These run against the evolving buffer and their
	// combined effect on adjacent determiners is order-dependent; keep them
	// exactly here, in exactly this order.
	{`\b(a)\s+([aeiou][a-z]*)\b`, `an $2`},
	{`\b(an)\s+([bcdfghjklmnpqrstvwxyz][a-z]*)\b`, `a $2`},

	// Third-person negative ("she don't" → "she doesn't")
	{`\b(he|she|it)\s+(?:don't|dont)\b`, `$1 doesn't`},

	// Contraction canonicalization
	{`\b(do not|don't)\b`, `don't`},
	{`\b(does not|doesn't)\b`, `doesn't`},
	{`\b(can not|cannot|can't)\b`, `can't`},
	{`\b(will not|won't)\b`, `won't`},
	{`\b(should not|shouldn't)\b`, `shouldn't`},
	{`\b(would not|wouldn't)\b`, `wouldn't`},
	{`\b(could not|couldn't)\b`, `couldn't`},
	{`\b(has not|hasn't)\b`, `hasn't`},
	{`\b(have not|haven't)\b`, `haven't`},
	{`\b(had not|hadn't)\b`, `hadn't`},
	{`\b(is not|isn't)\b`, `isn't`},
	{`\b(are not|aren't)\b`, `aren't`},
	{`\b(was not|wasn't)\b`, `wasn't`},
	{`\b(were not|weren't)\b`, `weren't`},

	// Unpunctuated informal contractions
	{`\b(dont)\b`, `don't`},
	{`\b(doesnt)\b`, `doesn't`},
	{`\b(cant)\b`, `can't`},
	{`\b(wont)\b`, `won't`},
	{`\b(shouldnt)\b`, `shouldn't`},
	{`\b(wouldnt)\b`, `wouldn't`},
	{`\b(couldnt)\b`, `couldn't`},
	{`\b(hasnt)\b`, `hasn't`},
	{`\b(havent)\b`, `haven't`},
	{`\b(hadnt)\b`, `hadn't`},
	{`\b(isnt)\b`, `isn't`},
	{`\b(arent)\b`, `aren't`},
	{`\b(wasnt)\b`, `wasn't`},
	{`\b(werent)\b`, `weren't`},

	// Capitalization of the standalone pronoun and greetings/farewells
	{`\b(i)\b`, `I`},
	{`\b(hello|hi)\b`, `Hello`},
	{`\b(bye|goodbye)\b`, `Goodbye`},

	// Pronoun coordination ("me and him" → "him and I")
	{`\b(me)\s+and\s+(him|her|them)\b`, `$2 and I`},
	{`\b(him|her|them)\s+and\s+(me)\b`, `$1 and I`},
	{`\b(me)\s+and\s+(I)\b`, `$2 and I`},
	{`\b(I)\s+and\s+(me)\b`, `I and I`},

	// Informal-phrase expansion
	{`\b(gonna)\b`, `going to`},
	{`\b(wanna)\b`, `want to`},
	{`\b(gotta)\b`, `got to`},
	{`\b(lemme)\b`, `let me`},
	{`\b(gimme)\b`, `give me`},

	// Double-negative simplification
	{`\b(not)\s+\w+\s+(not)\b`, `$1 $2`},

	// Confusable pairs when they co-occur adjacently
	{`\b(their)\s+(there)\b`, `they're there`},
	{`\b(there)\s+(their)\b`, `there they're`},
	{`\b(your)\s+(you're)\b`, `you're`},
	{`\b(you're)\s+(your)\b`, `your`},
	{`\b(its)\s+(it's)\b`, `it's`},
	{`\b(it's)\s+(its)\b`, `its`},

	// Whitespace and punctuation normalization
	{`\s+([.!?])`, `$1`},
	{`([.!?])\s*([a-z])`, `$1 $2`},
	{`\s+`, ` `},
}

// Cascade holds a compiled, immutable rule list.
type Cascade struct {
	rules []compiledRule
}

type compiledRule struct {
	re          *regexp.Regexp
	replacement string
}

// New compiles the given rules into a Cascade. A malformed pattern is a
// configuration defect and is reported here rather than at apply time.
func New(rules []Rule) (*Cascade, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		re, err := regexp.Compile(`(?i)` + r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid rule pattern %q: %w", r.Pattern, err)
		}
		compiled = append(compiled, compiledRule{re: re, replacement: r.Replacement})
	}
	return &Cascade{rules: compiled}, nil
}

// Default returns a Cascade built from DefaultRules.
func Default() *Cascade {
	c, err := New(DefaultRules)
	if err != nil {
		panic(err)
	}
	return c
}

// Apply runs every rule in order against the evolving buffer, capitalizes
// the first letter if it is lowercase, and returns the trimmed result.
// Empty or whitespace-only input is returned unchanged.
func (c *Cascade) Apply(text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	buf := text
	for _, r := range c.rules {
		buf = r.re.ReplaceAllString(buf, r.replacement)
	}

	buf = capitalizeFirst(buf)
	return strings.TrimSpace(buf)
}

// Len reports the number of rules in the cascade.
func (c *Cascade) Len() int {
	return len(c.rules)
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsLower(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

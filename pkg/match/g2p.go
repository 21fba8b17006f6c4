package match

import "strings"

// ph is a shorthand to build a phone slice.
func ph(phones ...string) []string { return phones }

// g2pRules maps English spelling fragments to approximate phone values from
// the corpus alphabet. Two-letter entries must come before single letters:
// conversion is longest-match-first.
var g2pRules = []struct {
	graph  string
	phones []string
}{
	// Digraphs (2 letters).
	{"ch", ph("C")},
	{"sh", ph("S")},
	{"th", ph("D")},
	{"ph", ph("f")},
	{"wh", ph("w")},
	{"ng", ph("N")},
	{"ck", ph("k")},
	{"qu", ph("k", "w")},
	{"ee", ph("i")},
	{"ea", ph("i")},
	{"oo", ph("u")},
	{"ou", ph("W")},
	{"ow", ph("W")},
	{"ai", ph("A")},
	{"ay", ph("A")},
	{"oi", ph("Y")},
	{"oy", ph("Y")},
	{"au", ph("O")},
	{"aw", ph("O")},
	{"er", ph("$")},
	{"ir", ph("$")},
	{"ur", ph("$")},
	{"or", ph("O", "r")},
	{"ar", ph("a", "r")},

	// Single letters.
	{"a", ph("@")},
	{"b", ph("b")},
	{"c", ph("k")},
	{"d", ph("d")},
	{"e", ph("E")},
	{"f", ph("f")},
	{"g", ph("g")},
	{"h", ph("h")},
	{"i", ph("I")},
	{"j", ph("J")},
	{"k", ph("k")},
	{"l", ph("l")},
	{"m", ph("m")},
	{"n", ph("n")},
	{"o", ph("o")},
	{"p", ph("p")},
	{"q", ph("k")},
	{"r", ph("r")},
	{"s", ph("s")},
	{"t", ph("t")},
	{"u", ph("V")},
	{"v", ph("v")},
	{"w", ph("w")},
	{"x", ph("k", "s")},
	{"y", ph("y")},
	{"z", ph("z")},
}

// Rule lookup maps built once at init; two-letter entries are tried first.
var (
	g2pDouble = map[string][]string{}
	g2pSingle = map[string][]string{}
)

func init() {
	for _, r := range g2pRules {
		switch len(r.graph) {
		case 2:
			g2pDouble[r.graph] = r.phones
		case 1:
			g2pSingle[r.graph] = r.phones
		}
	}
}

// Phonemize approximates the phone sequence of English text using a fixed
// spelling-to-phone rule table, longest match first. It is pure, total over
// printable text, and deterministic: the same input always yields the same
// phones. Characters outside the table (digits, symbols, whitespace) emit
// nothing. The output is an approximation for distance ranking, not a
// linguistically faithful transcription.
func Phonemize(text string) []string {
	lower := strings.ToLower(text)
	var phones []string
	for i := 0; i < len(lower); {
		if i+2 <= len(lower) {
			if ps, ok := g2pDouble[lower[i:i+2]]; ok {
				phones = append(phones, ps...)
				i += 2
				continue
			}
		}
		if ps, ok := g2pSingle[lower[i:i+1]]; ok {
			phones = append(phones, ps...)
		}
		i++
	}
	return phones
}

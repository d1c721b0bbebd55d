// Package intel pulls scam indicators out of raw conversation text.
//
// Extraction is recomputed from the whole conversation on every turn. The
// critical verdict deliberately over-reports: a single entity or a single
// coercion keyword is enough to open a review case, because a missed scam
// costs more than a false positive.
package intel

import (
	"regexp"
	"sort"
	"strings"
)

// Class names an entity class. The values double as wire field names.
type Class string

const (
	UPIIDs        Class = "upiIds"
	PhoneNumbers  Class = "phoneNumbers"
	PhishingLinks Class = "phishingLinks"
	BankAccounts  Class = "bankAccounts"
)

// Classes lists every entity class in reporting order.
var Classes = []Class{UPIIDs, PhoneNumbers, PhishingLinks, BankAccounts}

var (
	upiPattern   = regexp.MustCompile(`[\w.\-]+@\w+`)
	phonePattern = regexp.MustCompile(`\+?\d[\d -]{8,12}\d`)
	linkPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	bankPattern  = regexp.MustCompile(`\b\d{9,18}\b`)
)

// Keywords is the coercion/urgency vocabulary matched as lowercase substrings.
var Keywords = []string{"urgent", "verify", "block", "pay", "otp", "kyc", "arrest", "police", "jail"}

// Result is the outcome of one extraction pass.
type Result struct {
	// Entities holds the distinct literal matches per class, sorted.
	Entities map[Class][]string
	// Keywords holds the distinct matched vocabulary tokens, sorted.
	Keywords []string
	// Critical is true when any entity or keyword was found.
	Critical bool
}

// Extract scans fullText and returns deduplicated entities, keyword hits and
// the critical verdict.
func Extract(fullText string) Result {
	sets := make(map[Class]map[string]struct{}, len(Classes))
	for _, class := range Classes {
		sets[class] = map[string]struct{}{}
	}

	for _, m := range upiPattern.FindAllString(fullText, -1) {
		sets[UPIIDs][m] = struct{}{}
	}
	for _, m := range phonePattern.FindAllString(fullText, -1) {
		sets[PhoneNumbers][m] = struct{}{}
	}
	for _, m := range linkPattern.FindAllString(fullText, -1) {
		sets[PhishingLinks][m] = struct{}{}
	}
	for _, loc := range bankPattern.FindAllStringIndex(fullText, -1) {
		// "+91..." is the national part of an international number.
		if loc[0] > 0 && fullText[loc[0]-1] == '+' {
			continue
		}
		m := fullText[loc[0]:loc[1]]
		if isMobileNumber(m) {
			sets[PhoneNumbers][m] = struct{}{}
			continue
		}
		sets[BankAccounts][m] = struct{}{}
	}

	res := Result{
		Entities: make(map[Class][]string, len(Classes)),
		Keywords: matchKeywords(fullText),
	}
	for _, class := range Classes {
		res.Entities[class] = sortedKeys(sets[class])
	}
	res.Critical = res.EntityCount() > 0 || len(res.Keywords) > 0
	return res
}

// EntityCount returns the number of distinct entities across all classes.
func (r Result) EntityCount() int {
	total := 0
	for _, values := range r.Entities {
		total += len(values)
	}
	return total
}

// Notes renders the keyword summary sent alongside a report.
func (r Result) Notes() string {
	if len(r.Keywords) == 0 {
		return "Conversation normal."
	}
	return "Suspicious activity: " + strings.Join(r.Keywords, ", ")
}

// isMobileNumber reports whether a bare digit run is a 10 digit mobile number
// (leading 6-9) rather than an account number.
func isMobileNumber(s string) bool {
	digits := strings.NewReplacer(" ", "", "-", "").Replace(s)
	if len(digits) != 10 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return digits[0] >= '6' && digits[0] <= '9'
}

func matchKeywords(text string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0, len(Keywords))
	for _, kw := range Keywords {
		if strings.Contains(lower, kw) {
			found = append(found, kw)
		}
	}
	sort.Strings(found)
	return found
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

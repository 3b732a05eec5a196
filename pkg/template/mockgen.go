package template

import (
	"fmt"
	mathrand "math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Default ranges used when a placeholder carries no specifier or a
// malformed one. A malformed [a-b] never fails a render.
const (
	defaultIntMax = 9999
)

// generateMock produces the substitution value for one mock placeholder.
// Unknown kinds render as the literal body so unresolved placeholders stay
// visible in the output.
func generateMock(p Placeholder) string {
	switch p.Kind {
	case "int":
		return mockInt(p.Spec)
	case "string":
		return mockString(p.Spec)
	case "date.now":
		return time.Now().UTC().Format("2006-01-02T15:04:05.000000")
	case "email":
		return mockEmail()
	case "url":
		return mockURL()
	case "name":
		return mockName()
	case "uuid":
		return uuid.New().String()
	case "bool":
		if mathrand.IntN(2) == 0 {
			return "false"
		}
		return "true"
	case "enum":
		return mockEnum(p.Spec)
	case "timestamp":
		return strconv.FormatInt(time.Now().Unix(), 10)
	case "phone":
		return fmt.Sprintf("+1-%03d-%03d-%04d",
			mathrand.IntN(900)+100, mathrand.IntN(900)+100, mathrand.IntN(10000))
	default:
		return mockPrefix + p.Kind + rawSpec(p)
	}
}

// rawSpec reconstructs whatever followed the kind in the original body, so
// an unknown kind echoes with its specifier intact.
func rawSpec(p Placeholder) string {
	return p.Body[len(mockPrefix)+len(p.Kind):]
}

// parseRange parses an "a-b" specifier into two non-negative integers with
// a <= b. Reports ok=false on any malformation.
func parseRange(spec string) (min, max int, ok bool) {
	lo, hi, found := strings.Cut(spec, "-")
	if !found {
		return 0, 0, false
	}
	min, err1 := strconv.Atoi(lo)
	max, err2 := strconv.Atoi(hi)
	if err1 != nil || err2 != nil || min < 0 || min > max {
		return 0, 0, false
	}
	return min, max, true
}

// randBetween returns a random integer in the inclusive range [min, max].
func randBetween(min, max int) int {
	return min + mathrand.IntN(max-min+1)
}

func mockInt(spec string) string {
	min, max := 0, defaultIntMax
	if spec != "" {
		if lo, hi, ok := parseRange(spec); ok {
			min, max = lo, hi
		}
	}
	return strconv.Itoa(randBetween(min, max))
}

const alnumChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func mockString(spec string) string {
	if spec != "" {
		if min, max, ok := parseRange(spec); ok {
			n := randBetween(min, max)
			b := make([]byte, n)
			for i := range b {
				b[i] = alnumChars[mathrand.IntN(len(alnumChars))]
			}
			return string(b)
		}
	}
	return mockText(20)
}

// mockText produces a short phrase of random words capped at maxChars.
func mockText(maxChars int) string {
	var sb strings.Builder
	for sb.Len() < maxChars {
		word := fakerWords[mathrand.IntN(len(fakerWords))]
		if sb.Len() > 0 {
			if sb.Len()+1+len(word) > maxChars {
				break
			}
			sb.WriteByte(' ')
		}
		sb.WriteString(word)
	}
	return sb.String()
}

func mockEmail() string {
	user := fakerFirstNames[mathrand.IntN(len(fakerFirstNames))]
	return strings.ToLower(user) + strconv.Itoa(mathrand.IntN(1000)) + "@" +
		fakerDomains[mathrand.IntN(len(fakerDomains))]
}

func mockURL() string {
	return "https://" + fakerDomains[mathrand.IntN(len(fakerDomains))] + "/" +
		fakerWords[mathrand.IntN(len(fakerWords))]
}

func mockName() string {
	return fakerFirstNames[mathrand.IntN(len(fakerFirstNames))] + " " +
		fakerLastNames[mathrand.IntN(len(fakerLastNames))]
}

func mockEnum(spec string) string {
	if spec == "" {
		return "unknown"
	}
	choices := strings.Split(spec, ",")
	pick := strings.TrimSpace(choices[mathrand.IntN(len(choices))])
	return pick
}

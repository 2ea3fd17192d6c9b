package directory

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

// ErrMalformed reports that no JSON object could be extracted or parsed
// from the cleaned output.
var ErrMalformed = errors.New("malformed directory")

// numberPattern matches the first decimal-or-integer substring, e.g. the
// "4.5" in "4.5 stars out of 5".
var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// Aliases maps a logical field to the ordered list of JSON keys accepted
// for it. The canonical key comes first; the first usable value wins.
type Aliases map[string][]string

func DefaultAliases() Aliases {
	return Aliases{
		"number":      {"number", "phone", "phone_number"},
		"hours":       {"hours", "opening_hours"},
		"stars":       {"stars", "rating"},
		"price_range": {"price_range", "price", "priceRange"},
	}
}

// Parser extracts a business directory from loosely-structured model
// output. It is stateless per call.
type Parser struct {
	aliases Aliases
}

func NewParser() *Parser {
	return &Parser{aliases: DefaultAliases()}
}

// NewParserWithAliases overrides the default alias lists; fields absent
// from the override keep their defaults.
func NewParserWithAliases(aliases Aliases) *Parser {
	merged := DefaultAliases()
	for field, keys := range aliases {
		if len(keys) > 0 {
			merged[field] = keys
		}
	}
	return &Parser{aliases: merged}
}

// Parse recovers one JSON object from raw text and normalizes every
// top-level object-valued entry into a Business. Non-object top-level
// values are skipped. Stars are passed through without range clamping;
// the 0-5 range is a prompt contract.
func (p *Parser) Parse(raw string) (*Directory, error) {
	s := strings.TrimSpace(raw)

	// Strip exactly one matching pair of code fences.
	if strings.HasPrefix(s, "```") && strings.HasSuffix(s, "```") && len(s) >= 6 {
		s = strings.TrimSpace(s[3 : len(s)-3])
	}

	// Recover a JSON object embedded in surrounding prose.
	if !strings.HasPrefix(s, "{") {
		i, j := strings.Index(s, "{"), strings.LastIndex(s, "}")
		if i == -1 || j == -1 || j <= i {
			return nil, fmt.Errorf("%w: no JSON object found in response", ErrMalformed)
		}
		s = s[i : j+1]
	}

	var top map[string]any
	if err := sonic.Unmarshal([]byte(s), &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	dir := &Directory{Businesses: make(map[string]*Business, len(top))}
	for name, value := range top {
		data, ok := value.(map[string]any)
		if !ok {
			continue
		}
		if strings.TrimSpace(name) == "" {
			continue
		}
		dir.Businesses[name] = &Business{
			Name:       name,
			Number:     p.stringField(data, "number"),
			Hours:      p.stringField(data, "hours"),
			Stars:      p.starsField(data),
			PriceRange: p.stringField(data, "price_range"),
		}
	}

	return dir, nil
}

// stringField returns the first alias whose value trims to a non-empty
// string, or nil.
func (p *Parser) stringField(data map[string]any, field string) *string {
	for _, key := range p.aliases[field] {
		value, ok := data[key]
		if !ok || value == nil {
			continue
		}
		t := strings.TrimSpace(asString(value))
		if t == "" {
			continue
		}
		return &t
	}
	return nil
}

// starsField accepts a numeric value directly; text values contribute
// their first numeric substring. The first alias with a usable value wins.
func (p *Parser) starsField(data map[string]any) *float64 {
	for _, key := range p.aliases["stars"] {
		value, ok := data[key]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case float64:
			f := v
			return &f
		case string:
			m := numberPattern.FindString(v)
			if m == "" {
				continue
			}
			f, err := strconv.ParseFloat(m, 64)
			if err != nil {
				continue
			}
			return &f
		}
	}
	return nil
}

func asString(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}

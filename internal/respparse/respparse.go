// Package respparse extracts slot requests from free-form decision source
// replies.
//
// The external collaborator is unreliable by assumption: replies may wrap
// the JSON in prose or code fences, use non-standard quotes, or leave keys
// bare. The parser locates the first balanced brace-delimited substring,
// tries strict JSON first, then applies a normalization pass and retries
// once before giving up.
package respparse

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/Moaila/tdma/types"
)

// preferredKeys are checked first when picking the slot list out of the
// parsed structure; any other key with an integer list is accepted after.
var preferredKeys = []string{"channels", "slots"}

var bareKeyRe = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)(\s*:)`)

// ExtractSlots parses the reply text and returns the requested slot indices.
//
// Range checking and deduplication are the validator's job; this function
// only recovers a usable integer list. Entries that cannot be coerced to an
// integer are dropped.
//
// Parameters:
//   - content: Raw reply text from a decision source
//
// Returns:
//   - []types.Slot: Requested slot indices, in reply order
//   - error: types.ErrNoProposal (wrapped) when no usable structure exists
func ExtractSlots(content string) ([]types.Slot, error) {
	fragment, ok := braceFragment(content)
	if !ok {
		return nil, fmt.Errorf("%w: no brace-delimited structure", types.ErrNoProposal)
	}

	doc, err := parseObject(fragment)
	if err != nil {
		doc, err = parseObject(normalize(fragment))
		if err != nil {
			return nil, fmt.Errorf("%w: %s", types.ErrNoProposal, err)
		}
	}

	slots, ok := pickSlotList(doc)
	if !ok {
		return nil, fmt.Errorf("%w: no integer list value", types.ErrNoProposal)
	}

	return slots, nil
}

// braceFragment returns the first balanced brace-delimited substring.
func braceFragment(content string) (string, bool) {
	start := strings.IndexByte(content, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(content); i++ {
		c := content[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}

			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return content[start : i+1], true
			}
		}
	}

	// Unterminated: fall back to the whole tail so normalization can try.
	return content[start:], true
}

// parseObject decodes a JSON object into a generic map.
func parseObject(fragment string) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(fragment), &doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// normalize repairs the common syntax defects seen in generated replies:
// non-standard quote and punctuation characters, single quotes, bare keys
// and trailing code fences.
func normalize(fragment string) string {
	replacer := strings.NewReplacer(
		"“", `"`, "”", `"`,
		"‘", `"`, "’", `"`,
		"'", `"`,
		"，", ",", "：", ":",
		"```json", "", "```", "",
	)
	out := replacer.Replace(fragment)
	out = bareKeyRe.ReplaceAllString(out, `$1"$2"$3`)

	// Trailing commas before a closing bracket are another frequent defect.
	out = strings.ReplaceAll(out, ",]", "]")
	out = strings.ReplaceAll(out, ",}", "}")

	return out
}

// pickSlotList selects the slot list from the parsed structure: preferred
// keys first, then remaining keys in sorted order for determinism.
func pickSlotList(doc map[string]any) ([]types.Slot, bool) {
	for _, key := range preferredKeys {
		if slots, ok := coerceList(doc[key]); ok {
			return slots, true
		}
	}

	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if slots, ok := coerceList(doc[k]); ok {
			return slots, true
		}
	}

	return nil, false
}

// coerceList converts a decoded value into a slot list. The value must be a
// non-empty array with at least one coercible integer entry.
func coerceList(value any) ([]types.Slot, bool) {
	list, ok := value.([]any)
	if !ok || len(list) == 0 {
		return nil, false
	}

	out := make([]types.Slot, 0, len(list))
	for _, item := range list {
		if s, ok := coerceSlot(item); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, false
	}

	return out, true
}

// coerceSlot accepts numbers and numeric strings, truncating fractions the
// way the historical parser did.
func coerceSlot(item any) (types.Slot, bool) {
	switch v := item.(type) {
	case float64:
		return types.Slot(int(v)), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}

		return types.Slot(int(f)), true
	default:
		return 0, false
	}
}

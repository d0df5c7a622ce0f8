package resource

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"

	"github.com/crmarques/datashelf/faults"
)

var placeholderPattern = regexp.MustCompile(`:([A-Za-z_][A-Za-z0-9_]*)`)

// URITemplate addresses a namespace of resources, e.g.
// "users/:user_id/datasets/". A nil Params means the template takes none.
type URITemplate struct {
	Template string
	Params   map[string]string
}

// NewURITemplate copies params so later changes to the caller's map cannot
// leak into the template.
func NewURITemplate(template string, params map[string]string) URITemplate {
	if params == nil {
		return URITemplate{Template: template}
	}

	copied := make(map[string]string, len(params))
	for key, value := range params {
		copied[key] = value
	}
	return URITemplate{Template: template, Params: copied}
}

// Resolve substitutes ":name" for every name present in Params in a single
// pass, so substituted values are never expanded again. Params without a
// placeholder are ignored and placeholders without a param are left as-is.
func (u URITemplate) Resolve() string {
	return placeholderPattern.ReplaceAllStringFunc(u.Template, func(match string) string {
		if value, ok := u.Params[match[1:]]; ok {
			return value
		}
		return match
	})
}

// Placeholders returns the placeholder names in template order.
func (u URITemplate) Placeholders() []string {
	matches := placeholderPattern.FindAllStringSubmatch(u.Template, -1)
	names := make([]string, 0, len(matches))
	for _, match := range matches {
		names = append(names, match[1])
	}
	return names
}

// Unresolved returns the placeholder names that Resolve would leave behind.
func (u URITemplate) Unresolved() []string {
	missing := make([]string, 0)
	for _, name := range u.Placeholders() {
		if _, ok := u.Params[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// ParamsFromStruct flattens a typed parameter record into the string map a
// URITemplate expects, keyed by the struct's json tags. Nil yields nil.
func ParamsFromStruct(params any) (map[string]string, error) {
	if params == nil {
		return nil, nil
	}

	encoded, err := json.Marshal(params)
	if err != nil {
		return nil, faults.NewTypedError(faults.ValidationError, "failed to encode uri params", err)
	}
	if string(encoded) == "null" {
		return nil, nil
	}

	var raw map[string]any
	if err := json.Unmarshal(encoded, &raw); err != nil {
		return nil, faults.NewTypedError(faults.ValidationError, "uri params must encode to an object", err)
	}

	values := make(map[string]string, len(raw))
	for key, value := range raw {
		text, ok := value.(string)
		if !ok {
			return nil, faults.NewTypedError(
				faults.ValidationError,
				fmt.Sprintf("uri param %q must be a string", key),
				nil,
			)
		}
		values[key] = text
	}
	return values, nil
}

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

package verify

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/oliveagle/jsonpath"
	"github.com/votecard/cardflow/model"
)

var tokenRe = regexp.MustCompile(`{(.*?)}`)

// BuildPayload produces the request body for a verification service. With a
// payload template, every {$.path} token in its string values is resolved
// against the record; without one the body is the plain subset of the
// forwarded fields.
func BuildPayload(spec *model.VerificationSpec, record map[string]any) map[string]any {
	if len(spec.Payload) > 0 {
		output := make(map[string]any)
		resolveParams(record, spec.Payload, output)
		return output
	}
	subset := make(map[string]any)
	for _, name := range spec.Fields {
		if value, ok := record[name]; ok {
			subset[name] = value
		}
	}
	return subset
}

func resolveParams(record map[string]any, params map[string]any, output map[string]any) {
	for k, v := range params {
		switch value := v.(type) {
		case map[string]any:
			out := make(map[string]any)
			output[k] = out
			resolveParams(record, value, out)
		case string:
			output[k] = resolveTokens(record, value)
		default:
			output[k] = v
		}
	}
}

func resolveTokens(record map[string]any, template string) string {
	tokens := tokenRe.FindAllString(template, -1)
	resolved := template
	for _, token := range tokens {
		path := strings.TrimSuffix(strings.TrimPrefix(token, "{"), "}")
		if !strings.HasPrefix(path, "$") {
			continue
		}
		value, err := jsonpath.JsonPathLookup(record, path)
		if err != nil {
			resolved = strings.ReplaceAll(resolved, token, "")
			continue
		}
		resolved = strings.ReplaceAll(resolved, token, stringify(value))
	}
	return resolved
}

func stringify(value any) string {
	switch value.(type) {
	case map[string]any, []any:
		data, err := json.Marshal(value)
		if err == nil {
			return string(data)
		}
	}
	return fmt.Sprintf("%v", value)
}

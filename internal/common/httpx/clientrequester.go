package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var placeholder = regexp.MustCompile(`\{([^}]+)\}`)

// ResolvePath fills the {name} placeholders of template with the matching
// JSON fields of params. Values are path escaped.
func ResolvePath(template string, params any) (string, error) {
	jsonData, err := json.Marshal(params)
	if err != nil {
		return "", err
	}
	var dataMap map[string]any
	if err := json.Unmarshal(jsonData, &dataMap); err != nil {
		return "", err
	}
	replacedPath := placeholder.ReplaceAllStringFunc(template, func(match string) string {
		key := match[1 : len(match)-1]
		if value, ok := dataMap[key]; ok {
			s := fmt.Sprintf("%v", value)
			if s == "" {
				return match
			}
			return url.PathEscape(s)
		}
		return match
	})
	if strings.Contains(replacedPath, "{") || strings.Contains(replacedPath, "//") {
		return "", errors.New("unable to determine request path")
	}
	return replacedPath, nil
}

package utils

import (
	"crypto/sha1"
	"fmt"
	"sort"
	"strings"
)

// SignParams joins params as key=value pairs sorted by key, separated by '&',
// appends secret and returns the hex SHA-1 of the result.
func SignParams(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, params[k]))
	}

	hash := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return fmt.Sprintf("%x", hash)
}

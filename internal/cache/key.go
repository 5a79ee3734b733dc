package cache

import (
	"fmt"
	"net/url"
	"strings"
)

// KeySeparator joins encoded key segments. Query escaping always encodes it,
// so it can only appear between segments.
const KeySeparator = ":"

// Key derives a cache key from an ordered list of arguments. Each argument is
// query-escaped individually before joining, which keeps ("a:b", "c") and
// ("a", "b:c") apart.
func Key(args ...any) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = url.QueryEscape(fmt.Sprint(arg))
	}
	return strings.Join(parts, KeySeparator)
}

// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package xmlrpc

import "time"

// coerceDateTimes walks a parameter tree and converts values that look like
// dates into DateTime, matching older clients that never tagged their
// parameters. It runs only when WithDateTimeCoercion is set.
func coerceDateTimes(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = coerceDateTimes(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = coerceDateTimes(e)
		}
		return out
	case time.Time:
		return DateTime(t)
	case string:
		if dt, ok := parseDateString(t); ok {
			return dt
		}
		return t
	}
	return v
}

// dateLayouts are the shapes the legacy pass recognizes. Deliberately
// narrow: full timestamps only, so ordinary numeric strings pass through.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	iso8601,
}

func parseDateString(s string) (DateTime, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateTime(t), true
		}
	}
	return DateTime{}, false
}

package config

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Configuration keys.
const (
	keyPackageName       = "package_name"
	keyPackageVersion    = "package_version"
	keyRepoMode          = "repo_mode"
	keyRepositoryURL     = "repository_url"
	keyMaxDepth          = "max_depth"
	keyRequestsPerSecond = "requests_per_second"
	keyTimeout           = "timeout"
)

// settings holds the decoded top-level values of a document. Values keep the
// type the format gave them so nothing is converted silently: strings are
// string, integers int/int64/uint64, floats float64. Unknown keys are ignored.
type settings map[string]any

// toConfig checks presence and type of every known key and builds the Config.
// All problems are collected into one *Error.
func (s settings) toConfig(filename string) (*Config, error) {
	var problems []string
	report := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	str := func(key string, required bool) string {
		v, ok := s[key]
		if !ok {
			if required {
				report("%s: required parameter is missing", key)
			}
			return ""
		}
		out, ok := v.(string)
		if !ok {
			report("%s: expected a string, got %s", key, describeValue(v))
		}
		return out
	}

	cfg := &Config{
		PackageName:    str(keyPackageName, true),
		PackageVersion: str(keyPackageVersion, true),
		RepoMode:       str(keyRepoMode, true),
		RepositoryURL:  str(keyRepositoryURL, true),
	}

	if v, ok := s[keyMaxDepth]; !ok {
		report("%s: required parameter is missing", keyMaxDepth)
	} else if depth, ok := asInt(v); ok {
		cfg.MaxDepth = depth
	} else {
		report("%s: expected an integer, got %s", keyMaxDepth, describeValue(v))
	}

	if v, ok := s[keyRequestsPerSecond]; ok {
		if rps, ok := asFloat(v); ok {
			cfg.RequestsPerSecond = rps
		} else {
			report("%s: expected a number, got %s", keyRequestsPerSecond, describeValue(v))
		}
	}

	if raw := str(keyTimeout, false); raw != "" {
		timeout, err := parseTimeout(raw)
		if err != nil {
			report("%v", err)
		}
		cfg.Timeout = timeout
	}

	if err := newError(filename, problems); err != nil {
		return nil, err
	}
	return cfg, nil
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		if n < math.MinInt || n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int, int64, uint64:
		i, ok := asInt(n)
		return float64(i), ok
	default:
		return 0, false
	}
}

// otherValue stands for a value with no Go counterpart in settings, named by
// its type.
type otherValue string

func describeValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("string %q", x)
	case bool:
		return fmt.Sprintf("boolean %t", x)
	case int, int64, uint64:
		return fmt.Sprintf("integer %v", x)
	case float64:
		return "float " + strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return "datetime " + x.Format(time.RFC3339)
	case map[string]any:
		return "table"
	case []any:
		return "array"
	case otherValue:
		return string(x)
	default:
		return fmt.Sprintf("%T", v)
	}
}

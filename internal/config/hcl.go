package config

import (
	"context"
	"math/big"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/depviz/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// HCLLoader decodes HCL documents in native or JSON syntax. Only top-level
// attributes are read; blocks are rejected.
type HCLLoader struct {
	json bool
	env  map[string]string
}

// NewHCLLoader creates a loader for HCL native syntax.
func NewHCLLoader() *HCLLoader {
	return &HCLLoader{env: environ()}
}

// NewHCLJSONLoader creates a loader for HCL JSON syntax.
func NewHCLJSONLoader() *HCLLoader {
	return &HCLLoader{json: true, env: environ()}
}

// WithEnv replaces the variables exposed as `env`.
func (l *HCLLoader) WithEnv(env map[string]string) *HCLLoader {
	l.env = env
	return l
}

// Load implements Loader. Attribute expressions are evaluated and keep their
// cty type, so `package_version = 1.0` is a type error rather than "1".
func (l *HCLLoader) Load(ctx context.Context, filename string, src []byte) (*Config, error) {
	logger := ctxlog.FromContext(ctx)
	parser := hclparse.NewParser()

	var (
		file  *hcl.File
		diags hcl.Diagnostics
	)
	if l.json {
		file, diags = parser.ParseJSON(src, filename)
	} else {
		file, diags = parser.ParseHCL(src, filename)
	}
	if diags.HasErrors() {
		return nil, diagnosticsError(filename, diags)
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diagnosticsError(filename, diags)
	}

	evalCtx := l.evalContext()
	values := make(settings, len(attrs))
	for name, attr := range attrs {
		v, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return nil, diagnosticsError(filename, diags)
		}
		values[name] = fromCty(v)
	}
	logger.Debug("HCL configuration decoded.", "path", filename, "json_syntax", l.json, "attributes", len(values))

	return values.toConfig(filename)
}

// fromCty maps a primitive cty value onto the Go types settings expects.
// Whole numbers become int64, other numbers float64.
func fromCty(v cty.Value) any {
	if v.IsNull() {
		return nil
	}
	if !v.IsKnown() {
		return otherValue("unknown value")
	}

	switch v.Type() {
	case cty.String:
		return v.AsString()
	case cty.Bool:
		return v.True()
	case cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return i
			}
		}
		f, _ := bf.Float64()
		return f
	default:
		return otherValue(v.Type().FriendlyName())
	}
}

// evalContext exposes the environment to expressions as the `env` object.
func (l *HCLLoader) evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(l.env))
	for k, v := range l.env {
		vars[k] = cty.StringVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}

func diagnosticsError(filename string, diags hcl.Diagnostics) error {
	problems := make([]string, 0, len(diags))
	for _, d := range diags {
		if d.Severity != hcl.DiagError {
			continue
		}
		problems = append(problems, d.Error())
	}
	return &Error{Path: filename, Problems: problems}
}

func environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			env[k] = v
		}
	}
	return env
}

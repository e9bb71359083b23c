package hcl

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/modlink/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
	"go.uber.org/zap"
)

// TagName is the struct tag that binds a field to a component argument.
// The tag value is the argument name, optionally followed by ",required".
const TagName = "modlink"

// Converter binds evaluated component arguments to Go structs.
type Converter struct{}

// NewConverter creates a new HCL converter.
func NewConverter() *Converter {
	return &Converter{}
}

// field is one tagged struct field.
type field struct {
	name     string
	required bool
	index    int
}

// DecodeArguments evaluates each argument expression and decodes it into
// the field of target tagged with the argument's name. Arguments without a
// matching field and missing required arguments are errors.
func (c *Converter) DecodeArguments(
	ctx context.Context,
	target any,
	args map[string]hcl.Expression,
	evalCtx *hcl.EvalContext,
) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting argument decoding.", zap.Int("arguments", len(args)))

	structVal := reflect.ValueOf(target)
	if structVal.Kind() != reflect.Ptr || structVal.IsNil() || structVal.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("target must be a non-nil pointer to a struct")
	}
	structVal = structVal.Elem()

	fields := taggedFields(structVal.Type())
	byName := make(map[string]field, len(fields))
	for _, f := range fields {
		byName[f.name] = f
	}

	var unknown []string
	for name := range args {
		if _, ok := byName[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unsupported arguments: %s", strings.Join(unknown, ", "))
	}

	for _, f := range fields {
		expr, provided := args[f.name]
		if !provided {
			if f.required {
				return fmt.Errorf("missing required argument %q", f.name)
			}
			continue
		}

		val, diags := expr.Value(evalCtx)
		if diags.HasErrors() {
			return fmt.Errorf("failed to evaluate argument '%s': %w", f.name, diags)
		}

		fieldVal := structVal.Field(f.index)
		if err := c.decode(ctx, val, fieldVal.Addr().Interface()); err != nil {
			return fmt.Errorf("failed to decode argument '%s': %w", f.name, err)
		}
	}
	logger.Debug("Finished argument decoding successfully.")
	return nil
}

// ToCtyValue converts a native Go value into its corresponding cty.Value.
func (c *Converter) ToCtyValue(v any) (cty.Value, error) {
	if v == nil {
		return cty.NilVal, nil
	}
	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unable to infer cty.Type: %w", err)
	}
	return gocty.ToCtyValue(v, ty)
}

func taggedFields(t reflect.Type) []field {
	var fields []field
	for i := 0; i < t.NumField(); i++ {
		def := t.Field(i)
		if !def.IsExported() {
			continue
		}
		tag := def.Tag.Get(TagName)
		if tag == "" || tag == "-" {
			continue
		}
		parts := strings.Split(tag, ",")
		f := field{name: parts[0], index: i}
		for _, opt := range parts[1:] {
			if opt == "required" {
				f.required = true
			}
		}
		fields = append(fields, f)
	}
	return fields
}

package hcl

import (
	"context"
	"fmt"
	"math/big"
	"reflect"

	"github.com/specialistvlad/modlink/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
	"go.uber.org/zap"
)

var ctyValueType = reflect.TypeOf(cty.Value{})

// decode is a recursive function that populates a Go value from a cty.Value,
// guided by the Go type of the target.
func (c *Converter) decode(ctx context.Context, val cty.Value, goVal any) error {
	goPtr := reflect.ValueOf(goVal).Elem()
	goType := goPtr.Type()
	logger := ctxlog.FromContext(ctx).With(zap.String("go_kind", goType.Kind().String()))

	// A cty.Value field takes the value as is.
	if goType == ctyValueType {
		logger.Debug("Target is cty.Value, performing direct assignment.")
		if val.IsKnown() {
			goPtr.Set(reflect.ValueOf(val))
		}
		return nil
	}

	if !val.IsKnown() || val.IsNull() {
		logger.Debug("Skipping decode for null or unknown value.")
		return nil
	}

	switch goType.Kind() {
	case reflect.Struct:
		if !val.Type().IsObjectType() && !val.Type().IsMapType() {
			return fmt.Errorf("type mismatch: cannot decode cty value of type %s into Go struct %s", val.Type().FriendlyName(), goType.String())
		}
		attrs := val.AsValueMap()
		for _, f := range taggedFields(goType) {
			attrVal, ok := attrs[f.name]
			if !ok {
				if f.required {
					return fmt.Errorf("missing required attribute %q", f.name)
				}
				continue
			}
			if err := c.decode(ctx, attrVal, goPtr.Field(f.index).Addr().Interface()); err != nil {
				return fmt.Errorf("in attribute '%s': %w", f.name, err)
			}
		}
		return nil

	case reflect.Interface:
		nativeVal, err := ctyToNative(val)
		if err != nil {
			return err
		}
		if nativeVal != nil {
			goPtr.Set(reflect.ValueOf(nativeVal))
		}
		return nil

	case reflect.Map:
		if goType.Key().Kind() != reflect.String {
			return fmt.Errorf("unsupported map key type %s", goType.Key().String())
		}
		if !val.Type().IsObjectType() && !val.Type().IsMapType() {
			return fmt.Errorf("type mismatch: cannot decode cty.%s into Go map %s", val.Type().FriendlyName(), goType.String())
		}
		elems := val.AsValueMap()
		newMap := reflect.MakeMapWithSize(goType, len(elems))
		for key, elemVal := range elems {
			newElemPtr := reflect.New(goType.Elem())
			if err := c.decode(ctx, elemVal, newElemPtr.Interface()); err != nil {
				return fmt.Errorf("failed to decode map element '%s': %w", key, err)
			}
			newMap.SetMapIndex(reflect.ValueOf(key).Convert(goType.Key()), newElemPtr.Elem())
		}
		goPtr.Set(newMap)
		return nil

	case reflect.Slice:
		if !val.Type().IsListType() && !val.Type().IsTupleType() && !val.Type().IsSetType() {
			return fmt.Errorf("type mismatch: cannot decode cty.%s into Go slice %s", val.Type().FriendlyName(), goType.String())
		}
		newSlice := reflect.MakeSlice(goType, val.LengthInt(), val.LengthInt())
		it := val.ElementIterator()
		for i := 0; it.Next(); i++ {
			_, elemVal := it.Element()
			if err := c.decode(ctx, elemVal, newSlice.Index(i).Addr().Interface()); err != nil {
				return fmt.Errorf("in slice element %d: %w", i, err)
			}
		}
		goPtr.Set(newSlice)
		return nil

	default:
		want, err := gocty.ImpliedType(goPtr.Interface())
		if err != nil {
			return fmt.Errorf("unsupported Go type %s: %w", goType.String(), err)
		}
		convertedVal, err := convert.Convert(val, want)
		if err != nil {
			return fmt.Errorf("cannot convert value of type %s to %s: %w", val.Type().FriendlyName(), want.FriendlyName(), err)
		}
		return gocty.FromCtyValue(convertedVal, goVal)
	}
}

// ctyToNative converts a known cty.Value into plain Go values: string,
// bool, int64 or float64 for numbers, []any and map[string]any.
func ctyToNative(val cty.Value) (any, error) {
	if !val.IsKnown() || val.IsNull() {
		return nil, nil
	}

	ty := val.Type()
	switch {
	case ty == cty.String:
		return val.AsString(), nil
	case ty == cty.Bool:
		return val.True(), nil
	case ty == cty.Number:
		bf := val.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return i, nil
			}
		}
		f, _ := bf.Float64()
		return f, nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, native)
		}
		return out, nil
	case ty.IsMapType() || ty.IsObjectType():
		elems := val.AsValueMap()
		out := make(map[string]any, len(elems))
		for key, elem := range elems {
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, err
			}
			out[key] = native
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported cty type %s", ty.FriendlyName())
	}
}

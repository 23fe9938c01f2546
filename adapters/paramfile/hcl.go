package paramfile

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"landed-cost/core/types"
)

// parseHCL reads top-level numeric attributes, e.g.
//
//	rate300          = 170
//	volumetricFactor = 167
func parseHCL(src []byte, filename string) (types.ParameterOverrides, error) {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	overrides := make(types.ParameterOverrides, len(attrs))
	for _, name := range names {
		val, diags := attrs[name].Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		if val.IsNull() || !val.IsKnown() || !val.Type().Equals(cty.Number) {
			return nil, fmt.Errorf("%s: attribute %q must be a number", filename, name)
		}

		f, _ := val.AsBigFloat().Float64()
		overrides[name] = f
	}

	return overrides, nil
}

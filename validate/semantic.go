package validate

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/gamedevtech/tao/model"
	"github.com/gamedevtech/tao/resolver"
)

// ValidationError represents a single semantic validation error.
type ValidationError struct {
	Path    string // e.g., "functions[3].parameters[1].type"
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationResult holds all validation errors.
type ValidationResult struct {
	Errors []ValidationError
}

func (r *ValidationResult) addError(path, message string) {
	r.Errors = append(r.Errors, ValidationError{Path: path, Message: message})
}

func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) Error() string {
	if r.IsValid() {
		return ""
	}
	var msgs []string
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

func isValidWrapper(w model.WrapperType) bool {
	for _, v := range model.ValidWrapperTypes {
		if v == w {
			return true
		}
	}
	return false
}

// Validate performs semantic validation on a parsed descriptor set.
// resolvedTypes may be nil to skip type classification checks.
//
// The emitter never calls this; it formats whatever it is given.
func Validate(set *model.DescriptorSet, resolvedTypes resolver.ResolvedTypes) *ValidationResult {
	result := &ValidationResult{}

	seen := make(map[string]bool)
	for i, f := range set.Functions {
		path := fmt.Sprintf("functions[%d]", i)
		if f == nil {
			result.addError(path, "empty function descriptor")
			continue
		}
		if seen[f.Name] {
			result.addError(path+".name", fmt.Sprintf("duplicate function name %q", f.Name))
		}
		seen[f.Name] = true

		validateVersioning(result, path, f)

		if !isValidWrapper(f.Wrapper()) {
			result.addError(path+".wrapper", fmt.Sprintf("unknown wrapper type %q", f.WrapperType))
		}

		for j, p := range f.Parameters {
			paramPath := fmt.Sprintf("%s.parameters[%d]", path, j)
			if p.Name == "" {
				result.addError(paramPath+".name", "parameter name is required")
			}
			if p.Type == "" {
				result.addError(paramPath+".type", "parameter type is required")
			}
			if p.Flow != "" && p.Flow != model.FlowIn && p.Flow != model.FlowOut {
				result.addError(paramPath+".flow", fmt.Sprintf("flow must be %q or %q, got %q", model.FlowIn, model.FlowOut, p.Flow))
			}
			if f.Wrapper() == model.WrapperArrayIn && p.Role() == model.RoleOpaquePointer && p.PreviousType == "" {
				result.addError(paramPath+".previous_type", fmt.Sprintf("array_in function %q needs previous_type on pointer parameter %q", f.Name, p.Name))
			}
		}
	}

	constSeen := make(map[string]bool)
	for i, c := range set.Constants {
		path := fmt.Sprintf("constants[%d]", i)
		if c.Name == "" {
			result.addError(path+".name", "constant name is required")
			continue
		}
		if constSeen[c.Name] {
			result.addError(path+".name", fmt.Sprintf("duplicate constant name %q", c.Name))
		}
		constSeen[c.Name] = true
		if c.Value == "" {
			result.addError(path+".value", fmt.Sprintf("constant %q has no value", c.Name))
		}
	}

	for _, name := range resolvedTypes.Unknown() {
		info := resolvedTypes[name]
		result.addError("types."+name, fmt.Sprintf("type %q has no alias (used by %s)", name, strings.Join(info.UsedBy, ", ")))
	}

	return result
}

// validateVersioning checks that exactly one of version and extension is set
// and that the version is a dotted numeric tag.
func validateVersioning(result *ValidationResult, path string, f *model.Function) {
	switch {
	case f.Extension && f.Version != "":
		result.addError(path+".version", fmt.Sprintf("function %q is an extension and must not carry version %q", f.Name, f.Version))
		return
	case !f.Extension && f.Version == "":
		result.addError(path+".version", fmt.Sprintf("function %q needs a version or extension: true", f.Name))
		return
	case f.Extension:
		return
	}

	if _, err := semver.NewVersion(f.Version); err != nil {
		result.addError(path+".version", fmt.Sprintf("invalid version %q: %v", f.Version, err))
	}
}

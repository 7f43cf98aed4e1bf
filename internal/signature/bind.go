package signature

import "sort"

// ArgumentMap maps every parameter name to its bound value. The positional
// collector holds a []any, the keyword collector a map[string]any.
type ArgumentMap map[string]any

// Bind matches a call's positional and keyword arguments to the declared
// parameters, then fills unbound parameters from their defaults.
//
// It fails with a *BindingError on too many positional arguments, an
// unexpected keyword, a parameter given twice, or a required parameter left
// unbound. Bind has no side effects and does not modify its arguments.
func (s *Signature) Bind(args []any, kwargs map[string]any) (ArgumentMap, error) {
	bound := make(ArgumentMap, len(s.params))
	var extraArgs []any
	extraKwargs := make(map[string]any)

	// Positional arguments.
	pos := 0
	for _, p := range s.params {
		if pos >= len(args) {
			break
		}
		if p.Kind != Positional {
			break
		}
		bound[p.Name] = args[pos]
		pos++
	}
	if pos < len(args) {
		if s.varPos < 0 {
			return nil, &BindingError{Reason: "too many positional arguments"}
		}
		extraArgs = append(extraArgs, args[pos:]...)
	}

	// Keyword arguments, in a stable order so errors are deterministic.
	keys := make([]string, 0, len(kwargs))
	for k := range kwargs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		i, ok := s.index[k]
		if ok && (s.params[i].Kind == Positional || s.params[i].Kind == Keyword) {
			if _, dup := bound[k]; dup {
				return nil, &BindingError{Param: k, Reason: "multiple values for argument"}
			}
			bound[k] = kwargs[k]
			continue
		}
		if s.varKw < 0 {
			return nil, &BindingError{Param: k, Reason: "got an unexpected keyword argument"}
		}
		extraKwargs[k] = kwargs[k]
	}

	// Defaults, collectors, and required-parameter check, in parameter order.
	for _, p := range s.params {
		switch p.Kind {
		case VarPositional:
			if extraArgs == nil {
				extraArgs = []any{}
			}
			bound[p.Name] = extraArgs
		case VarKeyword:
			bound[p.Name] = extraKwargs
		default:
			if _, ok := bound[p.Name]; ok {
				continue
			}
			if !p.HasDefault {
				return nil, &BindingError{Param: p.Name, Reason: "missing a required argument"}
			}
			bound[p.Name] = p.Default
		}
	}
	return bound, nil
}

// Call rebuilds call arguments from a bound map: positional parameters in
// declared order followed by the positional collector's entries; keyword-only
// parameters plus the keyword collector's entries as keywords.
func (s *Signature) Call(m ArgumentMap) (args []any, kwargs map[string]any) {
	args = []any{}
	kwargs = make(map[string]any)
	for _, p := range s.params {
		switch p.Kind {
		case Positional:
			args = append(args, m[p.Name])
		case VarPositional:
			if extra, ok := m[p.Name].([]any); ok {
				args = append(args, extra...)
			}
		case Keyword:
			kwargs[p.Name] = m[p.Name]
		case VarKeyword:
			if extra, ok := m[p.Name].(map[string]any); ok {
				for k, v := range extra {
					kwargs[k] = v
				}
			}
		}
	}
	return args, kwargs
}

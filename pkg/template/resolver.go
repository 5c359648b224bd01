package template

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
)

// resolvePath traverses a dotted/bracketed path (e.g. "outputs.lint.issues[0].message")
// against a root bindings map. Adapted from
// Resolver.traversePath/resolveField/resolveArrayIndex, generalized to a
// single root map instead of a fixed env/input split.
func resolvePath(bindings map[string]any, path string) (any, bool) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return nil, false
	}

	rootName := parts[0]
	var idxSuffix string
	if bracketIdx := strings.Index(rootName, "["); bracketIdx >= 0 {
		idxSuffix = rootName[bracketIdx:]
		rootName = rootName[:bracketIdx]
	}

	current, ok := bindings[rootName]
	if !ok {
		return nil, false
	}

	if idxSuffix != "" {
		var err error
		current, err = resolveArrayIndex(current, idxSuffix)
		if err != nil {
			return nil, false
		}
	}

	return traversePath(current, parts[1:])
}

func traversePath(value any, parts []string) (any, bool) {
	current := value
	for _, part := range parts {
		if strings.Contains(part, "[") && strings.HasSuffix(part, "]") {
			v, err := resolveArrayIndex(current, part)
			if err != nil {
				return nil, false
			}
			current = v
			continue
		}
		current = resolveField(current, part)
		if current == nil {
			return nil, false
		}
	}
	return current, true
}

func resolveField(value any, field string) any {
	if value == nil {
		return nil
	}
	if m, ok := value.(map[string]any); ok {
		return m[field]
	}

	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() == reflect.Struct {
		f := v.FieldByName(strings.ToUpper(field[:1]) + field[1:])
		if f.IsValid() {
			return f.Interface()
		}
	}

	if data, err := json.Marshal(value); err == nil {
		var m map[string]any
		if err := json.Unmarshal(data, &m); err == nil {
			return m[field]
		}
	}
	return nil
}

func resolveArrayIndex(value any, indexExpr string) (any, error) {
	fieldName := ""
	indexPart := indexExpr
	if bracketIdx := strings.Index(indexExpr, "["); bracketIdx > 0 {
		fieldName = indexExpr[:bracketIdx]
		indexPart = indexExpr[bracketIdx:]
	}

	current := value
	if fieldName != "" {
		current = resolveField(current, fieldName)
		if current == nil {
			return nil, ErrInvalidPath
		}
	}

	indices := parseArrayIndices(indexPart)
	if len(indices) == 0 {
		return nil, ErrInvalidPath
	}

	for _, idx := range indices {
		var err error
		current, err = indexInto(current, idx)
		if err != nil {
			return nil, err
		}
	}
	return current, nil
}

func indexInto(value any, index int) (any, error) {
	if value == nil {
		return nil, ErrInvalidPath
	}
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		if index < 0 || index >= v.Len() {
			return nil, ErrArrayOutOfBounds
		}
		return v.Index(index).Interface(), nil
	}
	if data, err := json.Marshal(value); err == nil {
		var arr []any
		if err := json.Unmarshal(data, &arr); err == nil {
			if index < 0 || index >= len(arr) {
				return nil, ErrArrayOutOfBounds
			}
			return arr[index], nil
		}
	}
	return nil, ErrInvalidPath
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	var parts []string
	var current strings.Builder
	inBracket := false
	for _, ch := range path {
		switch ch {
		case '.':
			if !inBracket && current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			} else if inBracket {
				current.WriteRune(ch)
			}
		case '[':
			inBracket = true
			current.WriteRune(ch)
		case ']':
			inBracket = false
			current.WriteRune(ch)
		default:
			current.WriteRune(ch)
		}
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

func parseArrayIndices(expr string) []int {
	var indices []int
	start := 0
	for {
		openIdx := strings.Index(expr[start:], "[")
		if openIdx == -1 {
			break
		}
		openIdx += start
		closeIdx := strings.Index(expr[openIdx:], "]")
		if closeIdx == -1 {
			break
		}
		closeIdx += openIdx
		numStr := expr[openIdx+1 : closeIdx]
		num, err := strconv.Atoi(strings.TrimSpace(numStr))
		if err != nil {
			return nil
		}
		indices = append(indices, num)
		start = closeIdx + 1
	}
	return indices
}

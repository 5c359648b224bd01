// Package builtin provides the built-in provider implementations: ai,
// command, http, webhook, script, memory, log, workflow and noop.
//
// Grounded on builtin executor package
// (backend/pkg/executor/builtin/*.go): one provider per file, each wrapping
// a shared config-access helper.
package builtin

import "fmt"

// base holds the config-accessor helpers every provider embeds.
//
// Grounded on BaseExecutor (backend/pkg/executor/executor.go):
// same GetString/GetInt/GetBool-with-default shape, generalized to also
// accept JSON-decoded float64 where plain int/bool only covers hand-written configs.
type base struct {
	typeName string
}

func newBase(typeName string) base { return base{typeName: typeName} }

func (b base) requireString(config map[string]any, key string) (string, error) {
	v, ok := config[key]
	if !ok {
		return "", fmt.Errorf("%s: required field missing: %s", b.typeName, key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("%s: field %s must be a non-empty string", b.typeName, key)
	}
	return s, nil
}

func (b base) stringDefault(config map[string]any, key, def string) string {
	v, ok := config[key]
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		return def
	}
	return s
}

func (b base) intDefault(config map[string]any, key string, def int) int {
	v, ok := config[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return def
	}
}

func (b base) floatDefault(config map[string]any, key string, def float64) float64 {
	v, ok := config[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return def
	}
}

func (b base) boolDefault(config map[string]any, key string, def bool) bool {
	v, ok := config[key]
	if !ok {
		return def
	}
	flag, ok := v.(bool)
	if !ok {
		return def
	}
	return flag
}

func (b base) stringMap(config map[string]any, key string) map[string]string {
	raw, _ := config[key].(map[string]any)
	if raw == nil {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

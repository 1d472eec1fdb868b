package common

import "fmt"

// RequiredString extracts a required string argument from tool arguments.
func RequiredString(args map[string]interface{}, key string) (string, error) {
	value, ok := args[key].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return value, nil
}

// OptionalString extracts an optional string argument, returning the empty
// string when absent.
func OptionalString(args map[string]interface{}, key string) string {
	value, _ := args[key].(string)
	return value
}

// StringSlice extracts an optional string array argument. Non-string
// entries are rejected.
func StringSlice(args map[string]interface{}, key string) ([]string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}
	entries, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s must be an array of strings", key)
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		s, ok := e.(string)
		if !ok {
			return nil, fmt.Errorf("%s must contain only strings, got %T", key, e)
		}
		out = append(out, s)
	}
	return out, nil
}

// ScopeTargetFromArgs pulls the parent scope id and leaf id out of tool
// arguments for audit logging. Sources name their ids differently, so the
// known keys are probed in order.
func ScopeTargetFromArgs(args map[string]interface{}) (scopeID, leafID string) {
	for _, key := range []string{"server_id", "workspace_id", "account_id"} {
		if v := OptionalString(args, key); v != "" {
			scopeID = v
			break
		}
	}
	for _, key := range []string{"channel_id", "conversation_id", "folder_id"} {
		if v := OptionalString(args, key); v != "" {
			leafID = v
			break
		}
	}
	return scopeID, leafID
}

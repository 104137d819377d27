package realtime

import "strings"

// jsonpPrefix is the callback wrapper the polling endpoint puts around its JSON payload.
const jsonpPrefix = "realtimeCallback("

// UnwrapJSONP strips the realtimeCallback( ... ) wrapper. Bodies without the prefix are
// returned unchanged so plain JSON is tolerated.
func UnwrapJSONP(body string) string {
	if !strings.HasPrefix(body, jsonpPrefix) {
		return body
	}
	out := body[len(jsonpPrefix):]
	if out == "" {
		return out
	}
	// Drop the closing parenthesis.
	return out[:len(out)-1]
}

package tool

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Wire format for model requested tool calls, embedded inline in the
// model's text output:
//
//	<tool>CALL_tool_name {"arg": "value"}</tool>
//
// The arguments object is flat JSON. A reply without the CALL_ marker is
// treated as a final answer, not a call.
const (
	callOpenTag  = "<tool>"
	callCloseTag = "</tool>"
	callPrefix   = "CALL_"
)

var (
	callNameRe = regexp.MustCompile(`CALL_(\w+)`)
	callArgsRe = regexp.MustCompile(`(?s)\{.*?\}`)
)

// Call is a parsed tool invocation request.
type Call struct {
	Name string
	Args map[string]any
}

// FormatError reports model output that carries the call marker but cannot
// be decoded into a well-formed call.
type FormatError struct {
	Input   string
	Message string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed tool call: %s", e.Message)
}

// ContainsCall reports whether the model output requests a tool invocation.
func ContainsCall(text string) bool {
	return strings.Contains(text, callPrefix)
}

// RenderCall renders a call in the wire format. The args map is encoded as
// a JSON object with keys in sorted order.
func RenderCall(name string, args map[string]any) (string, error) {
	if args == nil {
		args = map[string]any{}
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return "", fmt.Errorf("encode tool args: %w", err)
	}
	return callOpenTag + callPrefix + name + " " + string(raw) + callCloseTag, nil
}

// ParseCall extracts the first tool call from model output. The tag pair is
// optional in the input; the CALL_ marker and a JSON object are both
// required, matching what models actually emit. Returns *FormatError when
// either cannot be located or the object does not decode.
func ParseCall(text string) (*Call, error) {
	nameMatch := callNameRe.FindStringSubmatch(text)
	if nameMatch == nil {
		return nil, &FormatError{Input: text, Message: "missing CALL_<name> marker"}
	}
	name := nameMatch[1]

	rawArgs := callArgsRe.FindString(text)
	if rawArgs == "" {
		return nil, &FormatError{Input: text, Message: "missing args JSON object"}
	}
	args := map[string]any{}
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
		return nil, &FormatError{Input: text, Message: fmt.Sprintf("invalid args JSON: %v", err)}
	}

	return &Call{Name: name, Args: args}, nil
}

// StripCallMarkup returns the text after the last closing tool tag, for
// replies where the model mixed call remnants with the final answer. Text
// without the tag is returned trimmed but otherwise unchanged.
func StripCallMarkup(text string) string {
	if i := strings.LastIndex(text, callCloseTag); i >= 0 {
		text = text[i+len(callCloseTag):]
	}
	return strings.TrimSpace(text)
}

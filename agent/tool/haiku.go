package tool

import (
	"fmt"

	contractx "github.com/foliopilot/foliopilot/agent/contract"
)

const ToolHaikuGenerate = "haiku.generate"

type HaikuGenerateOutput struct {
	Haiku contractx.Haiku `json:"haiku"`
}

// executeHaikuTool validates the parallel line/image arrays against the haiku
// contract and passes them through. Violations are tool-level errors, never
// Go errors.
func executeHaikuTool(tool string, args map[string]any) (contractx.ToolResult, error) {
	japanese, err := stringSliceArg(args, "japanese")
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
	}
	english, err := stringSliceArg(args, "english")
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
	}
	imageNames, err := stringSliceArg(args, "image_names")
	if err != nil {
		return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
	}

	haiku := contractx.Haiku{
		Japanese:   japanese,
		English:    english,
		ImageNames: imageNames,
	}
	if err := haiku.Validate(); err != nil {
		return contractx.ToolResult{Tool: tool, Error: err.Error()}, nil
	}

	return contractx.ToolResult{
		Tool:   tool,
		Result: HaikuGenerateOutput{Haiku: haiku},
	}, nil
}

// stringSliceArg accepts both []string and the []any shape produced by JSON
// decoding of tool-call arguments.
func stringSliceArg(args map[string]any, key string) ([]string, error) {
	raw, ok := args[key]
	if !ok {
		return nil, fmt.Errorf("%s is required", key)
	}

	switch v := raw.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s[%d] must be a string", key, i)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s must be an array of strings", key)
	}
}

package editor

import "fmt"

// Tool identifies the active editing tool. Exactly one tool is active
// at a time; transitions happen only through explicit selection.
type Tool int

const (
	ToolMove Tool = iota
	ToolBrush
	ToolBucket
	ToolMask
	ToolEraser
)

// String returns the tool name for logging.
func (t Tool) String() string {
	switch t {
	case ToolMove:
		return "move"
	case ToolBrush:
		return "brush"
	case ToolBucket:
		return "bucket"
	case ToolMask:
		return "mask"
	case ToolEraser:
		return "eraser"
	}
	return fmt.Sprintf("tool(%d)", int(t))
}

// ParseTool maps a tool name to a Tool.
func ParseTool(name string) (Tool, error) {
	switch name {
	case "move":
		return ToolMove, nil
	case "brush":
		return ToolBrush, nil
	case "bucket":
		return ToolBucket, nil
	case "mask":
		return ToolMask, nil
	case "eraser":
		return ToolEraser, nil
	}
	return 0, fmt.Errorf("unknown tool: %q", name)
}

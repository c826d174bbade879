package input

// Tool is the exclusive pointer mode selected by a held key. While any tool
// other than ToolNone is active, pointer-down performs the tool's one-shot
// action instead of starting a draw gesture.
type Tool int

const (
	ToolNone Tool = iota
	ToolEraser
	ToolRigid
	ToolHinge
)

func (t Tool) String() string {
	switch t {
	case ToolEraser:
		return "eraser"
	case ToolRigid:
		return "rigid anchor"
	case ToolHinge:
		return "hinge"
	default:
		return "none"
	}
}

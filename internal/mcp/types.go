package mcp

// WindowInfo describes one live window.
type WindowInfo struct {
	ID      uint64 `json:"id"`
	Tag     string `json:"tag,omitempty"`
	Title   string `json:"title"`
	Primary bool   `json:"primary"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Focused bool   `json:"focused"`
	Window  uint32 `json:"native_window"`
	Display string `json:"display,omitempty"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct{}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowInfo `json:"windows"`
}

// WindowTarget selects a window. ID wins over Tag; neither selects the
// primary window.
type WindowTarget struct {
	ID  uint64 `json:"id,omitempty" jsonschema:"Window ID as reported by list_windows"`
	Tag string `json:"tag,omitempty" jsonschema:"Tag of a secondary window"`
}

// CloseWindowOutput is the output for the close_window tool.
type CloseWindowOutput struct {
	ID     uint64 `json:"id"`
	Closed bool   `json:"closed"`
}

// SetTitleInput is the input for the set_title tool.
type SetTitleInput struct {
	ID    uint64 `json:"id,omitempty" jsonschema:"Window ID as reported by list_windows"`
	Tag   string `json:"tag,omitempty" jsonschema:"Tag of a secondary window"`
	Title string `json:"title" jsonschema:"New window title"`
}

// SetThemeInput is the input for the set_theme tool.
type SetThemeInput struct {
	ID    uint64 `json:"id,omitempty" jsonschema:"Window ID as reported by list_windows"`
	Tag   string `json:"tag,omitempty" jsonschema:"Tag of a secondary window"`
	Theme string `json:"theme" jsonschema:"light or dark"`
}

// ResizeWindowInput is the input for the resize_window tool.
type ResizeWindowInput struct {
	ID     uint64 `json:"id,omitempty" jsonschema:"Window ID as reported by list_windows"`
	Tag    string `json:"tag,omitempty" jsonschema:"Tag of a secondary window"`
	Width  int    `json:"width" jsonschema:"Client area width in pixels"`
	Height int    `json:"height" jsonschema:"Client area height in pixels"`
}

// MoveWindowInput is the input for the move_window tool.
type MoveWindowInput struct {
	ID  uint64 `json:"id,omitempty" jsonschema:"Window ID as reported by list_windows"`
	Tag string `json:"tag,omitempty" jsonschema:"Tag of a secondary window"`
	X   int    `json:"x" jsonschema:"Screen X of the window origin"`
	Y   int    `json:"y" jsonschema:"Screen Y of the window origin"`
}

// InstructionOutput is returned by tools that post an instruction.
type InstructionOutput struct {
	ID     uint64 `json:"id"`
	Posted string `json:"posted"`
}

// InputStateInput is the input for the input_state tool.
type InputStateInput struct {
	Key    string `json:"key,omitempty" jsonschema:"Key name such as a, escape, f1 or numpad0"`
	Button string `json:"button,omitempty" jsonschema:"Mouse button: left, right, middle, x1 or x2"`
}

// InputStateOutput is the output for the input_state tool.
type InputStateOutput struct {
	Key          string `json:"key,omitempty"`
	KeyAction    string `json:"key_action,omitempty"`
	Button       string `json:"button,omitempty"`
	ButtonAction string `json:"button_action,omitempty"`
}

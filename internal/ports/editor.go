package ports

import "os/exec"

// EditorOpener defines the interface for editing text in an external editor
type EditorOpener interface {
	// EditText opens initial in the user's preferred editor and returns the
	// saved content. It uses $EDITOR, then $VISUAL, then common editors.
	EditText(initial string) (string, error)

	// Command returns an exec.Cmd for opening a file in the editor
	// This is useful for integrating with bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)
}

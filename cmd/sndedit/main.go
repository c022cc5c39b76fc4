// This tool is an interactive terminal editor for AIFF and CS229 files.
//
// The sound is drawn as bars with the header information and the menu on
// the right. Frames between the mark and the cursor form the selection,
// which can be copied or cut into a buffer and pasted before or after the
// cursor. Saving writes the file back in its own format.
package main

import (
	"errors"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwbudde/snd"
)

var errUsage = errors.New("usage: sndedit <file>")

func main() {
	log.SetFlags(0)
	log.SetPrefix("sndedit: ")

	err := run(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	if len(args) != 1 {
		return errUsage
	}

	path := args[0]

	sound, err := snd.ReadFile(path)
	if err != nil {
		return err
	}

	p := tea.NewProgram(newModel(path, sound), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := final.(model); ok && m.modified {
		log.Printf("quit without saving changes to %s", path)
	}

	return nil
}

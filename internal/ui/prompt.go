package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/gdt-tools/gdtpack/pkg/models"
)

// Prompter obtains the user's consent before an update is applied. Decline
// is the single cancellation point of an update attempt: nothing is
// downloaded and nothing changes on disk.
type Prompter interface {
	Confirm(current, remote string) bool
}

// TerminalPrompter asks a yes/no question on the controlling terminal.
type TerminalPrompter struct {
	out     io.Writer
	scanner *bufio.Scanner
}

// NewTerminalPrompter creates a prompter bound to stdin/stdout.
func NewTerminalPrompter() *TerminalPrompter {
	return NewTerminalPrompterWithIO(os.Stdin, os.Stdout)
}

// NewTerminalPrompterWithIO creates a prompter with custom streams for testing.
func NewTerminalPrompterWithIO(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{
		out:     out,
		scanner: bufio.NewScanner(in),
	}
}

// Confirm prints the version pair and reads a y/N answer. Anything but an
// explicit yes, including EOF, declines.
func (p *TerminalPrompter) Confirm(current, remote string) bool {
	fmt.Fprintf(p.out, "A new version of %s is available: %s (current %s).\n", models.AppName, remote, current)
	fmt.Fprint(p.out, "Download and install it now? [y/N]: ")

	if !p.scanner.Scan() {
		fmt.Fprintln(p.out)
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(p.scanner.Text()))
	return answer == "y" || answer == "yes"
}

// StaticPrompter answers every confirmation the same way. It backs the
// --yes flag and non-interactive sessions, where the configured auto-apply
// setting stands in for the user.
type StaticPrompter struct {
	Answer bool
}

// Confirm implements Prompter.
func (p StaticPrompter) Confirm(current, remote string) bool {
	return p.Answer
}

// IsTerminal reports whether stdin is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"moneyapp/internal/core"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadPIN prompts on w and reads the PIN from the terminal without echo.
func ReadPIN(w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, "Enter PIN: "); err != nil {
		return "", err
	}
	pin, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read PIN: %w", err)
	}
	return strings.TrimSpace(string(pin)), nil
}

// Confirm returns a Confirmer that asks on w and accepts y or yes from reader.
// Anything else, including EOF, declines.
func Confirm(reader *bufio.Reader, w io.Writer) core.Confirmer {
	return core.ConfirmFunc(func(question string) bool {
		answer, err := GetSimpleText(reader, question+" [y/N]", w)
		if err != nil {
			return false
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true
		default:
			return false
		}
	})
}

// AssumeYes confirms everything; it backs the -yes flag.
var AssumeYes core.Confirmer = core.ConfirmFunc(func(string) bool { return true })

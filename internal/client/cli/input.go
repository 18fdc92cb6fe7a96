package cli

import (
	"errors"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// stdinIsTerminal reports whether hidden input can be read from the terminal.
// Tests replace it so secrets come from the App's reader.
var stdinIsTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

// readLine prints prompt and reads one trimmed line. A final line without a
// newline is accepted.
func (a *App) readLine(prompt string) (string, error) {
	a.printf("%s\n> ", prompt)
	line, err := a.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readMultiline reads lines until an empty one and joins them.
func (a *App) readMultiline(prompt string) (string, error) {
	a.printf("%s\n(press Enter on an empty line to finish)\n", prompt)

	var lines []string
	for {
		line, err := a.in.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line != "" {
			lines = append(lines, line)
		}
		if line == "" || err != nil {
			break
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// readSecret reads a value without echo when stdin is a terminal.
func (a *App) readSecret(prompt string) (string, error) {
	if !stdinIsTerminal() {
		return a.readLine(prompt)
	}
	a.printf("%s: ", prompt)
	b, err := readPassword(int(os.Stdin.Fd()))
	a.println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// confirm asks a yes/no question; anything but y or yes is a no.
func (a *App) confirm(prompt string) bool {
	answer, err := a.readLine(prompt + " [y/N]")
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// parseID parses a positive numeric ID.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, notice("Invalid ID: " + s)
	}
	return id, nil
}

// extractCode accepts either the bare authorization code or the whole
// redirect URL the provider sent the browser to.
func extractCode(input string) string {
	input = strings.TrimSpace(input)
	if u, err := url.Parse(input); err == nil && u.Scheme != "" {
		if code := u.Query().Get("code"); code != "" {
			return code
		}
	}
	return input
}

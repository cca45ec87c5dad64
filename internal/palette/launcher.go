package palette

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"os/exec"
	"strconv"
	"strings"
)

type launcher struct {
	command string
	// indexOutput launchers print the selected row index instead of its text.
	indexOutput bool
	markup      bool
	rowStates   bool
}

func newLauncher(command string) *launcher {
	switch command {
	case "rofi":
		return &launcher{command: command, indexOutput: true, markup: true, rowStates: true}
	case "fuzzel":
		return &launcher{command: command, indexOutput: true}
	case "wofi":
		return &launcher{command: command, markup: true}
	default:
		return &launcher{command: command}
	}
}

func (l *launcher) Show(prompt string, items []Item, message string) (Item, error) {
	if len(items) == 0 {
		return Item{}, fmt.Errorf("palette: no items to show")
	}

	input, active := l.formatInput(items)
	cmd := exec.Command(l.command, l.buildArgs(prompt, message, active)...)
	cmd.Stdin = strings.NewReader(input)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	selection := strings.TrimSpace(string(out))
	if err != nil {
		if selection == "" && isCancelExit(err) {
			return Item{}, ErrCancelled
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return Item{}, fmt.Errorf("%s failed: %s", l.command, msg)
		}
		return Item{}, fmt.Errorf("%s failed: %w", l.command, err)
	}
	if selection == "" {
		return Item{}, ErrCancelled
	}
	return l.parseSelection(selection, items)
}

func (l *launcher) buildArgs(prompt, message string, active []int) []string {
	var args []string
	switch l.command {
	case "rofi":
		args = []string{"-dmenu", "-i", "-no-custom", "-format", "i", "-markup-rows"}
		if prompt != "" {
			args = append(args, "-p", prompt)
		}
		if len(active) > 0 {
			args = append(args, "-a", formatIndices(active), "-selected-row", strconv.Itoa(active[0]))
		}
		if message != "" {
			args = append(args, "-mesg", message)
		}
	case "fuzzel":
		args = []string{"--dmenu", "--index"}
		if prompt != "" {
			args = append(args, "--prompt", prompt)
		}
	case "wofi":
		args = []string{"--dmenu", "--allow-markup"}
		if prompt != "" {
			args = append(args, "--prompt", prompt)
		}
	default:
		args = []string{"-i"}
		if prompt != "" {
			args = append(args, "-p", prompt)
		}
	}
	return args
}

// formatInput renders one line per item and returns the rows to mark active.
func (l *launcher) formatInput(items []Item) (string, []int) {
	lines := make([]string, 0, len(items))
	var active []int
	for i, item := range items {
		lines = append(lines, l.formatItem(item))
		if item.IsActive && !item.IsHeader {
			active = append(active, i)
		}
	}
	return strings.Join(lines, "\n"), active
}

func (l *launcher) formatItem(item Item) string {
	display := sanitizeLabel(item.Label)
	if l.markup {
		display = html.EscapeString(display)
		if item.IsHeader {
			display = "<b>" + display + "</b>"
		}
	}
	// Without row states the active entry is marked in the text itself.
	if item.IsActive && !l.rowStates {
		display = "* " + display
	}
	if l.command != "rofi" {
		return display
	}

	// rofi row properties: one NUL, then key\x1fvalue pairs.
	var attrs []string
	if item.IsHeader {
		attrs = append(attrs, "nonselectable", "true")
	}
	if item.Icon != "" {
		attrs = append(attrs, "icon", sanitizeRofiField(item.Icon))
	}
	if len(attrs) == 0 {
		return display
	}
	return display + "\x00" + strings.Join(attrs, "\x1f")
}

func (l *launcher) parseSelection(selection string, items []Item) (Item, error) {
	if l.indexOutput {
		if idx, err := strconv.Atoi(selection); err == nil {
			if idx < 0 || idx >= len(items) {
				return Item{}, fmt.Errorf("palette: index %d out of range", idx)
			}
			return items[idx], nil
		}
	}
	for _, item := range items {
		if l.formatItem(item) == selection || sanitizeLabel(item.Label) == selection {
			return item, nil
		}
	}
	return Item{}, fmt.Errorf("palette: unknown selection %q", selection)
}

func sanitizeLabel(label string) string {
	label = strings.ReplaceAll(label, "\r", " ")
	label = strings.ReplaceAll(label, "\n", " ")
	return strings.TrimSpace(label)
}

func sanitizeRofiField(value string) string {
	value = strings.ReplaceAll(value, "\x00", " ")
	value = strings.ReplaceAll(value, "\x1f", " ")
	return sanitizeLabel(value)
}

func formatIndices(indices []int) string {
	parts := make([]string, 0, len(indices))
	for _, i := range indices {
		parts = append(parts, strconv.Itoa(i))
	}
	return strings.Join(parts, ",")
}

func isCancelExit(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	// 1 for no selection, 130 for Ctrl+C.
	switch exitErr.ExitCode() {
	case 1, 130:
		return true
	default:
		return false
	}
}

package config

import (
	"fmt"
	"os"
	"strings"
)

// SetAutoStart rewrites the auto_start line of the config at path, leaving
// every other line untouched. The line is appended when missing.
func SetAutoStart(path string, enabled bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	out := rewriteAutoStart(string(data), enabled)
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func rewriteAutoStart(content string, enabled bool) string {
	line := fmt.Sprintf("auto_start: %t", enabled)

	lines := strings.Split(content, "\n")
	for i, l := range lines {
		if strings.HasPrefix(l, "auto_start:") {
			lines[i] = line
			return strings.Join(lines, "\n")
		}
	}

	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + line + "\n"
}

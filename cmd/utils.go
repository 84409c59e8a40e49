package cmd

import (
	"os"
	"os/exec"
)

// GetPreferredEditor returns the editor command from env, or a default
func GetPreferredEditor() string {
	if env := os.Getenv("VISUAL"); env != "" {
		return env
	}
	if env := os.Getenv("EDITOR"); env != "" {
		return env
	}
	return "vi"
}

// OpenEditor runs the preferred editor on path attached to the terminal
func OpenEditor(path string) error {
	c := exec.Command(GetPreferredEditor(), path)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

// truncate truncates a string to the specified length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

package main

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
)

const (
	colorGreen  = "\033[0;32m"
	colorRed    = "\033[0;31m"
	colorYellow = "\033[1;33m"
	colorReset  = "\033[0m"
)

func PrintSuccess(format string, a ...interface{}) {
	fmt.Printf(colorGreen+"✓ "+format+colorReset+"\n", a...)
}

func PrintWarning(format string, a ...interface{}) {
	fmt.Printf(colorYellow+"⚠ "+format+colorReset+"\n", a...)
}

func PrintError(format string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, colorRed+"✗ "+format+colorReset+"\n", a...)
}

func PrintHeader(title string) {
	fmt.Printf("\n"+colorYellow+"=== %s ==="+colorReset+"\n", title)
}

// migrationNamePattern matches goose file stems such as add_post_reports
var migrationNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]{0,62}$`)

func validateMigrationName(name string) error {
	if !migrationNamePattern.MatchString(name) {
		return fmt.Errorf("invalid migration name %q: use lowercase letters, digits and underscores", name)
	}
	return nil
}

// checkHostile rejects arguments carrying shell metacharacters. Connection
// strings with '&' and '?' pass.
func checkHostile(inputs ...string) error {
	for _, s := range inputs {
		if strings.ContainsAny(s, "\n\r\x00") {
			return fmt.Errorf("hostile input detected: control character in %q", s)
		}
		for _, p := range []string{"|", "`", "$(", "&&", "||", ">", "<", ";"} {
			if strings.Contains(s, p) {
				return fmt.Errorf("hostile input detected: pattern %q in %q", p, s)
			}
		}
	}
	return nil
}

// runCommandVerbose runs a command with output piped to the terminal
func runCommandVerbose(name string, args ...string) error {
	if err := checkHostile(append([]string{name}, args...)...); err != nil {
		return err
	}
	// #nosec G204 - arguments are screened by checkHostile
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

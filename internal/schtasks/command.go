package schtasks

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/vorpalvorpal/schtask/internal/pkg/logs"
)

// interpreterExtensions maps known interpreter base names (lowercase, without
// .exe) to the script extensions they usually run. Used only for advisory
// warnings, never to block execution.
var interpreterExtensions = map[string][]string{
	"rscript":    {".r"},
	"python":     {".py", ".pyw"},
	"python3":    {".py", ".pyw"},
	"pythonw":    {".py", ".pyw"},
	"node":       {".js", ".mjs", ".cjs"},
	"ruby":       {".rb"},
	"perl":       {".pl"},
	"pwsh":       {".ps1"},
	"powershell": {".ps1"},
	"cscript":    {".vbs", ".js"},
	"wscript":    {".vbs", ".js"},
}

var windowsDrivePattern = regexp.MustCompile(`^[A-Za-z]:[/\\]`)

// BuildTaskCommand composes the literal command line the scheduler stores
// and later hands to cmd.exe: change to execDir, then run the target through
// the interpreter (or directly when script is empty).
func BuildTaskCommand(taskRun, script, execDir string) (string, error) {
	taskRun = strings.TrimSpace(taskRun)
	if taskRun == "" {
		return "", newValidationError("task command", "target to run cannot be empty")
	}

	script = strings.TrimSpace(script)
	if script != "" {
		if warn := extensionMismatch(script, taskRun); warn != "" {
			logs.Warn("%s", warn)
		}
	}

	dir, err := resolveExecDir(execDir)
	if err != nil {
		return "", err
	}

	dir = toNativeSeparators(dir)
	run := toNativeSeparators(taskRun)
	if script != "" {
		return fmt.Sprintf(`cmd /c "cd /d "%s" && %s "%s""`, dir, toNativeSeparators(script), run), nil
	}
	return fmt.Sprintf(`cmd /c "cd /d "%s" && "%s""`, dir, run), nil
}

func resolveExecDir(execDir string) (string, error) {
	execDir = strings.TrimSpace(execDir)
	if execDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		return wd, nil
	}
	if windowsDrivePattern.MatchString(execDir) || strings.HasPrefix(execDir, `\\`) || filepath.IsAbs(execDir) {
		return execDir, nil
	}
	abs, err := filepath.Abs(execDir)
	if err != nil {
		return "", fmt.Errorf("resolve execution directory %q: %w", execDir, err)
	}
	return abs, nil
}

// toNativeSeparators rewrites forward slashes to backslashes. The composed
// command always runs under cmd.exe, whatever platform built it.
func toNativeSeparators(p string) string {
	return strings.ReplaceAll(p, "/", `\`)
}

// extensionMismatch returns a warning when script names a known interpreter
// and taskRun's extension is not one the interpreter usually runs. Unknown
// interpreters never warn.
func extensionMismatch(script, taskRun string) string {
	base := strings.ToLower(path.Base(strings.ReplaceAll(script, `\`, "/")))
	base = strings.TrimSuffix(base, ".exe")
	expected, ok := interpreterExtensions[base]
	if !ok {
		return ""
	}

	ext := strings.ToLower(path.Ext(strings.ReplaceAll(taskRun, `\`, "/")))
	for _, one := range expected {
		if ext == one {
			return ""
		}
	}
	return fmt.Sprintf("interpreter %q usually runs %s scripts, but the target is %q",
		base, strings.Join(expected, "/"), taskRun)
}

package hooks

import (
	"bufio"
	"bytes"
	"path/filepath"
	"strings"
)

// shellInterpreters run in-process
var shellInterpreters = map[string]bool{
	"sh":   true,
	"bash": true,
	"dash": true,
	"ksh":  true,
	"mksh": true,
}

// Interpreter returns the interpreter named by a script's shebang line, or
// "" when there is none. "/usr/bin/env bash" yields "bash".
func Interpreter(content []byte) string {
	line, _, _ := bufio.NewReader(bytes.NewReader(content)).ReadLine()
	text := string(line)
	if !strings.HasPrefix(text, "#!") {
		return ""
	}

	fields := strings.Fields(strings.TrimPrefix(text, "#!"))
	if len(fields) == 0 {
		return ""
	}

	name := filepath.Base(fields[0])
	if name == "env" {
		for _, arg := range fields[1:] {
			if strings.HasPrefix(arg, "-") || strings.Contains(arg, "=") {
				continue
			}
			return filepath.Base(arg)
		}
		return ""
	}
	return name
}

// InProcess reports whether a hook with this content runs in the embedded
// shell interpreter
func InProcess(content []byte) bool {
	interpreter := Interpreter(content)
	return interpreter == "" || shellInterpreters[interpreter]
}

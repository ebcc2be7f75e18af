package core

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
	"text/template"
)

var expandFuncs = template.FuncMap{
	"env": os.Getenv,
	"exec": func(line string) (string, error) {
		if strings.Contains(line, " | ") {
			out, err := exec.Command("sh", "-c", line).Output()
			return strings.TrimSpace(string(out)), err
		}

		fields := strings.Fields(line)
		if len(fields) < 1 {
			return "", errors.New("no command provided")
		}

		out, err := exec.Command(fields[0], fields[1:]...).Output()
		return strings.TrimSpace(string(out)), err
	},
	// default returns fallback when value is empty: {{ env "PORT" | default "5432" }}
	"default": func(fallback, value string) string {
		if value == "" {
			return fallback
		}
		return value
	},
}

// expand executes the value as a template with env, exec and default
// functions available.
func expand(value string) (string, error) {
	if !strings.Contains(value, "{{") {
		return value, nil
	}

	tmpl, err := template.New("expand_variables").
		Funcs(expandFuncs).
		Option("missingkey=error").
		Parse(value)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	err = tmpl.Execute(&out, nil)
	if err != nil {
		return "", err
	}

	return out.String(), nil
}

// expandOrDefault silently suppresses errors.
func expandOrDefault(value string) string {
	ex, err := expand(value)
	if err != nil {
		return value
	}
	return ex
}

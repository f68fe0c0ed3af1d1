package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/opencam-utils/shotmeta/internal/srt"
)

// Options represents user-provided parameters for the image batch workflow.
type Options struct {
	InputPath    string
	Recursive    bool
	CSVPath      string
	GPXPath      string
	LogLevel     string
	LogFile      string
	ShowProgress bool
	PrintSummary bool
}

// Validate performs basic validation and assigns defaults where needed.
func (o *Options) Validate() error {
	o.InputPath = strings.TrimSpace(o.InputPath)
	o.CSVPath = strings.TrimSpace(o.CSVPath)
	o.GPXPath = strings.TrimSpace(o.GPXPath)
	o.LogLevel = strings.TrimSpace(o.LogLevel)
	o.LogFile = strings.TrimSpace(o.LogFile)

	if o.InputPath == "" {
		return fmt.Errorf("input path is required")
	}
	if o.LogLevel == "" {
		o.LogLevel = "info"
	}
	if o.LogFile == "" {
		defaultPath, err := defaultLogPath()
		if err != nil {
			return err
		}
		o.LogFile = defaultPath
	}
	return nil
}

// SrtOptions represents user-provided parameters for the SRT workflow.
type SrtOptions struct {
	SrtPath      string
	CSVPath      string
	GPXPath      string
	Policy       srt.MalformedPolicy
	LogLevel     string
	LogFile      string
	PrintSummary bool
}

// Validate performs basic validation and assigns defaults where needed.
func (o *SrtOptions) Validate() error {
	o.SrtPath = strings.TrimSpace(o.SrtPath)
	o.CSVPath = strings.TrimSpace(o.CSVPath)
	o.GPXPath = strings.TrimSpace(o.GPXPath)
	o.LogLevel = strings.TrimSpace(o.LogLevel)
	o.LogFile = strings.TrimSpace(o.LogFile)

	if o.SrtPath == "" {
		return fmt.Errorf("srt path is required")
	}
	o.Policy = srt.MalformedPolicy(strings.ToLower(string(o.Policy)))
	switch o.Policy {
	case "":
		o.Policy = srt.PolicyStrict
	case srt.PolicyStrict, srt.PolicySkip:
	default:
		return fmt.Errorf("invalid malformed-block policy %q (expected strict or skip)", o.Policy)
	}
	if o.LogLevel == "" {
		o.LogLevel = "info"
	}
	if o.LogFile == "" {
		defaultPath, err := defaultLogPath()
		if err != nil {
			return err
		}
		o.LogFile = defaultPath
	}
	return nil
}

func defaultLogPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable path: %w", err)
	}
	dir := filepath.Dir(exe)
	// When running via `go run`, executable resides in temp; prefer current working dir then.
	if strings.HasPrefix(dir, os.TempDir()) {
		cwd, err := os.Getwd()
		if err == nil {
			dir = cwd
		}
	}
	return filepath.Join(dir, "shotmeta.log"), nil
}

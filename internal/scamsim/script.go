// Package scamsim replays scripted scam conversations against the decoy,
// accumulating history the way a live counterpart would.
package scamsim

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Script is an ordered list of counterpart lines.
type Script struct {
	Name  string   `yaml:"name"`
	Lines []string `yaml:"lines"`
}

// DefaultScript is a bank-impersonation scam escalating to police threats.
var DefaultScript = Script{
	Name: "sbi-kyc",
	Lines: []string{
		"Hello, I am calling from the SBI Head Office in Mumbai.",
		"Sir, your KYC documents are expired. Your account will be blocked in 10 minutes.",
		"To stop the blocking, I have sent a 6-digit OTP to your mobile. Please read it to me.",
		"Sir, this is very urgent. If you do not share the OTP, the police will come to your house.",
		"Okay, I am sending the police now. This is your last chance.",
	},
}

// LoadScript reads a YAML script from path.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("scamsim: read script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript decodes a YAML script and drops blank lines.
func ParseScript(data []byte) (Script, error) {
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return Script{}, fmt.Errorf("scamsim: parse script: %w", err)
	}
	lines := script.Lines[:0]
	for _, line := range script.Lines {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	script.Lines = lines
	if len(script.Lines) == 0 {
		return Script{}, errors.New("scamsim: script has no lines")
	}
	return script, nil
}

package shell

import (
	"strings"
	"testing"
)

func TestGenerateNushellIntegration(t *testing.T) {
	cfg := DefaultIntegrationConfig()
	output := GenerateNushellIntegration(cfg)

	for _, want := range []string{
		"def rk-status",
		"def rk-tui",
		"def rk-once",
		"from json",
		`extern "rkmon"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("nushell integration should contain %q", want)
		}
	}
}

func TestGenerateNushellIntegration_KeybindingAsComment(t *testing.T) {
	output := GenerateNushellIntegration(DefaultIntegrationConfig())

	// Nushell cannot bind keys from sourced scripts, so the binding must
	// be commented out.
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, "executehostcommand") && !strings.HasPrefix(strings.TrimSpace(line), "#") {
			t.Error("keybinding block must be emitted as comments")
		}
	}
}

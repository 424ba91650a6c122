package shell

import (
	"strings"
	"testing"
)

func TestGenerateBashIntegration(t *testing.T) {
	cfg := DefaultIntegrationConfig()
	output := GenerateBashIntegration(cfg)

	for _, want := range []string{
		"bind -x",
		"rk-status",
		"rk-tui",
		"rk-once",
		"rk-daemon-start",
		"rk-daemon-stop",
		"rkmon -tui",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("bash integration should contain %q", want)
		}
	}
}

func TestGenerateBashIntegration_CustomBinary(t *testing.T) {
	cfg := DefaultIntegrationConfig()
	cfg.BinaryPath = "/opt/rkmon/bin/rkmon"

	output := GenerateBashIntegration(cfg)
	if !strings.Contains(output, "/opt/rkmon/bin/rkmon -tui") {
		t.Error("expected custom binary path in generated script")
	}
}

func TestGenerateBashIntegration_PromptSegment(t *testing.T) {
	cfg := DefaultIntegrationConfig()

	without := GenerateBashIntegration(cfg)
	if strings.Contains(without, "PROMPT_COMMAND") {
		t.Error("expected no prompt hook without PromptSegment")
	}

	cfg.PromptSegment = true
	with := GenerateBashIntegration(cfg)
	if !strings.Contains(with, "PROMPT_COMMAND") {
		t.Error("expected PROMPT_COMMAND hook with PromptSegment")
	}
}

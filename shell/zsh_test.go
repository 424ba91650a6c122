package shell

import (
	"strings"
	"testing"
)

func TestGenerateZshIntegration(t *testing.T) {
	cfg := DefaultIntegrationConfig()
	output := GenerateZshIntegration(cfg)

	for _, want := range []string{
		"bindkey '^T'",
		"zle -N",
		"rk-status",
		"rk-once",
		"compdef",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("zsh integration should contain %q", want)
		}
	}
}

func TestGenerateZshIntegration_PromptSegment(t *testing.T) {
	cfg := DefaultIntegrationConfig()
	cfg.PromptSegment = true

	output := GenerateZshIntegration(cfg)
	if !strings.Contains(output, "precmd_functions+=(_rkmon_prompt)") {
		t.Error("expected precmd hook with PromptSegment")
	}
}

package shell

import (
	"strings"
	"testing"
)

func TestShellType_String(t *testing.T) {
	tests := []struct {
		shell ShellType
		want  string
	}{
		{Bash, "bash"},
		{Zsh, "zsh"},
		{Fish, "fish"},
		{Nushell, "nushell"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := tt.shell.String()
			if got != tt.want {
				t.Errorf("ShellType(%d).String() = %q, want %q", tt.shell, got, tt.want)
			}
		})
	}
}

func TestShellType_String_Unknown(t *testing.T) {
	got := ShellType(99).String()
	if !strings.Contains(got, "unknown") {
		t.Errorf("expected unknown shell string, got %q", got)
	}
}

func TestDefaultIntegrationConfig(t *testing.T) {
	cfg := DefaultIntegrationConfig()

	if cfg.BinaryPath != "rkmon" {
		t.Errorf("BinaryPath = %q, want %q", cfg.BinaryPath, "rkmon")
	}
	if cfg.ConfigPath != "~/.config/rkmon/config.yaml" {
		t.Errorf("ConfigPath = %q, want %q", cfg.ConfigPath, "~/.config/rkmon/config.yaml")
	}
	if cfg.TUIKeybinding != `\C-t` {
		t.Errorf("TUIKeybinding = %q, want %q", cfg.TUIKeybinding, `\C-t`)
	}
	if cfg.PromptSegment {
		t.Error("PromptSegment should default to false")
	}
}

func TestGenerateIntegration_DispatchesPerShell(t *testing.T) {
	cfg := DefaultIntegrationConfig()

	tests := []struct {
		shell ShellType
		want  string
	}{
		{Bash, "bind -x"},
		{Zsh, "bindkey"},
		{Fish, "function rk-status"},
		{Nushell, "def rk-status"},
	}

	for _, tt := range tests {
		t.Run(tt.shell.String(), func(t *testing.T) {
			output := GenerateIntegration(tt.shell, cfg)
			if !strings.Contains(output, tt.want) {
				t.Errorf("%s integration should contain %q", tt.shell, tt.want)
			}
		})
	}
}

func TestGenerateIntegration_Unknown(t *testing.T) {
	output := GenerateIntegration(ShellType(99), DefaultIntegrationConfig())
	if !strings.Contains(output, "not yet implemented") {
		t.Errorf("expected placeholder comment, got %q", output)
	}
}

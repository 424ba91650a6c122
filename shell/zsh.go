package shell

import "fmt"

// GenerateZshIntegration returns a Zsh script snippet that provides rkmon
// shell integration. Source the output in ~/.zshrc.
func GenerateZshIntegration(cfg IntegrationConfig) string {
	script := fmt.Sprintf(`# rkmon shell integration for Zsh
# Source this in your ~/.zshrc

# Launch the rkmon dashboard with Ctrl+T
_rkmon_tui() {
    BUFFER=""
    zle reset-prompt
    %[1]s -tui
    zle reset-prompt
}
zle -N _rkmon_tui
bindkey '^T' _rkmon_tui

# One-line SoC status from the sampler cache
rk-status() {
    %[1]s -status
}

# Launch the dashboard
rk-tui() {
    %[1]s -tui
}

# One-shot snapshot dump as JSON
rk-once() {
    %[1]s -once "$@"
}

# Start the background sampler
rk-daemon-start() {
    %[1]s -daemon &
    echo "rkmon sampler started (PID: $!)"
}

# Stop the background sampler
rk-daemon-stop() {
    pkill -f "%[1]s -daemon"
}

# Zsh completion for rkmon
_rkmon_completion() {
    local -a commands
    commands=(
        '-tui:Launch the interactive dashboard'
        '-once:Print a one-shot snapshot as JSON'
        '-status:Print the one-line status summary'
        '-daemon:Run the headless background sampler'
        '-config:Config file path'
        '-version:Show version'
        '-verbose:Verbose logging'
    )
    _describe 'rkmon' commands
}
compdef _rkmon_completion rkmon
`, cfg.BinaryPath)

	if cfg.PromptSegment {
		script += fmt.Sprintf(`
# Prepend the cached status line to each prompt
_rkmon_prompt() {
    local line
    line=$(%[1]s -status 2>/dev/null)
    [ -n "$line" ] && echo "$line"
}
precmd_functions+=(_rkmon_prompt)
`, cfg.BinaryPath)
	}

	return script
}

package shell

import "fmt"

// GenerateBashIntegration returns a Bash script snippet that provides rkmon
// shell integration. Source the output in ~/.bashrc.
func GenerateBashIntegration(cfg IntegrationConfig) string {
	script := fmt.Sprintf(`# rkmon shell integration for Bash
# Source this in your ~/.bashrc or ~/.bash_profile

# Launch the rkmon dashboard with Ctrl+T
_rkmon_tui() {
    %[1]s -tui
}
bind -x '"%[2]s": _rkmon_tui'

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
`, cfg.BinaryPath, cfg.TUIKeybinding)

	if cfg.PromptSegment {
		script += fmt.Sprintf(`
# Prepend the cached status line to each prompt
_rkmon_prompt() {
    local line
    line=$(%[1]s -status 2>/dev/null)
    [ -n "$line" ] && echo "$line"
}
PROMPT_COMMAND="_rkmon_prompt${PROMPT_COMMAND:+; $PROMPT_COMMAND}"
`, cfg.BinaryPath)
	}

	return script
}

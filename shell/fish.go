package shell

import "fmt"

// GenerateFishIntegration returns a Fish shell script snippet that provides
// rkmon keybindings, helper functions, and tab completions.
func GenerateFishIntegration(cfg IntegrationConfig) string {
	script := fmt.Sprintf(`# rkmon shell integration for Fish

# Launch the rkmon dashboard with %[2]s
function _rkmon_tui
    commandline -f repaint
    %[1]s -tui
    commandline -f repaint
end
bind \ct _rkmon_tui

# One-line SoC status from the sampler cache
function rk-status -d "Show rkmon status line"
    %[1]s -status
end

# Launch the dashboard
function rk-tui -d "Launch the rkmon dashboard"
    %[1]s -tui
end

# One-shot snapshot dump as JSON
function rk-once -d "Print a one-shot rkmon snapshot"
    %[1]s -once $argv
end

# Start the background sampler
function rk-daemon-start -d "Start the rkmon sampler"
    %[1]s -daemon &
    echo "rkmon sampler started (PID: $last_pid)"
end

# Stop the background sampler
function rk-daemon-stop -d "Stop the rkmon sampler"
    pkill -f "%[1]s -daemon"
end

# Completions
complete -c %[1]s -o tui -d "Launch the interactive dashboard"
complete -c %[1]s -o once -d "Print a one-shot snapshot as JSON"
complete -c %[1]s -o status -d "Print the one-line status summary"
complete -c %[1]s -o daemon -d "Run the headless background sampler"
complete -c %[1]s -o config -d "Config file path" -rF
complete -c %[1]s -o version -d "Show version"
complete -c %[1]s -o verbose -d "Verbose logging"
`, cfg.BinaryPath, cfg.TUIKeybinding)

	if cfg.PromptSegment {
		script += fmt.Sprintf(`
# Prepend the cached status line to each prompt
function _rkmon_prompt --on-event fish_prompt
    set -l line (%[1]s -status 2>/dev/null)
    test -n "$line"; and echo $line
end
`, cfg.BinaryPath)
	}

	return script
}

package shell

import "fmt"

// GenerateNushellIntegration returns a Nushell script snippet that provides
// rkmon commands and completions. Keybinding configuration is emitted as
// comments because Nushell keybindings must be defined statically in the
// user's config.nu and cannot be added dynamically via source.
func GenerateNushellIntegration(cfg IntegrationConfig) string {
	return fmt.Sprintf(`# rkmon shell integration for Nushell

# Keybinding: Add the following block to $env.config.keybindings in your config.nu:
# {
#     name: rkmon_tui
#     modifier: control
#     keycode: char_t
#     mode: [emacs vi_normal vi_insert]
#     event: {
#         send: executehostcommand
#         cmd: "%[1]s -tui"
#     }
# }

# One-line SoC status from the sampler cache
def rk-status [] {
    %[1]s -status
}

# Launch the rkmon dashboard
def rk-tui [] {
    %[1]s -tui
}

# One-shot snapshot dump parsed into a Nushell record
def rk-once [] {
    %[1]s -once | from json
}

# Start the background sampler
def rk-daemon-start [] {
    %[1]s -daemon &
    print "rkmon sampler started"
}

# Stop the background sampler
def rk-daemon-stop [] {
    ps | where name =~ "%[1]s" | each { |it| kill $it.pid }
}

extern "%[1]s" [
    --tui       # Launch the interactive dashboard
    --once      # Print a one-shot snapshot as JSON
    --status    # Print the one-line status summary
    --daemon    # Run the headless background sampler
    --config: path  # Config file path
    --version   # Show version
    --verbose   # Verbose logging
]
`, cfg.BinaryPath)
}

package config

// ExampleConfig is written on first start.
const ExampleConfig = `# gridsnap configuration
#
# Changes to margins and profiles apply the next time the picker opens.
# Hotkey changes need a restart.

# Gap between snap zones, in pixels.
margins: 10

# Gap between the outer zones and the edge of the screen, in pixels.
window_padding: 10

# Gap between tiles in the picker, in pixels.
grid_margins: 3

# Hotkey opening the picker. One or more of CTRL, ALT, SHIFT, WIN followed by
# a key (A-Z, 0-9, F1-F12).
hotkey: CTRL+ALT+S

# Opens the picker and closes it after one placement.
#hotkey_quick_resize: CTRL+ALT+Q

# Toggles the active window between the full grid and its previous size.
#hotkey_maximize_toggle: CTRL+ALT+X

# Start gridsnap when you log in.
auto_start: false

# Layout profiles selected with F1..F6 while the picker is open.
profiles:
  - Default
  - Profile2
  - Profile3
  - Profile4
  - Profile5
  - Profile6

# One of debug, info, warn, error.
log_level: info
`

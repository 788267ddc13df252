package styles

// Glyphs used in task lists and the voting panel.
var (
	IconCursor   = "▸"
	IconRevealed = "✓"
	IconPending  = "○"
	IconVoted    = "●"
	IconWarning  = "!"
)

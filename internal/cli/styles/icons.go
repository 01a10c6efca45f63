package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconCheck   = "\uf00c" // check
	IconX       = "\uf00d" // x
	IconWarning = "\uf071" // warning
	IconInfo    = "\uf05a" // info
	IconConfig  = "\ue615" // config
	IconFolder  = "\uf07b" // folder

	IconCursor   = "\uf054" // chevron-right
	IconPane     = "\uf0db" // columns
	IconTree     = "\uf1bb" // tree
	IconExpand   = "\uf065" // expand
	IconCollapse = "\uf066" // compress
	IconFocus    = "\uf05b" // crosshairs
)

package terminal

// Icons for terminal output
const (
	IconSuccess = "✅"
	IconError   = "❌"
	IconWarning = "⚠️"
	IconInfo    = "ℹ️"
	IconBrain   = "🧠"
	IconVolume  = "📦"
	IconWrench  = "🔧"
	IconCache   = "💾"
	IconSpeed   = "⚡"
	IconCheck   = "✓"
	IconCross   = "✗"
	IconArrow   = "→"
	IconDot     = "•"
)

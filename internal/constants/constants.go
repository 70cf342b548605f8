package constants

const (
	AppName            = "daybook"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/daybook/daybook.db"
	Version            = "v0.2.0"

	// DateFormat is the standard calendar-day format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Backup constants
	MaxSnapshots       = 14
	SnapshotDirName    = "backups"
	SnapshotFilePrefix = "daybook-"
	SnapshotFileSuffix = ".db"

	// Task time estimates are bounded to one week of minutes
	MinTimeEstimateMin = 0
	MaxTimeEstimateMin = 10080

	// Goal progress bounds
	MinProgress = 0
	MaxProgress = 100

	// Habit weekly targets: at least once, at most twice daily
	MinTargetPerWeek = 1
	MaxTargetPerWeek = 14

	// Settings defaults
	DefaultReminderHour = 18
	DefaultAutosave     = true
	DefaultTheme        = "system"
)

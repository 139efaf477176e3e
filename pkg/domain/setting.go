package domain

// setting keys
const (
	SettingLastFetchTime = "last_fetch_time"
)

package model

// WatchLock is the record kept in a data directory while a watcher owns it.
// ID is unique per acquisition; only the holder of that ID releases the lock.
type WatchLock struct {
	ID         string `yaml:"id"`
	Namespace  string `yaml:"namespace"`
	User       string `yaml:"user"`
	Host       string `yaml:"host"`
	Pid        int    `yaml:"pid"`
	AcquiredAt string `yaml:"acquired_at"` // RFC 3339
}

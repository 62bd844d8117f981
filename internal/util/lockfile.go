package util

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/nakachan-ing/zentasks/internal/model"
	"gopkg.in/yaml.v3"
)

var ErrLocked = errors.New("lock file already exists")

// CreateLockFile claims lockFileName for this process. It fails with ErrLocked,
// returning the holder's record, when the file is already there and its holder is
// alive. A lock left by a dead process on this host is taken over.
func CreateLockFile(lockFileName, namespace string) (model.WatchLock, error) {
	user := os.Getenv("USER")
	if user == "" {
		user = os.Getenv("USERNAME")
	}
	if user == "" {
		user = "unknown"
	}

	host, _ := os.Hostname()

	lockFile := model.WatchLock{
		ID:         uuid.NewString(),
		Namespace:  namespace,
		User:       user,
		Host:       host,
		Pid:        os.Getpid(),
		AcquiredAt: time.Now().UTC().Format(time.RFC3339),
	}

	info, err := yaml.Marshal(&lockFile)
	if err != nil {
		return model.WatchLock{}, fmt.Errorf("failed to marshal YAML: %w", err)
	}

	f, err := os.OpenFile(lockFileName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if os.IsExist(err) {
		holder, readErr := ReadLockFile(lockFileName)
		if readErr != nil {
			return model.WatchLock{}, fmt.Errorf("%w: %s", ErrLocked, lockFileName)
		}
		if !isStale(holder, host) {
			return holder, fmt.Errorf("%w: %s held by %s@%s (pid %d) since %s", ErrLocked, holder.Namespace, holder.User, holder.Host, holder.Pid, holder.AcquiredAt)
		}

		// 死んだプロセスのロックは回収して一度だけ取り直す
		log.Printf("⚠️ Removing stale lock left by pid %d since %s", holder.Pid, holder.AcquiredAt)
		if err := os.Remove(lockFileName); err != nil && !os.IsNotExist(err) {
			return holder, fmt.Errorf("failed to remove stale lock file: %w", err)
		}
		f, err = os.OpenFile(lockFileName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if os.IsExist(err) {
			return model.WatchLock{}, fmt.Errorf("%w: %s", ErrLocked, lockFileName)
		}
	}
	if err != nil {
		return model.WatchLock{}, fmt.Errorf("failed to create lock file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(info); err != nil {
		os.Remove(lockFileName)
		return model.WatchLock{}, fmt.Errorf("failed to write lock file: %w", err)
	}

	return lockFile, nil
}

func ReadLockFile(lockFileName string) (model.WatchLock, error) {
	data, err := os.ReadFile(lockFileName)
	if err != nil {
		return model.WatchLock{}, err
	}
	var lockFile model.WatchLock
	if err := yaml.Unmarshal(data, &lockFile); err != nil {
		return model.WatchLock{}, fmt.Errorf("failed to parse lock file: %w", err)
	}
	return lockFile, nil
}

// isStale reports whether holder was written on host by a process that has exited.
// Locks from other hosts are never stale: their pids mean nothing here.
func isStale(holder model.WatchLock, host string) bool {
	if holder.Host == "" || holder.Host != host || holder.Pid <= 0 {
		return false
	}
	return !processAlive(holder.Pid)
}

// RemoveLockFile deletes the lock if it still belongs to owner.
func RemoveLockFile(lockFileName string, owner model.WatchLock) error {
	current, err := ReadLockFile(lockFileName)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return err
	}
	if current.ID != owner.ID {
		return nil
	}
	return os.Remove(lockFileName)
}

package playback

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

// lockContent stores structured information in the lock file.
type lockContent struct {
	PID       int       `json:"pid"`
	StartTime time.Time `json:"start_time"`
	Hostname  string    `json:"hostname"`
}

// mutexDir coordinates playback across processes via atomic mkdir.
type mutexDir struct {
	lockDir     string
	contentFile string
}

func newMutexDir() *mutexDir {
	dir := filepath.Join(os.TempDir(), "mcp-elevenlabs-playback.lock.d")
	return &mutexDir{
		lockDir:     dir,
		contentFile: filepath.Join(dir, "content.json"),
	}
}

// acquire takes the cross-process playback lock, retrying with jitter until
// the context is cancelled. mkdir is atomic across filesystems.
func (m *mutexDir) acquire(ctx context.Context) error {
	for {
		err := os.Mkdir(m.lockDir, 0755)
		if err == nil {
			hostname, _ := os.Hostname()
			content := lockContent{
				PID:       os.Getpid(),
				StartTime: time.Now(),
				Hostname:  hostname,
			}
			if data, err := json.Marshal(content); err == nil {
				os.WriteFile(m.contentFile, data, 0644)
			}
			return nil
		}

		if !os.IsExist(err) {
			return fmt.Errorf("failed to create lock directory: %w", err)
		}

		// Lock exists - atomically clean up if stale
		if m.atomicCleanupStale() {
			continue
		}

		// Wait and retry with jitter to prevent synchronized attempts
		jitter := time.Duration(25+rand.Intn(50)) * time.Millisecond
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(jitter):
			continue
		}
	}
}

func (m *mutexDir) release() {
	os.Remove(m.contentFile)
	if err := os.Remove(m.lockDir); err != nil {
		// Stale detection will clean it up
		log.Debug("failed to remove lock directory", "lockDir", m.lockDir, "error", err)
	}
}

// atomicCleanupStale uses atomic rename to safely claim and remove a stale
// lock directory.
func (m *mutexDir) atomicCleanupStale() bool {
	if !m.isStale() {
		return false
	}

	staleDir := m.lockDir + ".stale." + strconv.Itoa(os.Getpid()) + "." + strconv.FormatInt(time.Now().UnixNano(), 36)
	if err := os.Rename(m.lockDir, staleDir); err != nil {
		// Another process may have already cleaned it up or acquired the lock
		return false
	}

	log.Debug("cleaning up stale playback lock", "original", m.lockDir, "temp", staleDir)
	os.RemoveAll(staleDir)
	return true
}

// isStale reports whether the existing lock directory should be reclaimed.
// A lock is stale only if the recorded PID is not running anymore, or the
// metadata is missing/invalid and the directory is older than a grace
// period. Active locks are never timed out by age alone, so long playbacks
// are not interrupted.
func (m *mutexDir) isStale() bool {
	if data, err := os.ReadFile(m.contentFile); err == nil {
		var content lockContent
		if json.Unmarshal(data, &content) == nil {
			return !isProcessAlive(content.PID)
		}
		// Corrupt JSON: fall through to the age heuristic
	}

	// No readable metadata: another process may have just created the dir
	// and not written content yet, so give it plenty of time.
	const grace = 5 * time.Minute
	if fi, err := os.Stat(m.lockDir); err == nil {
		return time.Since(fi.ModTime()) > grace
	}
	return true
}

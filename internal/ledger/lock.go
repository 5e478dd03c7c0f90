package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"ledgerlens/ledgerlens/internal/fileutils"
	"ledgerlens/ledgerlens/internal/models"
)

// LockFileName is the single-writer lock inside the output directory.
const LockFileName = ".ledger.lock"

// ErrLedgerLocked is returned when another writer holds the ledger lock.
// A lock left behind by a crashed process must be removed by hand.
var ErrLedgerLocked = errors.New("ledger is locked by another writer")

type fileLock struct {
	path string
}

// acquireLock creates the lock file exclusively, recording the owner pid.
func acquireLock(dir string) (*fileLock, error) {
	if err := fileutils.EnsureDirectoryExists(dir); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, LockFileName)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, models.PermissionReportFile) // #nosec G304 -- path is inside the configured output directory
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w (%s)", ErrLedgerLocked, path)
		}
		return nil, fmt.Errorf("failed to create lock file: %w", err)
	}
	_, werr := f.WriteString(strconv.Itoa(os.Getpid()) + " " + time.Now().UTC().Format(time.RFC3339) + "\n")
	cerr := f.Close()
	if werr != nil || cerr != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to write lock file: %w", errors.Join(werr, cerr))
	}
	return &fileLock{path: path}, nil
}

func (l *fileLock) release() error {
	return fileutils.RemoveIfExists(l.path)
}

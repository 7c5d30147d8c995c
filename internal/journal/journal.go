// Package journal implements the optional sidecar pre-image log
// SPEC_FULL.md §4.12 describes: one record per leaf or internal split,
// holding the pre-image of the page being split, appended before the
// split changes it. Other in-place page writes are not recorded. It is
// a diagnostic aid, never a recovery
// mechanism — nothing in this package replays or applies a record.
//
// Grounded on ShubhamNegi4-DaemonDB's wal_manager.WALSegment (append-only
// file opened with O_APPEND, one record at a time), collapsed from that
// package's multi-segment/LSN design down to a single file per session,
// since the B+tree core has no log sequence numbers to track.
package journal

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"eggshell/internal/logging"
)

// headerSize is page(4) + length(4) + crc32(4) of the page pre-image,
// followed by the pre-image bytes themselves and a single trailing
// success byte (1 once the write completed, left absent on a torn
// append).
const headerSize = 4 + 4 + 4

// Journal appends page pre-images to a single session file.
type Journal struct {
	mu   sync.Mutex
	file *os.File
}

// Open creates a new session file under dir, named with a fresh UUID so
// concurrent sessions against different database files never collide.
func Open(dir string) (*Journal, error) {
	name := fmt.Sprintf("eggshell-%s.journal", uuid.NewString())
	path := filepath.Join(dir, name)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", path, err)
	}
	logging.L().Info("journal: session opened", "path", path)
	return &Journal{file: file}, nil
}

// Record appends before's pre-image for pageNum, followed by a success
// byte. A failure here is never fatal to the caller (see
// Table.journalBeforeOverwrite) — it only means this particular
// pre-image is missing from the log.
func (j *Journal) Record(pageNum uint32, before []byte) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	var header [headerSize]byte
	binary.LittleEndian.PutUint32(header[0:], pageNum)
	binary.LittleEndian.PutUint32(header[4:], uint32(len(before)))
	binary.LittleEndian.PutUint32(header[8:], crc32.ChecksumIEEE(before))

	if _, err := j.file.Write(header[:]); err != nil {
		return fmt.Errorf("journal: write header for page %d: %w", pageNum, err)
	}
	if _, err := j.file.Write(before); err != nil {
		return fmt.Errorf("journal: write pre-image for page %d: %w", pageNum, err)
	}
	if _, err := j.file.Write([]byte{1}); err != nil {
		return fmt.Errorf("journal: write success byte for page %d: %w", pageNum, err)
	}
	return nil
}

// Close closes the session file without deleting it; the journal is
// retained for post-mortem inspection, not cleaned up automatically.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.file.Close()
}

// Package pager owns the single backing file and the fixed-size page
// cache over it. Grounded on ShubhamNegi4-DaemonDB's
// bplustree/disk_pager.go and bplustree/buffer_pool.go, with the
// latter's LRU eviction removed: spec.md requires every resident page
// buffer to keep a stable address until Close, so the cache here is a
// fixed array, not an evicting map.
package pager

import (
	"fmt"
	"os"
	"sync"

	"eggshell/internal/logging"
)

const (
	// PageSize is the fixed width of every page on disk and in cache.
	PageSize = 4096
	// MaxPages is the hard in-core cap on resident pages (≈ 400 KiB
	// database). There is no eviction: once MaxPages pages are
	// resident, allocating a new one is a fatal error.
	MaxPages = 100
)

// Page is a single 4096-byte node buffer. It is always addressed
// through a *Page so its address stays stable for the pager's
// lifetime, matching the teacher's char* page arrays.
type Page [PageSize]byte

// Pager owns the database file and the in-core page array.
type Pager struct {
	mu         sync.Mutex
	file       *os.File
	fileLength int64
	numPages   uint32
	pages      [MaxPages]*Page
}

// Open opens (creating if absent) path for read+write and computes the
// number of whole pages already on disk. It fails if the file length
// is not a multiple of PageSize (spec.md §4.1: "corrupt file").
func Open(path string) (*Pager, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("pager: open %s: %w", path, err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("pager: stat %s: %w", path, err)
	}

	fileLength := stat.Size()
	if fileLength%PageSize != 0 {
		file.Close()
		return nil, fmt.Errorf("pager: %s is not a whole number of pages (corrupt file)", path)
	}

	return &Pager{
		file:       file,
		fileLength: fileLength,
		numPages:   uint32(fileLength / PageSize),
	}, nil
}

// Get returns the in-core buffer for pageNum, loading it from disk on
// a cache miss. The returned pointer is stable until Close.
func (p *Pager) Get(pageNum uint32) (*Page, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pageNum >= MaxPages {
		return nil, fmt.Errorf("pager: page number %d out of bounds (max %d)", pageNum, MaxPages)
	}

	if p.pages[pageNum] != nil {
		return p.pages[pageNum], nil
	}

	page := &Page{}
	if pageNum < p.numPages {
		offset := int64(pageNum) * PageSize
		if _, err := p.file.ReadAt(page[:], offset); err != nil {
			logging.L().Error("pager: read page failed", "page", pageNum, "err", err)
			return nil, fmt.Errorf("pager: read page %d: %w", pageNum, err)
		}
	}

	p.pages[pageNum] = page
	if pageNum >= p.numPages {
		p.numPages = pageNum + 1
	}
	return page, nil
}

// GetUnusedPageNum returns the page number the next AllocatePage-style
// call should use. Allocation is append-only; there is no free list.
func (p *Pager) GetUnusedPageNum() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.numPages
}

// NumPages reports how many pages the file currently spans (including
// pages only resident in cache and not yet flushed).
func (p *Pager) NumPages() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.numPages
}

// Flush writes pageNum's cached buffer back to disk. It fails if the
// page is not resident.
func (p *Pager) Flush(pageNum uint32) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.flushLocked(pageNum)
}

func (p *Pager) flushLocked(pageNum uint32) error {
	page := p.pages[pageNum]
	if page == nil {
		return fmt.Errorf("pager: tried to flush null page %d", pageNum)
	}
	offset := int64(pageNum) * PageSize
	if _, err := p.file.WriteAt(page[:], offset); err != nil {
		logging.L().Error("pager: write page failed", "page", pageNum, "err", err)
		return fmt.Errorf("pager: write page %d: %w", pageNum, err)
	}
	return nil
}

// Close flushes every resident page and closes the file.
func (p *Pager) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for pageNum, page := range p.pages {
		if page == nil {
			continue
		}
		if err := p.flushLocked(uint32(pageNum)); err != nil {
			return err
		}
	}
	return p.file.Close()
}

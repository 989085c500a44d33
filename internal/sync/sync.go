// Package sync imports activity files dropped in the inbox directory into
// the activity library.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	gosync "sync"
	"time"

	"github.com/sstent/trackedit/internal/database"
	"github.com/sstent/trackedit/internal/parser"
	"github.com/sstent/trackedit/internal/track"
)

var ErrSyncInProgress = errors.New("sync already in progress")

type SyncService struct {
	db       database.Database
	inboxDir string
	opts     track.Options

	running gosync.Mutex
}

func NewSyncService(db database.Database, inboxDir string, opts track.Options) *SyncService {
	return &SyncService{
		db:       db,
		inboxDir: inboxDir,
		opts:     opts,
	}
}

// Sync imports every FIT, GPX and TCX file of the inbox that is not in the
// library yet. A file that fails to import is logged and skipped.
func (s *SyncService) Sync(ctx context.Context) error {
	if !s.running.TryLock() {
		return ErrSyncInProgress
	}
	defer s.running.Unlock()

	startTime := time.Now()
	fmt.Printf("Starting sync at %s\n", startTime.Format(time.RFC3339))
	defer func() {
		fmt.Printf("Sync completed in %s\n", time.Since(startTime))
	}()

	// 1. List the inbox
	files, err := s.inboxFiles()
	if err != nil {
		return fmt.Errorf("failed to list inbox: %w", err)
	}
	fmt.Printf("Found %d activity files in %s\n", len(files), s.inboxDir)

	// 2. Import each new file
	for i, name := range files {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		exists, err := s.db.ActivityExists(name)
		if err != nil {
			return fmt.Errorf("failed to check activity %s: %w", name, err)
		}
		if exists {
			continue
		}

		fmt.Printf("[%d/%d] Importing %s...\n", i+1, len(files), name)
		if _, err := s.Import(filepath.Join(s.inboxDir, name)); err != nil {
			log.Printf("Error importing %s: %v", name, err)
			// Continue with next file on error
		}
	}

	return nil
}

func (s *SyncService) inboxFiles() ([]string, error) {
	entries, err := os.ReadDir(s.inboxDir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || parser.FileTypeFromExt(e.Name()) == parser.FileTypeUnknown {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)
	return files, nil
}

// Import parses, validates and stores one activity file.
func (s *SyncService) Import(path string) (*database.Activity, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	trk, err := parser.Load(path, s.opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity file: %w", err)
	}

	return s.Store(filepath.Base(path), info.Size(), trk, false)
}

// Store saves the summary and the points of a processed track under
// filename, replacing what the library holds for it.
func (s *SyncService) Store(filename string, size int64, trk *track.Track, edited bool) (*database.Activity, error) {
	activity, err := s.db.GetActivityByFilename(filename)
	isNew := errors.Is(err, database.ErrNotFound)
	if err != nil && !isNew {
		return nil, err
	}
	if isNew {
		activity = &database.Activity{Filename: filename}
	}

	activity.SetMetrics(trk.Summary())
	activity.FileType = string(parser.FileTypeFromExt(filename))
	activity.FileSize = size
	activity.Edited = activity.Edited || edited

	if isNew {
		err = s.db.CreateActivity(activity)
	} else {
		err = s.db.UpdateActivity(activity)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save activity: %w", err)
	}

	if err := s.db.SaveTrackPoints(activity.ID, TrackPoints(trk)); err != nil {
		return nil, fmt.Errorf("failed to save track points: %w", err)
	}

	fmt.Printf("Stored activity %d (%s, %d points)\n", activity.ID, filename, trk.Len())
	return activity, nil
}

// TrackPoints converts the points of a processed track to their stored
// form.
func TrackPoints(trk *track.Track) []database.TrackPoint {
	out := make([]database.TrackPoint, trk.Len())
	for i := range out {
		p := trk.At(i)
		out[i] = database.TrackPoint{
			Seq:       p.Index,
			Timestamp: p.Timestamp,
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
			Elevation: p.Elevation,
			Distance:  p.Distance,
			Speed:     p.Speed,
			Grade:     p.Grade,
			HeartRate: p.HeartRate,
			Cadence:   p.Cadence,
			Power:     p.Power,
		}
	}
	return out
}

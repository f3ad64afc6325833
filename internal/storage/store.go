package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/san-kum/escapetime/internal/mandel"
	"github.com/san-kum/escapetime/internal/ppm"
)

// Store is a directory of rendered images. It keeps no index of its own;
// everything it reports is read back from file names and headers.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

// Path is where a render with params p is written.
func (s *Store) Path(p mandel.Params) string {
	return filepath.Join(s.baseDir, p.Filename())
}

type Entry struct {
	Name      string        `json:"name"`
	Path      string        `json:"path"`
	Params    mandel.Params `json:"params"`
	Size      int64         `json:"size"`
	Expected  int64         `json:"expected"`
	Timestamp time.Time     `json:"timestamp"`
	Complete  bool          `json:"complete"`
	Problem   string        `json:"problem,omitempty"`

	// Unreadable entries could not be opened; Problem holds the error.
	Unreadable bool `json:"unreadable,omitempty"`
}

// List returns every render in the directory, newest first. Files whose
// header disagrees with their name, or whose size is short, are listed
// with Complete unset and a Problem description. A file that cannot be
// read is listed as Unreadable and the scan continues.
func (s *Store) List() ([]Entry, error) {
	dirEntries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, err
	}

	entries := make([]Entry, 0)
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".ppm") {
			continue
		}
		if _, err := mandel.ParseFilename(de.Name()); err != nil {
			continue
		}

		entry, err := s.Inspect(filepath.Join(s.baseDir, de.Name()))
		if err != nil {
			entry.Unreadable = true
			entry.Problem = err.Error()
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Timestamp.Equal(entries[j].Timestamp) {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	return entries, nil
}

// Inspect checks a single render file. Only I/O failures are returned as
// errors; content problems are reported on the Entry.
func (s *Store) Inspect(path string) (Entry, error) {
	entry := Entry{
		Name: filepath.Base(path),
		Path: path,
	}

	params, nameErr := mandel.ParseFilename(entry.Name)
	entry.Params = params

	f, err := os.Open(path)
	if err != nil {
		return entry, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return entry, err
	}
	entry.Size = stat.Size()
	entry.Timestamp = stat.ModTime()

	info, err := ppm.ReadHeader(f)
	if err != nil {
		entry.Problem = err.Error()
		return entry, nil
	}
	entry.Expected = int64(info.HeaderLen) + info.DataSize()

	switch {
	case nameErr != nil:
		entry.Params = mandel.Params{Width: info.Width, Height: info.Height}
		entry.Problem = "name does not encode render parameters"
	case params.Width != info.Width || params.Height != info.Height:
		entry.Problem = fmt.Sprintf("header is %dx%d, name says %dx%d",
			info.Width, info.Height, params.Width, params.Height)
	case entry.Size < entry.Expected:
		entry.Problem = fmt.Sprintf("truncated: %d of %d bytes", entry.Size, entry.Expected)
	case entry.Size > entry.Expected:
		entry.Problem = fmt.Sprintf("%d trailing bytes", entry.Size-entry.Expected)
	default:
		entry.Complete = true
	}

	return entry, nil
}

// Prune deletes every incomplete render and returns their names.
// Unreadable files are left alone.
func (s *Store) Prune() ([]string, error) {
	entries, err := s.List()
	if err != nil {
		return nil, err
	}

	removed := make([]string, 0)
	for _, e := range entries {
		if e.Complete || e.Unreadable {
			continue
		}
		if err := os.Remove(e.Path); err != nil {
			return removed, err
		}
		removed = append(removed, e.Name)
	}
	return removed, nil
}

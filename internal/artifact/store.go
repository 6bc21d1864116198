// Package artifact stores rendered recap audio in a shared output
// directory. Files are named recap_week_<N>.<ext>; the directory listing is
// the only index.
package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Extension is the only audio format recaps are stored in.
const Extension = ".mp3"

// MIMEType is served for stored artifacts.
const MIMEType = "audio/mpeg"

var (
	// ErrInvalidName is returned for names that are not a plain file name
	// with the audio extension.
	ErrInvalidName = errors.New("invalid audio file name")
	// ErrNotFound is returned when no artifact exists under the name.
	ErrNotFound = errors.New("audio file not found")
)

var namePattern = regexp.MustCompile(`^recap_week_(\d+)\.mp3$`)

// Artifact describes one stored recap.
type Artifact struct {
	Filename string    `json:"filename"`
	Week     int       `json:"week"`
	Size     int64     `json:"size"`
	Created  time.Time `json:"created"`
}

// Store writes and reads artifacts under one directory.
type Store struct {
	Dir string
}

// NewStore creates the output directory if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve output dir: %w", err)
	}
	return &Store{Dir: abs}, nil
}

// FileName is the conventional artifact name for a week.
func FileName(week int) string {
	return fmt.Sprintf("recap_week_%d%s", week, Extension)
}

// ParseFileName extracts the week from a conventional artifact name.
func ParseFileName(name string) (week int, ok bool) {
	m := namePattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	week, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return week, true
}

// Save writes data as the week's artifact. The bytes go to a uniquely named
// temp file in the same directory which is then renamed over the final name,
// so concurrent saves for one week never leave a partially written file.
func (s *Store) Save(week int, data []byte) (Artifact, error) {
	name := FileName(week)
	tmp := filepath.Join(s.Dir, ".recap-"+uuid.NewString()+".tmp")

	if err := writeFile(tmp, data); err != nil {
		_ = os.Remove(tmp)
		return Artifact{}, err
	}
	if err := os.Rename(tmp, filepath.Join(s.Dir, name)); err != nil {
		_ = os.Remove(tmp)
		return Artifact{}, fmt.Errorf("publish %s: %w", name, err)
	}
	return Artifact{
		Filename: name,
		Week:     week,
		Size:     int64(len(data)),
		Created:  time.Now().UTC(),
	}, nil
}

func writeFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create temp audio: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write temp audio: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync temp audio: %w", err)
	}
	return f.Close()
}

// Path returns the absolute path of a stored artifact.
func (s *Store) Path(name string) string {
	return filepath.Join(s.Dir, name)
}

// List returns every conventionally named artifact sorted by week.
func (s *Store) List() ([]Artifact, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("read output dir: %w", err)
	}
	out := make([]Artifact, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		week, ok := ParseFileName(e.Name())
		if !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		out = append(out, Artifact{
			Filename: e.Name(),
			Week:     week,
			Size:     info.Size(),
			Created:  info.ModTime().UTC(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Week < out[j].Week })
	return out, nil
}

// Open validates name and opens the artifact for reading. The caller closes
// the file.
func (s *Store) Open(name string) (*os.File, fs.FileInfo, error) {
	if err := ValidateName(name); err != nil {
		return nil, nil, err
	}
	f, err := os.Open(filepath.Join(s.Dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("open %s: %w", name, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("stat %s: %w", name, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, nil, ErrNotFound
	}
	return f, info, nil
}

// ValidateName accepts plain file names carrying the audio extension.
func ValidateName(name string) error {
	if !strings.HasSuffix(name, Extension) {
		return fmt.Errorf("%w: must end in %s", ErrInvalidName, Extension)
	}
	if name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

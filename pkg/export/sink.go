package export

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/matzehuels/thumbstudio/pkg/errors"
)

// Sink delivers captured bytes and returns where they went.
type Sink interface {
	Deliver(ctx context.Context, data []byte) (Delivery, error)
}

// Delivery identifies a delivered export.
type Delivery struct {
	Name string
	Path string
}

// FileSink writes each export into Dir as Thumbnail_1024x576_<ms>.png.
// Files appear atomically: bytes go to a temporary file that is renamed
// into place only after a successful write.
type FileSink struct {
	Dir string
	Now func() time.Time // defaults to time.Now

	mu   sync.Mutex
	last int64
	stat func(string) (os.FileInfo, error)
}

// NewFileSink returns a sink writing into dir.
func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

// Deliver writes data under a name unique within this sink and dir. When
// two exports land in the same millisecond, or a file of that name already
// exists, the stamp is advanced until the name is free.
func (s *FileSink) Deliver(ctx context.Context, data []byte) (Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return Delivery{}, errors.Wrap(errors.ErrCodeExportDelivery, err, "create %s", s.Dir)
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	stat := os.Stat
	if s.stat != nil {
		stat = s.stat
	}
	ms := max(now().UnixMilli(), s.last+1)
	for {
		_, err := stat(filepath.Join(s.Dir, nameAt(ms)))
		if err == nil {
			ms++
			continue
		}
		if !os.IsNotExist(err) {
			return Delivery{}, errors.Wrap(errors.ErrCodeExportDelivery, err, "stat %s", nameAt(ms))
		}
		break
	}
	name := nameAt(ms)
	path := filepath.Join(s.Dir, name)

	tmp, err := os.CreateTemp(s.Dir, ".thumbnail-*.png")
	if err != nil {
		return Delivery{}, errors.Wrap(errors.ErrCodeExportDelivery, err, "create temp file")
	}
	cleanup := func() { os.Remove(tmp.Name()) }
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return Delivery{}, errors.Wrap(errors.ErrCodeExportDelivery, err, "write %s", name)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return Delivery{}, errors.Wrap(errors.ErrCodeExportDelivery, err, "write %s", name)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		cleanup()
		return Delivery{}, errors.Wrap(errors.ErrCodeExportDelivery, err, "rename to %s", name)
	}

	s.last = ms
	return Delivery{Name: name, Path: path}, nil
}

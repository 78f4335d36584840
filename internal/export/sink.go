package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/browser"
	"go.uber.org/zap"
)

// Sink receives finished exports. The terminal view never touches the
// filesystem or browser directly.
type Sink interface {
	// Download stores a file and returns where it ended up.
	Download(name string, data []byte) (string, error)

	// OpenPrint stores a printable document and presents it to the user.
	OpenPrint(name string, html []byte) (string, error)
}

// FileSink writes exports into a directory and optionally opens printable
// documents in the system browser.
type FileSink struct {
	dir    string
	open   bool
	opener func(path string) error
	logger *zap.Logger
}

// FileSinkOption configures a FileSink.
type FileSinkOption func(*FileSink)

// WithOpener replaces the function used to open printable documents.
func WithOpener(opener func(path string) error) FileSinkOption {
	return func(s *FileSink) {
		s.opener = opener
	}
}

// WithLogger sets the sink logger.
func WithLogger(logger *zap.Logger) FileSinkOption {
	return func(s *FileSink) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewFileSink creates a sink writing into dir. When openPrint is set,
// printable documents are opened after being written.
func NewFileSink(dir string, openPrint bool, opts ...FileSinkOption) *FileSink {
	s := &FileSink{
		dir:    dir,
		open:   openPrint,
		opener: browser.OpenFile,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Download writes data to dir/name.
func (s *FileSink) Download(name string, data []byte) (string, error) {
	path, err := s.write(name, data)
	if err != nil {
		return "", err
	}
	s.logger.Info("export written", zap.String("path", path), zap.Int("bytes", len(data)))
	return path, nil
}

// OpenPrint writes the document and opens it when configured to.
func (s *FileSink) OpenPrint(name string, html []byte) (string, error) {
	path, err := s.write(name, html)
	if err != nil {
		return "", err
	}
	s.logger.Info("print view written", zap.String("path", path))
	if !s.open {
		return path, nil
	}
	if err := s.opener(path); err != nil {
		return path, fmt.Errorf("opening print view: %w", err)
	}
	return path, nil
}

func (s *FileSink) write(name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(s.dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}
	return path, nil
}

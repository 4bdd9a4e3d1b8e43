package documentsource

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"sync"

	apperrors "github.com/akugone/kawayC/application/appErrors"
	"github.com/akugone/kawayC/entities"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
)

// ArchiveSource reads documents from a protected dataset: a zip archive with
// one entry per role (IEXEC_IN/IEXEC_DATASET_FILENAME).
type ArchiveSource struct {
	fs         afs.Service
	archiveURL string

	once    sync.Once
	entries map[string]*zip.File
	loadErr error
}

func NewArchiveSource(fs afs.Service, archivePath string) *ArchiveSource {
	return &ArchiveSource{fs: fs, archiveURL: url.Normalize(archivePath, file.Scheme)}
}

func (s *ArchiveSource) open(ctx context.Context) error {
	s.once.Do(func() {
		data, err := s.fs.DownloadWithURL(ctx, s.archiveURL)
		if err != nil {
			s.loadErr = apperrors.NewInputError("could not read dataset", err)
			return
		}
		reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			s.loadErr = apperrors.NewInputError("dataset is not a valid archive", err)
			return
		}
		s.entries = map[string]*zip.File{}
		for _, entry := range reader.File {
			if entry.FileInfo().IsDir() {
				continue
			}
			name := path.Base(entry.Name)
			if _, seen := s.entries[name]; !seen {
				s.entries[name] = entry
			}
		}
	})
	return s.loadErr
}

func (s *ArchiveSource) Load(ctx context.Context, role entities.DocumentRole) (*entities.DocumentBuffer, error) {
	if err := s.open(ctx); err != nil {
		return nil, err
	}

	entry, ok := s.entries[role.String()]
	if !ok {
		return nil, apperrors.NewInputError(fmt.Sprintf("missing %s document", role), nil)
	}
	if entry.UncompressedSize64 > MaxDocumentBytes {
		return nil, apperrors.NewInputError(fmt.Sprintf("%s document is too large", role), nil)
	}

	reader, err := entry.Open()
	if err != nil {
		return nil, apperrors.NewInputError(fmt.Sprintf("could not read %s", role), err)
	}
	defer reader.Close()

	data, err := io.ReadAll(io.LimitReader(reader, MaxDocumentBytes+1))
	if err != nil {
		return nil, apperrors.NewInputError(fmt.Sprintf("could not read %s", role), err)
	}
	return newBuffer(role, data)
}

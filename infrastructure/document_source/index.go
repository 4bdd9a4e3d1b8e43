package documentsource

import (
	"context"
	"fmt"

	apperrors "github.com/akugone/kawayC/application/appErrors"
	"github.com/akugone/kawayC/entities"
	"github.com/akugone/kawayC/infrastructure/document_source/types"
	"github.com/akugone/kawayC/infrastructure/logger"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
)

// MaxDocumentBytes bounds a single input document.
const MaxDocumentBytes = 25 << 20

// DirSource reads each document from a file named after its role inside a
// directory (IEXEC_IN).
type DirSource struct {
	fs      afs.Service
	baseURL string
}

func NewDirSource(fs afs.Service, dir string) *DirSource {
	return &DirSource{fs: fs, baseURL: url.Normalize(dir, file.Scheme)}
}

func (s *DirSource) Load(ctx context.Context, role entities.DocumentRole) (*entities.DocumentBuffer, error) {
	if !role.IsValid() {
		return nil, apperrors.NewInputError(fmt.Sprintf("unknown document %q", role), nil)
	}

	URL := url.Join(s.baseURL, role.String())
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return nil, apperrors.NewInputError(fmt.Sprintf("could not read %s", role), err)
	}
	if !exists {
		return nil, apperrors.NewInputError(fmt.Sprintf("missing %s document", role), nil)
	}

	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, apperrors.NewInputError(fmt.Sprintf("could not read %s", role), err)
	}
	return newBuffer(role, data)
}

func newBuffer(role entities.DocumentRole, data []byte) (*entities.DocumentBuffer, error) {
	if len(data) == 0 {
		return nil, apperrors.NewInputError(fmt.Sprintf("%s document is empty", role), nil)
	}
	if len(data) > MaxDocumentBytes {
		return nil, apperrors.NewInputError(fmt.Sprintf("%s document is too large", role), nil)
	}

	logger.Info("document loaded", logger.LoggerOptions{
		Key: "document",
		Data: map[string]interface{}{
			"role":  role.String(),
			"bytes": len(data),
		},
	})
	return &entities.DocumentBuffer{Role: role, Data: data}, nil
}

// LoadAll loads the three documents. The first failure aborts the load and
// wipes whatever was already read.
func LoadAll(ctx context.Context, source types.DocumentSource) (*entities.DocumentSet, error) {
	set := &entities.DocumentSet{}
	for _, role := range entities.DocumentRoles {
		doc, err := source.Load(ctx, role)
		if err != nil {
			set.Wipe()
			return nil, err
		}
		if doc.IsEmpty() {
			set.Wipe()
			return nil, apperrors.NewInputError(fmt.Sprintf("%s document is empty", role), nil)
		}
		doc.Role = role
		set.Set(doc)
	}
	return set, nil
}

package documentsource

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	apperrors "github.com/akugone/kawayC/application/appErrors"
	"github.com/akugone/kawayC/entities"
	"github.com/akugone/kawayC/infrastructure/document_source/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"go.uber.org/mock/gomock"
)

func upload(t *testing.T, fs afs.Service, URL string, data []byte) {
	t.Helper()
	require.NoError(t, fs.Upload(context.Background(), URL, file.DefaultFileOsMode, bytes.NewReader(data)))
}

func TestDirSourceLoad(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	dir := "mem://localhost/TestDirSourceLoad/iexec_in"
	upload(t, fs, dir+"/selfie", []byte("selfie-bytes"))
	upload(t, fs, dir+"/id", []byte("id-bytes"))

	source := NewDirSource(fs, dir)

	doc, err := source.Load(ctx, entities.SelfieDocument)
	require.NoError(t, err)
	assert.Equal(t, entities.SelfieDocument, doc.Role)
	assert.Equal(t, []byte("selfie-bytes"), doc.Data)

	_, err = source.Load(ctx, entities.AddressProofDocument)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.InputError))
	assert.Equal(t, "missing addressProof document", apperrors.PublicMessage(err))

	_, err = source.Load(ctx, entities.DocumentRole("passport"))
	assert.True(t, apperrors.IsKind(err, apperrors.InputError))
}

func TestArchiveSourceLoad(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()

	var archive bytes.Buffer
	writer := zip.NewWriter(&archive)
	for name, content := range map[string]string{"selfie": "s", "id": "i", "addressProof": ""} {
		entry, err := writer.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	archiveURL := "mem://localhost/TestArchiveSourceLoad/iexec_in/protected.zip"
	upload(t, fs, archiveURL, archive.Bytes())
	source := NewArchiveSource(fs, archiveURL)

	doc, err := source.Load(ctx, entities.IDDocument)
	require.NoError(t, err)
	assert.Equal(t, []byte("i"), doc.Data)

	_, err = source.Load(ctx, entities.AddressProofDocument)
	require.Error(t, err)
	assert.Equal(t, "addressProof document is empty", apperrors.PublicMessage(err))
}

func TestArchiveSourceRejectsInvalidArchive(t *testing.T) {
	fs := afs.New()
	archiveURL := "mem://localhost/TestArchiveSourceRejectsInvalidArchive/protected.zip"
	upload(t, fs, archiveURL, []byte("not a zip"))

	_, err := NewArchiveSource(fs, archiveURL).Load(context.Background(), entities.SelfieDocument)

	assert.True(t, apperrors.IsKind(err, apperrors.InputError))
}

func TestLoadAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockDocumentSource(ctrl)
	ctx := context.Background()

	selfie := []byte{1, 2}
	source.EXPECT().Load(ctx, entities.SelfieDocument).Return(&entities.DocumentBuffer{Role: entities.SelfieDocument, Data: selfie}, nil)
	source.EXPECT().Load(ctx, entities.IDDocument).Return(&entities.DocumentBuffer{Role: entities.IDDocument, Data: []byte{3}}, nil)
	source.EXPECT().Load(ctx, entities.AddressProofDocument).Return(&entities.DocumentBuffer{Role: entities.AddressProofDocument, Data: []byte{4}}, nil)

	set, err := LoadAll(ctx, source)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, set.Selfie.Data)
	assert.Equal(t, []byte{3}, set.ID.Data)
	assert.Equal(t, []byte{4}, set.AddressProof.Data)
}

func TestLoadAllWipesOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockDocumentSource(ctrl)
	ctx := context.Background()

	selfie := []byte{9, 9}
	source.EXPECT().Load(ctx, entities.SelfieDocument).Return(&entities.DocumentBuffer{Role: entities.SelfieDocument, Data: selfie}, nil)
	source.EXPECT().Load(ctx, entities.IDDocument).Return(nil, apperrors.NewInputError("missing id document", nil))

	_, err := LoadAll(ctx, source)

	require.Error(t, err)
	assert.Equal(t, "missing id document", apperrors.PublicMessage(err))
	assert.Equal(t, []byte{0, 0}, selfie)
}

package testutil

import (
	"mime/multipart"
	"testing"

	"github.com/rolfovo/gpx-analyzer/internal/pkg/httputil"

	"github.com/stretchr/testify/require"
)

// CreateGpxUploadForm builds a multipart form carrying one GPX file part.
func CreateGpxUploadForm(t *testing.T, fileName string, content []byte) *multipart.Form {
	t.Helper()

	form, err := httputil.CreateForm(content, fileName)
	require.NoError(t, err)

	return form
}

// CreateEmptyForm creates an empty multipart form for testing.
func CreateEmptyForm() *multipart.Form {
	return &multipart.Form{
		File: make(map[string][]*multipart.FileHeader),
	}
}

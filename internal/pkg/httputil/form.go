// Package httputil provides helpers for building multipart forms.
package httputil

import (
	"bytes"
	"fmt"
	"mime/multipart"
)

// CreateForm builds a multipart form holding a single file part named "file".
func CreateForm(fileContent []byte, fileName string) (*multipart.Form, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}

	if _, err := part.Write(fileContent); err != nil {
		return nil, fmt.Errorf("failed to write file content: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(32 << 20) // 32 MB
	if err != nil {
		return nil, fmt.Errorf("failed to read multipart form: %w", err)
	}

	if headers, ok := form.File["file"]; ok && len(headers) > 0 {
		headers[0].Size = int64(len(fileContent))
	}

	return form, nil
}

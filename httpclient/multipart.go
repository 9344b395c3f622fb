package httpclient

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/kbukum/routekit/errors"
	"github.com/kbukum/routekit/util"
)

// MultipartBody is a multipart/form-data request body. Body assembly passes
// it through untouched; the transport encodes it and sets a Content-Type
// carrying the generated boundary.
type MultipartBody struct {
	// Fields are plain form fields, written in key order.
	Fields map[string]string
	// Files are written after the fields, in slice order.
	Files []FileField
}

// FileField is one file part of a multipart body.
type FileField struct {
	FieldName string
	FileName  string
	// ContentType defaults to application/octet-stream.
	ContentType string
	// Data is the file content. Reader is used instead when Data is nil.
	Data   []byte
	Reader io.Reader
}

// AddField sets a form field and returns m for chaining.
func (m *MultipartBody) AddField(name, value string) *MultipartBody {
	if m.Fields == nil {
		m.Fields = make(map[string]string)
	}
	m.Fields[name] = value
	return m
}

// AddFile appends an in-memory file part and returns m for chaining.
func (m *MultipartBody) AddFile(field, fileName, contentType string, data []byte) *MultipartBody {
	m.Files = append(m.Files, FileField{FieldName: field, FileName: fileName, ContentType: contentType, Data: data})
	return m
}

// encode renders the parts into memory and returns them with the
// multipart Content-Type.
func (m *MultipartBody) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, name := range util.SortedKeys(m.Fields) {
		if err := w.WriteField(name, m.Fields[name]); err != nil {
			return nil, "", errors.Encoding("multipart field "+name, err)
		}
	}
	for i, f := range m.Files {
		if err := writeFilePart(w, f); err != nil {
			return nil, "", errors.Encoding(fmt.Sprintf("multipart file %d (%s)", i, f.FieldName), err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", errors.Encoding("multipart body", err)
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func writeFilePart(w *multipart.Writer, f FileField) error {
	contentType := f.ContentType
	if contentType == "" {
		contentType = ContentTypeOctet
	}
	h := make(textproto.MIMEHeader, 2)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(f.FieldName), quoteEscaper.Replace(f.FileName)))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	switch {
	case f.Data != nil:
		_, err = part.Write(f.Data)
	case f.Reader != nil:
		_, err = io.Copy(part, f.Reader)
	}
	return err
}

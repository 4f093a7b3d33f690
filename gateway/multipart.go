package gateway

import (
	"bytes"
	"io"
	"mime/multipart"

	"github.com/pkg/errors"
)

// FormFile is an opaque file attachment. The contents are forwarded as-is;
// the client never inspects or transforms them.
type FormFile struct {
	Field  string
	Name   string
	Reader io.Reader
}

// Form accumulates scalar fields and file attachments for a
// multipart/form-data request body.
type Form struct {
	fields [][2]string
	files  []FormFile
}

func NewForm() *Form {
	return &Form{}
}

func (f *Form) AddField(name, value string) *Form {
	f.fields = append(f.fields, [2]string{name, value})
	return f
}

func (f *Form) AddFile(field, name string, r io.Reader) *Form {
	f.files = append(f.files, FormFile{Field: field, Name: name, Reader: r})
	return f
}

// encode renders the form into a request body and returns its content type,
// including the generated boundary.
func (f *Form) encode() (string, io.Reader, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, field := range f.fields {
		if err := mw.WriteField(field[0], field[1]); err != nil {
			return "", nil, errors.Wrapf(err, "[Form.encode] field %q", field[0])
		}
	}
	for _, file := range f.files {
		part, err := mw.CreateFormFile(file.Field, file.Name)
		if err != nil {
			return "", nil, errors.Wrapf(err, "[Form.encode] file %q", file.Name)
		}
		if _, err := io.Copy(part, file.Reader); err != nil {
			return "", nil, errors.Wrapf(err, "[Form.encode] copy %q", file.Name)
		}
	}
	if err := mw.Close(); err != nil {
		return "", nil, errors.Wrap(err, "[Form.encode] close writer")
	}
	return mw.FormDataContentType(), &buf, nil
}

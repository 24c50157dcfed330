// Copyright 2026 The httpr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package form

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/pkg/errors"
)

// A Form accumulates multipart/form-data parts for a request body.
// Parts are encoded in the order they were added.
type Form struct {
	parts []part
}

type part struct {
	key         string
	filename    string
	contentType string
	data        []byte
}

// New creates an empty Form.
func New() *Form {
	return &Form{}
}

// AddContent appends a plain field with the given key and value. It
// returns the Form for chaining.
func (f *Form) AddContent(key, value string) *Form {
	f.parts = append(f.parts, part{key: key, data: []byte(value)})
	return f
}

// AddBuffer appends a file field carrying data under the given key
// and filename with an explicit content type. It returns the Form for
// chaining.
func (f *Form) AddBuffer(key, filename, contentType string, data []byte) *Form {
	f.parts = append(f.parts, part{
		key:         key,
		filename:    filename,
		contentType: contentType,
		data:        data,
	})
	return f
}

// Encode serializes the form into a request body and returns the
// matching Content-Type header value (with boundary) alongside it.
func (f *Form) Encode() (contentType string, body []byte, err error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, p := range f.parts {
		var pw writerTo
		if p.filename == "" {
			pw, err = w.CreateFormField(p.key)
		} else {
			h := make(textproto.MIMEHeader)
			h.Set("Content-Disposition",
				`form-data; name="`+escapeQuotes(p.key)+`"; filename="`+escapeQuotes(p.filename)+`"`)
			if p.contentType != "" {
				h.Set("Content-Type", p.contentType)
			}
			pw, err = w.CreatePart(h)
		}
		if err != nil {
			return "", nil, errors.Wrapf(err, "httpr/form: part %q", p.key)
		}
		if _, err = pw.Write(p.data); err != nil {
			return "", nil, errors.Wrapf(err, "httpr/form: part %q", p.key)
		}
	}
	if err = w.Close(); err != nil {
		return "", nil, errors.Wrap(err, "httpr/form: close")
	}
	return w.FormDataContentType(), buf.Bytes(), nil
}

type writerTo interface {
	Write(p []byte) (int, error)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

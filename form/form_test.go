// Copyright 2026 The httpr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package form

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForm_Encode(t *testing.T) {
	f := New().
		AddContent("name", "value").
		AddBuffer("file", "data.bin", "application/octet-stream", []byte{0x00, 0x01, 0x02}).
		AddContent("after", "the file")

	contentType, body, err := f.Encode()
	require.NoError(t, err)
	require.NotEmpty(t, body)

	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)
	require.NotEmpty(t, params["boundary"])

	mr := multipart.NewReader(bytes.NewReader(body), params["boundary"])

	p, err := mr.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "name", p.FormName())
	assert.Equal(t, "", p.FileName())
	data, err := io.ReadAll(p)
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), data)

	p, err = mr.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "file", p.FormName())
	assert.Equal(t, "data.bin", p.FileName())
	assert.Equal(t, "application/octet-stream", p.Header.Get("Content-Type"))
	data, err = io.ReadAll(p)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x01, 0x02}, data)

	p, err = mr.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "after", p.FormName())
	data, err = io.ReadAll(p)
	require.NoError(t, err)
	assert.Equal(t, []byte("the file"), data)

	_, err = mr.NextPart()
	assert.Equal(t, io.EOF, err)
}

func TestForm_Encode_Empty(t *testing.T) {
	contentType, body, err := New().Encode()
	require.NoError(t, err)
	assert.NotEmpty(t, contentType)

	_, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	mr := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	_, err = mr.NextPart()
	assert.Equal(t, io.EOF, err)
}

func TestForm_Encode_QuotedNames(t *testing.T) {
	f := New().AddBuffer(`k"ey`, `na"me\`, "text/plain", []byte("x"))
	contentType, body, err := f.Encode()
	require.NoError(t, err)

	_, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	mr := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	p, err := mr.NextPart()
	require.NoError(t, err)
	assert.Equal(t, `k"ey`, p.FormName())
	assert.Equal(t, `na"me\`, p.FileName())
}

package decoder

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTikaDecodeSuccess 正常解码：PUT /tika 并带上文件名头
func TestTikaDecodeSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/tika", r.URL.Path)
		assert.Equal(t, "text/plain", r.Header.Get("Accept"))
		assert.Equal(t, "resume.pdf", r.Header.Get("X-Tika-Resource-Name"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.4 fake"), body)

		_, _ = w.Write([]byte("Extracted resume text"))
	}))
	defer server.Close()

	d := NewTikaDecoder(server.URL)
	text, err := d.Decode(context.Background(), []byte("%PDF-1.4 fake"), "resume.pdf")

	require.NoError(t, err)
	assert.Equal(t, "Extracted resume text", text)
}

// TestTikaDecodeEmptyDocument 服务器返回空白文本时给出哨兵错误
func TestTikaDecodeEmptyDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("   \n\t  "))
	}))
	defer server.Close()

	d := NewTikaDecoder(server.URL)
	_, err := d.Decode(context.Background(), []byte("data"), "blank.pdf")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyDocument))
}

// TestTikaDecodeServerError 非200状态码返回错误
func TestTikaDecodeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	d := NewTikaDecoder(server.URL)
	_, err := d.Decode(context.Background(), []byte("data"), "bad.pdf")

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrEmptyDocument))
}

// TestTikaDecodeUnreachable 服务器不可达返回错误
func TestTikaDecodeUnreachable(t *testing.T) {
	d := NewTikaDecoder("http://127.0.0.1:1")

	_, err := d.Decode(context.Background(), []byte("data"), "resume.pdf")

	assert.Error(t, err)
}

// TestTikaDecodeTrailingSlash 服务器地址末尾斜杠被归一
func TestTikaDecodeTrailingSlash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tika", r.URL.Path)
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	d := NewTikaDecoder(server.URL + "/")
	text, err := d.Decode(context.Background(), []byte("data"), "resume.pdf")

	require.NoError(t, err)
	assert.Equal(t, "ok", text)
}

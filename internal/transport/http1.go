package transport

import (
	"bufio"
	"bytes"
	"io"

	"github.com/frankli0324/go-rawget/internal/model"
)

type HTTP1 struct{}

// Encode returns the bytes WriteRequest would write for uri.
func (t HTTP1) Encode(uri model.URI) []byte {
	var buf bytes.Buffer
	t.WriteRequest(&buf, uri) // bytes.Buffer never fails
	return buf.Bytes()
}

// WriteRequest writes the request line and the single Host header of
// an HTTP/1.0 GET, e.g.:
//
//	GET / HTTP/1.0\r\n
//	Host: www.example.com\r\n
//	\r\n
//
// The path is written as given, without escaping.
func (t HTTP1) WriteRequest(w io.Writer, uri model.URI) error {
	header := bufio.NewWriter(w) // default bufsize is 4096

	header.WriteString("GET ")
	header.WriteString(uri.Path)
	header.WriteString(" HTTP/1.0\r\n")
	header.WriteString("Host: ")
	header.WriteString(uri.Host)
	if _, err := header.WriteString("\r\n\r\n"); err != nil {
		return err
	}
	return header.Flush()
}

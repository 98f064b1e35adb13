package transport

import (
	"io"

	"github.com/frankli0324/go-rawget/internal/model"
)

// Transport serializes a request for the wire.
type Transport interface {
	Encode(uri model.URI) []byte
	WriteRequest(w io.Writer, uri model.URI) error
}

var _ Transport = HTTP1{}

// package transport contains the request side of the *message syntax*
// defined by RFC1945 (HTTP/1.0), which is the only thing written to a
// connection. Responses are never parsed: whatever the server sends is
// handed back to the caller as opaque payload chunks.
//
// only the smallest valid request is produced, a GET request line and a
// Host header. no other methods, headers or bodies are supported.

package transport

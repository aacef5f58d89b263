// Package middleware provides HTTP middleware for the goUserDirectory service.
package middleware

import (
	"net/http"
	"sync/atomic"
)

// ResponseWriter wraps http.ResponseWriter to capture the status code and
// bytes written for request logging.
type ResponseWriter struct {
	http.ResponseWriter
	statusCode int32
	written    int64
}

func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *ResponseWriter) WriteHeader(code int) {
	atomic.StoreInt32(&rw.statusCode, int32(code))
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *ResponseWriter) Write(data []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(data)
	if n > 0 {
		atomic.AddInt64(&rw.written, int64(n))
	}
	return n, err
}

func (rw *ResponseWriter) StatusCode() int {
	return int(atomic.LoadInt32(&rw.statusCode))
}

func (rw *ResponseWriter) BytesWritten() int {
	return int(atomic.LoadInt64(&rw.written))
}

func (rw *ResponseWriter) HasBody() bool {
	return atomic.LoadInt64(&rw.written) > 0
}

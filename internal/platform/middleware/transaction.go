// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/kanoon/kanoon/internal/platform/apperr"
	"github.com/kanoon/kanoon/internal/platform/postgres"
	"github.com/kanoon/kanoon/internal/platform/respond"
)

// errRollback marks a request whose handler answered with an error status.
var errRollback = errors.New("middleware: rollback on error status")

// bufferedWriter holds the response until the transaction outcome is known.
type bufferedWriter struct {
	target http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (buffer *bufferedWriter) Header() http.Header {
	return buffer.target.Header()
}

func (buffer *bufferedWriter) WriteHeader(code int) {
	if buffer.status == 0 {
		buffer.status = code
	}
}

func (buffer *bufferedWriter) Write(data []byte) (int, error) {
	if buffer.status == 0 {
		buffer.status = http.StatusOK
	}
	return buffer.body.Write(data)
}

func (buffer *bufferedWriter) statusCode() int {
	if buffer.status == 0 {
		return http.StatusOK
	}
	return buffer.status
}

func (buffer *bufferedWriter) flush() {
	buffer.target.WriteHeader(buffer.statusCode())
	_, _ = buffer.target.Write(buffer.body.Bytes())
}

// Transaction opens one database transaction per request.
//
// # Flow
//  1. Begin a transaction and bind it to the request context.
//  2. Run the handler against a buffered writer.
//  3. Status < 400 commits; anything else rolls back.
//  4. Only then is the buffered response sent. A failed commit replaces it
//     with a storage failure, so the client never sees a success that was lost.
func Transaction(db postgres.TxRunner) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if request.Method == http.MethodOptions {
				next.ServeHTTP(writer, request)
				return
			}

			buffer := &bufferedWriter{target: writer}
			err := db.InTx(request.Context(), func(ctx context.Context) error {
				next.ServeHTTP(buffer, request.WithContext(ctx))
				if buffer.statusCode() >= http.StatusBadRequest {
					return errRollback
				}
				return nil
			})

			if err != nil && !errors.Is(err, errRollback) {
				respond.Error(writer, request, apperr.StorageFailure("transaction aborted", err))
				return
			}

			buffer.flush()
		})
	}
}

// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey holds the context keys shared by middleware, the access
// gate and the postgres layer. The key type is unexported so no other
// package can forge one.
package ctxkey

type key uint8

const (
	KeyRequestID key = iota + 1
	KeyPrincipal
	KeyLogger
	// KeyTx carries the open pgx transaction of a request.
	KeyTx
)

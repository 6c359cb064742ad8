// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Token Issuance

const (
	// BasicScheme is the only scheme the issuance endpoint accepts.
	BasicScheme = "Basic"

	// BasicRealm is advertised in WWW-Authenticate on a failed issuance.
	BasicRealm = `Basic realm="kanoon"`
)

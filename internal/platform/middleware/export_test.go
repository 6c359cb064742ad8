// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

// RateLimitWith exposes the limiter with a custom bucket size.
var RateLimitWith = rateLimit

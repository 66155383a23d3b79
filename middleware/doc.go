// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# Request Metrics

WithMetrics records handling time in a Prometheus histogram, labeled by
method and route pattern:

	mux.HandleFunc(pattern, middleware.WithMetrics(m, pattern, handler))

A nil *metrics.ServerMetrics disables recording, which keeps tests free
of registry setup.

# CORS Middleware

Enable cross-origin requests for the dashboard:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type, Authorization, X-Admin-Key, X-Voter-Token.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, code, message)

Parse request bodies:

	err := middleware.ParseJSONBody(r, &req)

# Client IP

GetClientIP extracts the client address, preferring X-Forwarded-For,
then X-Real-IP, then RemoteAddr.
*/
package middleware

// Package tracing provides OpenTelemetry tracing integration.
//
// This package provides distributed tracing capabilities using OpenTelemetry.
//
// Features:
//   - Automatic HTTP request tracing
//   - Cross-service trace propagation
//
// Example usage:
//
//	import "github.com/thedevarpan/dot-developer/internal/observability/tracing"
//
//	func main() {
//	    handler := tracing.Middleware(mux)
//	    http.ListenAndServe(":8080", handler)
//	}
//
//	func processRequest(ctx context.Context) {
//	    ctx, span := tracing.GetTracer().Start(ctx, "process-request")
//	    defer span.End()
//	    // ... process request ...
//	}
package tracing

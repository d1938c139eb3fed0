package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/FACorreiaa/go-cityinfo-api/internal/types"
)

// BenchmarkGetCityWithPointsOfInterest benchmarks the nested city read
func BenchmarkGetCityWithPointsOfInterest(b *testing.B) {
	handler, _ := newTestHandler(b, 0)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/cities/1?includePointsOfInterest=true", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
	}
}

// BenchmarkCreatePointOfInterest benchmarks validation plus an in-memory insert
func BenchmarkCreatePointOfInterest(b *testing.B) {
	handler, _ := newTestHandler(b, 0)

	payload, _ := json.Marshal(types.PointOfInterestForCreationDto{
		Name:        "Benchmark Park",
		Description: "Created by a benchmark.",
	})

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/cities/2/pointsofinterest", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
	}
}

// BenchmarkConcurrentReads benchmarks parallel list requests against the shared store
func BenchmarkConcurrentReads(b *testing.B) {
	handler, _ := newTestHandler(b, 0)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			req := httptest.NewRequest(http.MethodGet, "/api/cities/3/pointsofinterest", nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
		}
	})
}

package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"caffenio/internal/metrics"
	"caffenio/internal/repository"
	"caffenio/internal/service"
)

const testAPIKey = "test-key"

func setupServer(t *testing.T) *Server {
	t.Helper()
	store := repository.NewMemoryStore()
	catalog := repository.NewStaticCatalog()
	ordersSvc := service.NewOrderService(store, zap.NewNop())
	catalogSvc := service.NewCatalogService(catalog)
	m := metrics.NewServerMetrics(prometheus.NewRegistry())
	return NewServer(ordersSvc, catalogSvc, testAPIKey, zap.NewNop(), m, nil)
}

func doJSON(t *testing.T, s *Server, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func withKey(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return doJSON(t, s, method, path, body, map[string]string{apiKeyHeader: testAPIKey})
}

func orderBody() map[string]any {
	return map[string]any{
		"subtotal": 125.0,
		"tax":      20.0,
		"discount": 0.0,
		"total":    145.0,
		"items": []map[string]any{
			{"productId": 1, "productName": "Americano", "quantity": 2, "unitPrice": 35.0, "lineSubtotal": 70.0},
			{"productId": 4, "productName": "Frappé", "quantity": 1, "unitPrice": 55.0, "lineSubtotal": 55.0,
				"customization": map[string]any{"size": "Jumbo", "milkType": "Coco"}},
		},
	}
}

func TestAuth(t *testing.T) {
	s := setupServer(t)

	// no key
	w := doJSON(t, s, http.MethodGet, "/api/v1/products", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", w.Code)
	}

	// wrong key
	w = doJSON(t, s, http.MethodGet, "/api/v1/products", nil, map[string]string{apiKeyHeader: "wrong"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", w.Code)
	}

	// right key
	w = withKey(t, s, http.MethodGet, "/api/v1/products", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %v", w.Code)
	}

	// health is open
	w = doJSON(t, s, http.MethodGet, "/health", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health expected 200, got %v", w.Code)
	}
}

func TestOrderFlow(t *testing.T) {
	s := setupServer(t)

	// submit
	w := withKey(t, s, http.MethodPost, "/api/v1/orders", orderBody())
	if w.Code != http.StatusOK {
		t.Fatalf("submit %v: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Success      bool    `json:"success"`
		TicketNumber string  `json:"ticketNumber"`
		OrderID      int64   `json:"orderId"`
		Total        float64 `json:"total"`
		Message      string  `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || len(resp.TicketNumber) != 4 || resp.Total != 145 {
		t.Fatalf("bad response: %+v", resp)
	}

	// lookup by ticket
	w = withKey(t, s, http.MethodGet, "/api/v1/orders/ticket/"+resp.TicketNumber, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get by ticket %v", w.Code)
	}

	// list
	w = withKey(t, s, http.MethodGet, "/api/v1/orders", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list %v", w.Code)
	}

	// patch status
	w = withKey(t, s, http.MethodPatch, "/api/v1/orders/1/status", map[string]any{"status": "Ready"})
	if w.Code != http.StatusOK {
		t.Fatalf("patch %v: %s", w.Code, w.Body.String())
	}
}

func TestSubmitOrder_Rejections(t *testing.T) {
	s := setupServer(t)

	// inconsistent totals
	body := orderBody()
	body["total"] = 200.0
	w := withKey(t, s, http.MethodPost, "/api/v1/orders", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", w.Code)
	}

	// empty cart
	body = orderBody()
	body["items"] = []map[string]any{}
	w = withKey(t, s, http.MethodPost, "/api/v1/orders", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", w.Code)
	}

	// rejected orders are not stored
	w = withKey(t, s, http.MethodGet, "/api/v1/orders", nil)
	var list []any
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Fatalf("rejected order stored")
	}
}

func TestOrder_NotFound(t *testing.T) {
	s := setupServer(t)

	w := withKey(t, s, http.MethodGet, "/api/v1/orders/ticket/1234", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", w.Code)
	}

	w = withKey(t, s, http.MethodPatch, "/api/v1/orders/42/status", map[string]any{"status": "Ready"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", w.Code)
	}
}

func TestProducts(t *testing.T) {
	s := setupServer(t)

	w := withKey(t, s, http.MethodGet, "/api/v1/products", nil)
	var list []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 11 {
		t.Fatalf("expected 11 products, got %d", len(list))
	}

	// by category
	w = withKey(t, s, http.MethodGet, "/api/v1/products/category/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("category %v", w.Code)
	}
	// bad category
	w = withKey(t, s, http.MethodGet, "/api/v1/products/category/9", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", w.Code)
	}
	// subcategory
	w = withKey(t, s, http.MethodGet, "/api/v1/products/category/4/subcategory/reposteria", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("subcategory %v", w.Code)
	}
	w = withKey(t, s, http.MethodGet, "/api/v1/products/category/4/subcategory/bebidas", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", w.Code)
	}

	// single product and availability
	w = withKey(t, s, http.MethodGet, "/api/v1/products/3", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get product %v", w.Code)
	}
	w = withKey(t, s, http.MethodGet, "/api/v1/products/3/availability", nil)
	var avail map[string]bool
	if err := json.Unmarshal(w.Body.Bytes(), &avail); err != nil {
		t.Fatal(err)
	}
	if avail["available"] {
		t.Fatalf("chocolate should be unavailable")
	}
	w = withKey(t, s, http.MethodGet, "/api/v1/products/999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", w.Code)
	}
}

func TestHealth_DegradedWithoutStore(t *testing.T) {
	s := setupServer(t)
	w := doJSON(t, s, http.MethodGet, "/health", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health %v", w.Code)
	}
	var resp struct {
		Status   string `json:"status"`
		Database struct {
			Connected bool `json:"connected"`
		} `json:"database"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "Degraded" || resp.Database.Connected {
		t.Fatalf("expected degraded without store, got %+v", resp)
	}
}

func TestMetricsExposeRequestCounters(t *testing.T) {
	s := setupServer(t)

	// generate one counted request, then scrape
	w := doJSON(t, s, http.MethodGet, "/health", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health %v", w.Code)
	}
	w = doJSON(t, s, http.MethodGet, "/metrics", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("metrics %v", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "caffenio_kiosk_http_requests_total") {
		t.Fatalf("request counter missing from exposition:\n%s", body)
	}
	if !strings.Contains(body, "caffenio_kiosk_http_request_duration_ms") {
		t.Fatalf("latency histogram missing from exposition")
	}
}

func TestRequestIDEchoed(t *testing.T) {
	s := setupServer(t)
	w := doJSON(t, s, http.MethodGet, "/health", nil, map[string]string{requestIDHeader: "abc-123"})
	if got := w.Header().Get(requestIDHeader); got != "abc-123" {
		t.Fatalf("request id not echoed: %q", got)
	}
	w = doJSON(t, s, http.MethodGet, "/health", nil, nil)
	if w.Header().Get(requestIDHeader) == "" {
		t.Fatalf("request id not minted")
	}
}

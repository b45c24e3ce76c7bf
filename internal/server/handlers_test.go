package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parking-engine/internal/parking"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	telemetry, err := parking.NewTelemetryProvider("parking-engine-test", "http://localhost:4318")
	require.NoError(t, err)

	pricing := parking.DefaultPricing()
	engine := parking.NewEngine(parking.DefaultTopology(), pricing)
	instrumented, err := parking.NewInstrumentedEngine(engine, telemetry)
	require.NoError(t, err)

	srv := NewServer("0", instrumented, pricing)
	ts := httptest.NewServer(srv.httpServer.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) (*http.Response, Response) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func getJSON(t *testing.T, url string) (*http.Response, Response) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAllocateEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, body := postJSON(t, ts.URL+"/api/parking/allocate", AllocateRequest{
		LicensePlate: "KA01HH1234",
		VehicleType:  "medium",
		CustomerType: "regular",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, body.Success)

	data, ok := body.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "L1-REG-M-01", data["slot_id"])
	assert.NotEmpty(t, data["ticket"])
	assert.Equal(t, float64(1), data["level"])
}

func TestAllocateEndpointRejectsBadInput(t *testing.T) {
	ts := newTestServer(t)

	resp, body := postJSON(t, ts.URL+"/api/parking/allocate", AllocateRequest{
		LicensePlate: "KA01HH1234",
		VehicleType:  "gigantic",
		CustomerType: "regular",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, body.Success)

	resp, _ = postJSON(t, ts.URL+"/api/parking/allocate", AllocateRequest{
		VehicleType:  "small",
		CustomerType: "regular",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAllocateEndpointDuplicateVehicle(t *testing.T) {
	ts := newTestServer(t)

	req := AllocateRequest{LicensePlate: "KA01HH1234", VehicleType: "small", CustomerType: "regular"}

	resp, _ := postJSON(t, ts.URL+"/api/parking/allocate", req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := postJSON(t, ts.URL+"/api/parking/allocate", req)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.False(t, body.Success)
}

func TestReleaseEndpoint(t *testing.T) {
	ts := newTestServer(t)

	_, allocBody := postJSON(t, ts.URL+"/api/parking/allocate", AllocateRequest{
		LicensePlate: "KA01HH1234",
		VehicleType:  "small",
		CustomerType: "regular",
	})
	data := allocBody.Data.(map[string]any)
	ticket := data["ticket"].(string)

	resp, body := postJSON(t, ts.URL+"/api/parking/release", ReleaseRequest{Ticket: ticket})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, body.Success)

	relData := body.Data.(map[string]any)
	// Same-instant release still bills the minimum charge.
	assert.Equal(t, float64(20), relData["fee"])

	// Second release of the same ticket is rejected.
	resp, _ = postJSON(t, ts.URL+"/api/parking/release", ReleaseRequest{Ticket: ticket})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPurchasePassEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, body := postJSON(t, ts.URL+"/api/parking/pass", PurchasePassRequest{
		LicensePlate: "VIP-1",
		VehicleType:  "medium",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, body.Success)

	data := body.Data.(map[string]any)
	assert.NotEmpty(t, data["pass_id"])
	assert.Equal(t, float64(2100), data["amount_paid"])
}

func TestStatusEndpoint(t *testing.T) {
	ts := newTestServer(t)

	postJSON(t, ts.URL+"/api/parking/allocate", AllocateRequest{
		LicensePlate: "KA01HH1234",
		VehicleType:  "small",
		CustomerType: "regular",
	})

	resp, body := getJSON(t, ts.URL+"/api/parking/status")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data := body.Data.(map[string]any)
	counters := data["counters"].(map[string]any)
	assert.Equal(t, float64(1), counters["occupied"])
	assert.Equal(t, counters["total"].(float64)-1, counters["available"])

	levels := data["levels"].(map[string]any)
	assert.Contains(t, levels, "1")
	assert.Contains(t, levels, "2")
}

func TestFindEndpoint(t *testing.T) {
	ts := newTestServer(t)

	postJSON(t, ts.URL+"/api/parking/allocate", AllocateRequest{
		LicensePlate: "KA01HH1234",
		VehicleType:  "small",
		CustomerType: "regular",
	})

	resp, body := getJSON(t, ts.URL+"/api/parking/find/KA01HH1234")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, body.Success)

	resp, _ = getJSON(t, ts.URL+"/api/parking/find/UNKNOWN")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

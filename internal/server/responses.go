package server

import (
	"context"
	"encoding/json"
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"parking-engine/internal/parking"
)

type Meta struct {
	TraceID   string `json:"trace_id,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Meta    *Meta  `json:"meta,omitempty"`
}

type AllocateRequest struct {
	LicensePlate string `json:"license_plate"`
	VehicleType  string `json:"vehicle_type"`
	CustomerType string `json:"customer_type"`
	IsEV         bool   `json:"is_ev"`
}

type ReleaseRequest struct {
	Ticket string `json:"ticket"`
}

type PurchasePassRequest struct {
	LicensePlate string `json:"license_plate"`
	VehicleType  string `json:"vehicle_type"`
}

type AllocateResponse struct {
	Ticket       string          `json:"ticket"`
	SlotID       string          `json:"slot_id"`
	Level        int             `json:"level"`
	Section      string          `json:"section"`
	LicensePlate string          `json:"license_plate"`
	EntryTime    string          `json:"entry_time"`
	Receipt      parking.Receipt `json:"receipt"`
}

type ReleaseResponse struct {
	Ticket        string          `json:"ticket"`
	SlotID        string          `json:"slot_id"`
	Fee           int64           `json:"fee"`
	DurationHours float64         `json:"duration_hours"`
	PassUsed      bool            `json:"pass_used"`
	Receipt       parking.Receipt `json:"receipt"`
}

type PurchasePassResponse struct {
	PassID       string `json:"pass_id"`
	LicensePlate string `json:"license_plate"`
	VehicleType  string `json:"vehicle_type"`
	Expiry       string `json:"expiry"`
	AmountPaid   int64  `json:"amount_paid"`
}

type SlotStatus struct {
	ID       string `json:"id"`
	Level    int    `json:"level"`
	Section  string `json:"section"`
	Size     string `json:"size"`
	Occupied bool   `json:"occupied"`
	Ticket   string `json:"ticket,omitempty"`
}

type StatusCounters struct {
	Total     int `json:"total"`
	Occupied  int `json:"occupied"`
	Available int `json:"available"`
}

// StatusResponse groups slots by level then section for grid rendering.
type StatusResponse struct {
	Counters  StatusCounters                     `json:"counters"`
	Levels    map[string]map[string][]SlotStatus `json:"levels"`
	Timestamp string                             `json:"timestamp"`
}

type FindResponse struct {
	LicensePlate string   `json:"license_plate"`
	Tickets      []Ticket `json:"tickets"`
}

type Ticket struct {
	ID        string `json:"id"`
	SlotID    string `json:"slot_id"`
	EntryTime string `json:"entry_time"`
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func extractMeta(ctx context.Context) *Meta {
	meta := &Meta{}

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().HasTraceID() {
		meta.TraceID = span.SpanContext().TraceID().String()
	}

	if reqID, ok := ctx.Value(RequestIDKey).(string); ok {
		meta.RequestID = reqID
	}

	return meta
}

func WriteSuccess(ctx context.Context, w http.ResponseWriter, message string, data any) {
	WriteJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    extractMeta(ctx),
	})
}

func WriteError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Response{
		Success: false,
		Error:   message,
		Meta:    extractMeta(ctx),
	})
}

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"parking-engine/internal/parking"
)

func getServiceName() string {
	if name := os.Getenv("OTEL_SERVICE_NAME"); name != "" {
		return name
	}
	return "parking-engine"
}

type Handler struct {
	engine  *parking.InstrumentedEngine
	pricing *parking.Pricing
}

func NewHandler(engine *parking.InstrumentedEngine, pricing *parking.Pricing) *Handler {
	return &Handler{engine: engine, pricing: pricing}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": getServiceName(),
		"meta":    extractMeta(r.Context()),
	})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, parking.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, parking.ErrInvalidTicket):
		return http.StatusNotFound
	case errors.Is(err, parking.ErrDuplicateVehicle),
		errors.Is(err, parking.ErrNoSlotAvailable),
		errors.Is(err, parking.ErrSlotConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (h *Handler) Allocate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AllocateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.LicensePlate == "" {
		WriteError(ctx, w, http.StatusBadRequest, "License plate is required")
		return
	}

	size, err := parking.ParseSizeClass(req.VehicleType)
	if err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid vehicle type")
		return
	}
	customer, err := parking.ParseCustomerType(req.CustomerType)
	if err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid customer type")
		return
	}

	res, err := h.engine.Allocate(ctx, parking.Request{
		LicensePlate: req.LicensePlate,
		Size:         size,
		Customer:     customer,
		IsEV:         req.IsEV,
	})
	if err != nil {
		WriteError(ctx, w, statusForError(err), err.Error())
		return
	}

	var pass *parking.Pass
	if p, ok := h.engine.ActivePass(req.LicensePlate, size); ok {
		pass = &p
	}

	WriteSuccess(ctx, w, "Slot allocated successfully", AllocateResponse{
		Ticket:       res.Ticket.ID,
		SlotID:       res.SlotID,
		Level:        res.Level,
		Section:      res.Section.String(),
		LicensePlate: res.Ticket.LicensePlate,
		EntryTime:    res.Ticket.EntryTime.Format(time.RFC3339),
		Receipt:      parking.AllocationReceipt(res, h.pricing, pass),
	})
}

func (h *Handler) Release(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ReleaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Ticket == "" {
		WriteError(ctx, w, http.StatusBadRequest, "Ticket ID is required")
		return
	}

	res, err := h.engine.Release(ctx, req.Ticket)
	if err != nil {
		WriteError(ctx, w, statusForError(err), err.Error())
		return
	}

	slot := h.slotView(ctx, res.SlotID)

	WriteSuccess(ctx, w, "Slot released successfully", ReleaseResponse{
		Ticket:        res.Ticket.ID,
		SlotID:        res.SlotID,
		Fee:           res.Fee,
		DurationHours: res.Hours,
		PassUsed:      res.PassUsed,
		Receipt:       parking.ReleaseReceipt(res, slot),
	})
}

func (h *Handler) slotView(ctx context.Context, slotID string) parking.SlotView {
	for _, v := range h.engine.Snapshot(ctx) {
		if v.ID == slotID {
			return v
		}
	}
	return parking.SlotView{ID: slotID}
}

func (h *Handler) PurchasePass(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req PurchasePassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.LicensePlate == "" {
		WriteError(ctx, w, http.StatusBadRequest, "License plate is required")
		return
	}

	size, err := parking.ParseSizeClass(req.VehicleType)
	if err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid vehicle type")
		return
	}

	pass, err := h.engine.PurchasePass(ctx, req.LicensePlate, size)
	if err != nil {
		WriteError(ctx, w, statusForError(err), err.Error())
		return
	}

	WriteSuccess(ctx, w, "Pass purchased successfully", PurchasePassResponse{
		PassID:       pass.ID,
		LicensePlate: pass.CustomerKey,
		VehicleType:  pass.Size.String(),
		Expiry:       pass.ExpiresAt.Format(time.RFC3339),
		AmountPaid:   pass.AmountPaid,
	})
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	views := h.engine.Snapshot(ctx)

	levels := make(map[string]map[string][]SlotStatus)
	occupied := 0
	for _, v := range views {
		if v.Occupied {
			occupied++
		}

		levelKey := fmt.Sprintf("%d", v.Level)
		if levels[levelKey] == nil {
			levels[levelKey] = make(map[string][]SlotStatus)
		}
		sectionKey := v.Section.String()
		levels[levelKey][sectionKey] = append(levels[levelKey][sectionKey], SlotStatus{
			ID:       v.ID,
			Level:    v.Level,
			Section:  v.Section.String(),
			Size:     v.Size.String(),
			Occupied: v.Occupied,
			Ticket:   v.TicketID,
		})
	}

	WriteSuccess(ctx, w, "Status retrieved successfully", StatusResponse{
		Counters: StatusCounters{
			Total:     len(views),
			Occupied:  occupied,
			Available: len(views) - occupied,
		},
		Levels:    levels,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) FindByPlate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	plate := chi.URLParam(r, "plate")
	if plate == "" {
		WriteError(ctx, w, http.StatusBadRequest, "License plate is required")
		return
	}

	tickets := h.engine.FindByPlate(ctx, plate)
	if len(tickets) == 0 {
		WriteError(ctx, w, http.StatusNotFound, "Vehicle not found")
		return
	}

	out := make([]Ticket, len(tickets))
	for i, t := range tickets {
		out[i] = Ticket{
			ID:        t.ID,
			SlotID:    t.SlotID,
			EntryTime: t.EntryTime.Format(time.RFC3339),
		}
	}

	WriteSuccess(ctx, w, "Vehicle found", FindResponse{
		LicensePlate: plate,
		Tickets:      out,
	})
}

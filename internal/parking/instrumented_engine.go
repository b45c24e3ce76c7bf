package parking

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentedEngine decorates Engine with tracing and metrics. The
// embedded engine stays usable directly for callers that do not carry a
// context.
type InstrumentedEngine struct {
	*Engine
	telemetry *TelemetryProvider

	// Metrics
	allocateOperations metric.Int64Counter
	releaseOperations  metric.Int64Counter
	passPurchases      metric.Int64Counter
	occupancyGauge     metric.Int64UpDownCounter
	feeAmount          metric.Int64Histogram
	operationDuration  metric.Float64Histogram
	totalSlotsGauge    metric.Int64UpDownCounter
}

func NewInstrumentedEngine(engine *Engine, telemetry *TelemetryProvider) (*InstrumentedEngine, error) {
	meter := telemetry.Meter()

	allocateOperations, err := meter.Int64Counter("allocate_operations_total",
		metric.WithDescription("Total number of slot allocation operations"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	releaseOperations, err := meter.Int64Counter("release_operations_total",
		metric.WithDescription("Total number of slot release operations"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	passPurchases, err := meter.Int64Counter("pass_purchases_total",
		metric.WithDescription("Total number of VIP pass purchases"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	occupancyGauge, err := meter.Int64UpDownCounter("parking_lot_occupancy",
		metric.WithDescription("Current number of occupied parking slots"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	feeAmount, err := meter.Int64Histogram("release_fee_amount",
		metric.WithDescription("Fee charged at release"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	operationDuration, err := meter.Float64Histogram("operation_duration_seconds",
		metric.WithDescription("Duration of engine operations"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	totalSlotsGauge, err := meter.Int64UpDownCounter("parking_lot_total_slots",
		metric.WithDescription("Total number of parking slots"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	ie := &InstrumentedEngine{
		Engine:             engine,
		telemetry:          telemetry,
		allocateOperations: allocateOperations,
		releaseOperations:  releaseOperations,
		passPurchases:      passPurchases,
		occupancyGauge:     occupancyGauge,
		feeAmount:          feeAmount,
		operationDuration:  operationDuration,
		totalSlotsGauge:    totalSlotsGauge,
	}

	// Set initial total slots metric
	_, capacity := engine.Occupancy()
	totalSlotsGauge.Add(context.Background(), int64(capacity))

	return ie, nil
}

func (ie *InstrumentedEngine) Allocate(ctx context.Context, req Request) (AllocationResult, error) {
	tracer := ie.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "engine.allocate",
		trace.WithAttributes(
			attribute.String("vehicle.license_plate", req.LicensePlate),
			attribute.String("vehicle.size_class", req.Size.String()),
			attribute.String("customer.type", req.Customer.String()),
			attribute.Bool("vehicle.is_ev", req.IsEV),
		))
	defer span.End()

	start := time.Now()

	span.AddEvent("selecting_slot")

	res, err := ie.Engine.Allocate(req)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "allocate"),
		attribute.String("size_class", req.Size.String()),
		attribute.String("customer_type", req.Customer.String()),
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels, attribute.String("status", "failed"))
		ie.allocateOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	} else {
		labels = append(labels,
			attribute.String("status", "success"),
			attribute.String("section", res.Section.String()),
		)
		span.SetAttributes(
			attribute.String("allocated_slot_id", res.SlotID),
			attribute.String("ticket_id", res.Ticket.ID),
		)
		span.AddEvent("slot_allocated", trace.WithAttributes(
			attribute.String("slot_id", res.SlotID),
		))

		ie.allocateOperations.Add(ctx, 1, metric.WithAttributes(labels...))
		ie.occupancyGauge.Add(ctx, 1)
	}

	ie.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return res, err
}

func (ie *InstrumentedEngine) Release(ctx context.Context, ticketID string) (ReleaseResult, error) {
	tracer := ie.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "engine.release",
		trace.WithAttributes(
			attribute.String("ticket_id", ticketID),
		))
	defer span.End()

	start := time.Now()

	span.AddEvent("releasing_slot")

	res, err := ie.Engine.Release(ticketID)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "release"),
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels, attribute.String("status", "failed"))
	} else {
		labels = append(labels,
			attribute.String("status", "success"),
			attribute.String("size_class", res.Ticket.Size.String()),
			attribute.Bool("pass_used", res.PassUsed),
		)
		span.SetAttributes(
			attribute.String("slot_id", res.SlotID),
			attribute.Int64("fee", res.Fee),
			attribute.Float64("duration_hours", res.Hours),
		)
		span.AddEvent("slot_released")
		ie.occupancyGauge.Add(ctx, -1)
		ie.feeAmount.Record(ctx, res.Fee, metric.WithAttributes(labels...))
	}

	ie.releaseOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	ie.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return res, err
}

func (ie *InstrumentedEngine) PurchasePass(ctx context.Context, customerKey string, size SizeClass) (Pass, error) {
	tracer := ie.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "engine.purchase_pass",
		trace.WithAttributes(
			attribute.String("customer.key", customerKey),
			attribute.String("size_class", size.String()),
		))
	defer span.End()

	start := time.Now()

	pass, err := ie.Engine.PurchasePass(customerKey, size)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "purchase_pass"),
		attribute.String("size_class", size.String()),
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels, attribute.String("status", "failed"))
	} else {
		labels = append(labels, attribute.String("status", "success"))
		span.SetAttributes(
			attribute.String("pass_id", pass.ID),
			attribute.Int64("amount_paid", pass.AmountPaid),
		)
	}

	ie.passPurchases.Add(ctx, 1, metric.WithAttributes(labels...))
	ie.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return pass, err
}

func (ie *InstrumentedEngine) Snapshot(ctx context.Context) []SlotView {
	tracer := ie.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "engine.snapshot")
	defer span.End()

	start := time.Now()

	views := ie.Engine.Snapshot()

	duration := time.Since(start).Seconds()

	occupied := 0
	for _, v := range views {
		if v.Occupied {
			occupied++
		}
	}
	span.SetAttributes(
		attribute.Int("occupied_slots_count", occupied),
		attribute.Int("total_capacity", len(views)),
	)

	labels := []attribute.KeyValue{
		attribute.String("operation", "snapshot"),
		attribute.String("status", "success"),
	}

	ie.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return views
}

func (ie *InstrumentedEngine) FindByPlate(ctx context.Context, plate string) []Ticket {
	tracer := ie.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "engine.find_by_plate",
		trace.WithAttributes(
			attribute.String("license_plate", plate),
		))
	defer span.End()

	start := time.Now()

	tickets := ie.Engine.FindByPlate(plate)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "find_by_plate"),
	}

	if len(tickets) == 0 {
		span.AddEvent("vehicle_not_found")
		labels = append(labels, attribute.String("status", "not_found"))
	} else {
		span.SetAttributes(attribute.Int("active_tickets", len(tickets)))
		labels = append(labels, attribute.String("status", "found"))
	}

	ie.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return tickets
}

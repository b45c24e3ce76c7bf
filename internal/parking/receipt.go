package parking

import "fmt"

// Receipt is the printable record handed back after an allocation or a
// release. It is derived data computed from operation results, never
// consulted by the engine.
type Receipt struct {
	Title        string `json:"title"`
	Ticket       string `json:"ticket"`
	SlotID       string `json:"slot_id"`
	Level        int    `json:"level"`
	Section      string `json:"section"`
	VehicleType  string `json:"vehicle_type"`
	CustomerType string `json:"customer_type"`
	LicensePlate string `json:"license_plate"`
	IsEV         bool   `json:"is_ev"`
	EntryTime    string `json:"entry_time"`
	ReleaseTime  string `json:"release_time,omitempty"`
	DurationHrs  string `json:"duration_hours,omitempty"`
	PricingInfo  string `json:"pricing_info"`
	Fee          string `json:"fee,omitempty"`
	QRCode       string `json:"qr_code"`
}

const receiptTimeLayout = "2006-01-02 15:04:05"

// AllocationReceipt renders the entry receipt for a fresh allocation.
func AllocationReceipt(res AllocationResult, pricing *Pricing, pass *Pass) Receipt {
	t := res.Ticket
	pricingInfo := fmt.Sprintf("Hourly rate: %d (minimum charge %d)",
		pricing.HourlyRate(t.Size), pricing.MinimumCharge())
	if pass != nil {
		pricingInfo = fmt.Sprintf("VIP monthly pass, valid until %s",
			pass.ExpiresAt.Format(receiptTimeLayout))
	}

	return Receipt{
		Title:        "Parking Slot Allocation Receipt",
		Ticket:       t.ID,
		SlotID:       res.SlotID,
		Level:        res.Level,
		Section:      res.Section.String(),
		VehicleType:  t.Size.String(),
		CustomerType: t.Customer.String(),
		LicensePlate: t.LicensePlate,
		IsEV:         t.IsEV,
		EntryTime:    t.EntryTime.Format(receiptTimeLayout),
		PricingInfo:  pricingInfo,
		QRCode:       fmt.Sprintf("PARK-%s-%s", t.ID, t.EntryTime.Format("20060102150405")),
	}
}

// ReleaseReceipt renders the exit receipt with the fee breakdown.
func ReleaseReceipt(res ReleaseResult, slot SlotView) Receipt {
	t := res.Ticket
	pricingInfo := fmt.Sprintf("Total fee: %d", res.Fee)
	if res.PassUsed {
		pricingInfo = "VIP pass active, no parking fee charged"
	}

	return Receipt{
		Title:        "Parking Release Receipt",
		Ticket:       t.ID,
		SlotID:       res.SlotID,
		Level:        slot.Level,
		Section:      slot.Section.String(),
		VehicleType:  t.Size.String(),
		CustomerType: t.Customer.String(),
		LicensePlate: t.LicensePlate,
		IsEV:         t.IsEV,
		EntryTime:    t.EntryTime.Format(receiptTimeLayout),
		ReleaseTime:  t.ReleaseTime.Format(receiptTimeLayout),
		DurationHrs:  fmt.Sprintf("%.2f", res.Hours),
		PricingInfo:  pricingInfo,
		Fee:          fmt.Sprintf("%d", res.Fee),
		QRCode:       fmt.Sprintf("RELEASE-%s-%s", t.ID, t.ReleaseTime.Format("20060102150405")),
	}
}

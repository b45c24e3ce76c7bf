package parking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllocationReceipt(t *testing.T) {
	entry := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	res := AllocationResult{
		Ticket: Ticket{
			ID:           "ABCD1234",
			LicensePlate: "KA01HH1234",
			Size:         SizeMedium,
			Customer:     CustomerRegular,
			SlotID:       "L1-REG-M-01",
			EntryTime:    entry,
		},
		SlotID:  "L1-REG-M-01",
		Level:   1,
		Section: SectionRegular,
	}

	r := AllocationReceipt(res, DefaultPricing(), nil)

	assert.Equal(t, "Parking Slot Allocation Receipt", r.Title)
	assert.Equal(t, "ABCD1234", r.Ticket)
	assert.Equal(t, "L1-REG-M-01", r.SlotID)
	assert.Equal(t, "Medium", r.VehicleType)
	assert.Equal(t, "2026-03-01 10:30:00", r.EntryTime)
	assert.Contains(t, r.PricingInfo, "Hourly rate: 40")
	assert.Equal(t, "PARK-ABCD1234-20260301103000", r.QRCode)
}

func TestAllocationReceiptWithPass(t *testing.T) {
	entry := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	pass := &Pass{ExpiresAt: entry.Add(PassDuration)}
	res := AllocationResult{
		Ticket: Ticket{ID: "ABCD1234", Size: SizeMedium, Customer: CustomerVIP, EntryTime: entry},
	}

	r := AllocationReceipt(res, DefaultPricing(), pass)

	assert.Contains(t, r.PricingInfo, "VIP monthly pass")
	assert.Contains(t, r.PricingInfo, "2026-03-31")
}

func TestReleaseReceipt(t *testing.T) {
	entry := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	release := entry.Add(2*time.Hour + 15*time.Minute)
	res := ReleaseResult{
		Ticket: Ticket{
			ID:           "ABCD1234",
			LicensePlate: "KA01HH1234",
			Size:         SizeMedium,
			EntryTime:    entry,
			ReleaseTime:  release,
			State:        TicketReleased,
		},
		SlotID: "L1-REG-M-01",
		Fee:    120,
		Hours:  2.25,
	}
	slot := SlotView{ID: "L1-REG-M-01", Level: 1, Section: SectionRegular}

	r := ReleaseReceipt(res, slot)

	assert.Equal(t, "Parking Release Receipt", r.Title)
	assert.Equal(t, "120", r.Fee)
	assert.Equal(t, "2.25", r.DurationHrs)
	assert.Contains(t, r.PricingInfo, "Total fee: 120")
	assert.Equal(t, "RELEASE-ABCD1234-20260301121500", r.QRCode)
}

func TestReleaseReceiptWithPass(t *testing.T) {
	res := ReleaseResult{
		Ticket:   Ticket{ID: "ABCD1234", Size: SizeSmall, Customer: CustomerVIP},
		PassUsed: true,
	}

	r := ReleaseReceipt(res, SlotView{})

	assert.Contains(t, r.PricingInfo, "no parking fee charged")
}

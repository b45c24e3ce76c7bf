package parking

import "fmt"

// SizeClass is the physical size category of a vehicle or slot.
// A vehicle may occupy a slot of its own class or any larger class.
type SizeClass int

const (
	SizeSmall SizeClass = iota
	SizeMedium
	SizeLarge
)

func (s SizeClass) String() string {
	switch s {
	case SizeSmall:
		return "Small"
	case SizeMedium:
		return "Medium"
	case SizeLarge:
		return "Large"
	}
	return "Unknown"
}

func (s SizeClass) Code() string {
	switch s {
	case SizeSmall:
		return "S"
	case SizeMedium:
		return "M"
	case SizeLarge:
		return "L"
	}
	return "?"
}

// Fits reports whether a vehicle of class s can occupy a slot of class slot.
func (s SizeClass) Fits(slot SizeClass) bool {
	return slot >= s
}

func ParseSizeClass(v string) (SizeClass, error) {
	switch v {
	case "small", "Small", "S":
		return SizeSmall, nil
	case "medium", "Medium", "M":
		return SizeMedium, nil
	case "large", "Large", "L":
		return SizeLarge, nil
	}
	return 0, fmt.Errorf("%w: unknown size class %q", ErrInvalidRequest, v)
}

// Section is a slot grouping that drives allocation priority.
type Section int

const (
	SectionRegular Section = iota
	SectionVIP
	SectionEV
)

func (s Section) String() string {
	switch s {
	case SectionRegular:
		return "Regular"
	case SectionVIP:
		return "VIP"
	case SectionEV:
		return "EV"
	}
	return "Unknown"
}

func (s Section) Code() string {
	switch s {
	case SectionRegular:
		return "REG"
	case SectionVIP:
		return "VIP"
	case SectionEV:
		return "EV"
	}
	return "?"
}

// CustomerType distinguishes regular customers from VIP members.
type CustomerType int

const (
	CustomerRegular CustomerType = iota
	CustomerVIP
)

func (c CustomerType) String() string {
	switch c {
	case CustomerRegular:
		return "Regular"
	case CustomerVIP:
		return "VIP"
	}
	return "Unknown"
}

func ParseCustomerType(v string) (CustomerType, error) {
	switch v {
	case "regular", "Regular":
		return CustomerRegular, nil
	case "vip", "VIP", "Vip":
		return CustomerVIP, nil
	}
	return 0, fmt.Errorf("%w: unknown customer type %q", ErrInvalidRequest, v)
}

// Request describes one vehicle asking for a slot.
type Request struct {
	LicensePlate string
	Size         SizeClass
	Customer     CustomerType
	IsEV         bool
}

func (r Request) Validate() error {
	if r.LicensePlate == "" {
		return fmt.Errorf("%w: license plate is required", ErrInvalidRequest)
	}
	if r.Size < SizeSmall || r.Size > SizeLarge {
		return fmt.Errorf("%w: unknown size class %d", ErrInvalidRequest, r.Size)
	}
	if r.Customer < CustomerRegular || r.Customer > CustomerVIP {
		return fmt.Errorf("%w: unknown customer type %d", ErrInvalidRequest, r.Customer)
	}
	return nil
}

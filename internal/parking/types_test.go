package parking

import (
	"errors"
	"testing"
)

func TestParseSizeClass(t *testing.T) {
	cases := map[string]SizeClass{
		"small":  SizeSmall,
		"Small":  SizeSmall,
		"medium": SizeMedium,
		"Medium": SizeMedium,
		"large":  SizeLarge,
		"L":      SizeLarge,
	}
	for input, want := range cases {
		got, err := ParseSizeClass(input)
		if err != nil {
			t.Errorf("Unexpected error for %q: %s", input, err.Error())
		}
		if got != want {
			t.Errorf("Expected %s for %q, got %s", want, input, got)
		}
	}

	_, err := ParseSizeClass("gigantic")
	if !errors.Is(err, ErrInvalidRequest) {
		t.Error("Expected invalid request error for unknown size class")
	}
}

func TestParseCustomerType(t *testing.T) {
	for _, input := range []string{"vip", "VIP", "Vip"} {
		got, err := ParseCustomerType(input)
		if err != nil {
			t.Errorf("Unexpected error for %q: %s", input, err.Error())
		}
		if got != CustomerVIP {
			t.Errorf("Expected VIP for %q, got %s", input, got)
		}
	}

	got, err := ParseCustomerType("regular")
	if err != nil || got != CustomerRegular {
		t.Error("Expected regular customer type")
	}

	_, err = ParseCustomerType("platinum")
	if !errors.Is(err, ErrInvalidRequest) {
		t.Error("Expected invalid request error for unknown customer type")
	}
}

func TestSizeClassFits(t *testing.T) {
	if !SizeSmall.Fits(SizeSmall) || !SizeSmall.Fits(SizeMedium) || !SizeSmall.Fits(SizeLarge) {
		t.Error("Expected small vehicles to fit all slot classes")
	}
	if SizeMedium.Fits(SizeSmall) {
		t.Error("Expected medium vehicle not to fit a small slot")
	}
	if SizeLarge.Fits(SizeMedium) {
		t.Error("Expected large vehicle not to fit a medium slot")
	}
}

func TestRequestValidate(t *testing.T) {
	valid := Request{LicensePlate: "KA01HH1234", Size: SizeSmall, Customer: CustomerRegular}
	if err := valid.Validate(); err != nil {
		t.Errorf("Unexpected error: %s", err.Error())
	}

	for _, invalid := range []Request{
		{Size: SizeSmall},
		{LicensePlate: "X", Size: SizeClass(9)},
		{LicensePlate: "X", Size: SizeSmall, Customer: CustomerType(9)},
	} {
		if err := invalid.Validate(); !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("Expected invalid request error for %+v", invalid)
		}
	}
}

package parking

// sectionOrder returns the sections to try, preferred first. Fallback
// order after the preferred section is EV, VIP, Regular with the
// preferred section removed, so every servable request is served before
// NoSlotAvailable is reported.
func sectionOrder(req Request, vipEntitled bool) []Section {
	var preferred Section
	switch {
	case req.IsEV:
		preferred = SectionEV
	case req.Customer == CustomerVIP && vipEntitled:
		preferred = SectionVIP
	default:
		preferred = SectionRegular
	}

	order := []Section{preferred}
	for _, s := range []Section{SectionEV, SectionVIP, SectionRegular} {
		if s != preferred {
			order = append(order, s)
		}
	}
	return order
}

// SelectSlot ranks all Free, size-compatible slots and returns the id of
// the single top-ranked one. Ranking keys, strongest first: preferred
// section, exact size match over an oversized match, lower level, lower
// index. The result is fully determined by the inventory state and the
// request.
func SelectSlot(inv *Inventory, req Request, vipEntitled bool) (string, error) {
	for _, section := range sectionOrder(req, vipEntitled) {
		var best *Slot
		for _, slot := range inv.ListSlots() {
			if slot.Section != section || slot.Status != SlotFree || !req.Size.Fits(slot.Size) {
				continue
			}
			if better(slot, best, req.Size) {
				best = slot
			}
		}
		if best != nil {
			return best.ID, nil
		}
	}
	return "", ErrNoSlotAvailable
}

func better(candidate, current *Slot, want SizeClass) bool {
	if current == nil {
		return true
	}
	candExact := candidate.Size == want
	currExact := current.Size == want
	if candExact != currExact {
		return candExact
	}
	if candidate.Level != current.Level {
		return candidate.Level < current.Level
	}
	if candidate.Size != current.Size {
		return candidate.Size < current.Size
	}
	return candidate.Index < current.Index
}

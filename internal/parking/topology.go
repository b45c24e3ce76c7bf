package parking

// SlotSpec describes one group of identical slots in the static topology.
type SlotSpec struct {
	Level   int
	Section Section
	Size    SizeClass
	Count   int
}

// DefaultTopology mirrors the two-level layout of the original facility:
// every level carries Regular, VIP, and EV sections with slots of all
// three size classes.
func DefaultTopology() []SlotSpec {
	var specs []SlotSpec
	for level := 1; level <= 2; level++ {
		for _, section := range []Section{SectionRegular, SectionVIP, SectionEV} {
			for _, size := range []SizeClass{SizeSmall, SizeMedium, SizeLarge} {
				count := 3
				if section != SectionRegular {
					count = 2
				}
				specs = append(specs, SlotSpec{
					Level:   level,
					Section: section,
					Size:    size,
					Count:   count,
				})
			}
		}
	}
	return specs
}

package parking

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// Shell is the interactive command loop over the engine, used in cli
// mode.
type Shell struct {
	engine  *InstrumentedEngine
	scanner *bufio.Scanner
}

func NewShell(engine *InstrumentedEngine) *Shell {
	return &Shell{
		engine:  engine,
		scanner: bufio.NewScanner(os.Stdin),
	}
}

func (s *Shell) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if !s.scanner.Scan() {
			break
		}

		input := strings.TrimSpace(s.scanner.Text())
		if input == "" {
			continue
		}

		s.processCommand(ctx, input)
	}
}

func (s *Shell) processCommand(ctx context.Context, input string) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return
	}

	command := parts[0]

	switch command {
	case "allocate":
		s.handleAllocate(ctx, parts)
	case "release":
		s.handleRelease(ctx, parts)
	case "pass":
		s.handlePass(ctx, parts)
	case "status":
		s.handleStatus(ctx)
	case "find":
		s.handleFind(ctx, parts)
	case "help":
		s.printHelp()
	default:
		fmt.Printf("Unknown command: %s\n", command)
	}
}

func (s *Shell) printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  allocate <plate> <small|medium|large> <regular|vip> [ev]")
	fmt.Println("  release <ticket>")
	fmt.Println("  pass <plate> <small|medium|large>")
	fmt.Println("  status")
	fmt.Println("  find <plate>")
}

func (s *Shell) handleAllocate(ctx context.Context, parts []string) {
	if len(parts) < 4 || len(parts) > 5 {
		fmt.Println("Usage: allocate <plate> <size> <customer> [ev]")
		return
	}

	size, err := ParseSizeClass(parts[2])
	if err != nil {
		fmt.Println("Invalid size class")
		return
	}
	customer, err := ParseCustomerType(parts[3])
	if err != nil {
		fmt.Println("Invalid customer type")
		return
	}
	isEV := len(parts) == 5 && parts[4] == "ev"

	res, err := s.engine.Allocate(ctx, Request{
		LicensePlate: parts[1],
		Size:         size,
		Customer:     customer,
		IsEV:         isEV,
	})
	if err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return
	}

	fmt.Printf("Allocated slot %s (level %d, %s section), ticket %s\n",
		res.SlotID, res.Level, res.Section, res.Ticket.ID)
}

func (s *Shell) handleRelease(ctx context.Context, parts []string) {
	if len(parts) != 2 {
		fmt.Println("Usage: release <ticket>")
		return
	}

	res, err := s.engine.Release(ctx, parts[1])
	if err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return
	}

	if res.PassUsed {
		fmt.Printf("Slot %s is free, no fee (VIP pass)\n", res.SlotID)
		return
	}
	fmt.Printf("Slot %s is free, fee %d for %.2f hours\n", res.SlotID, res.Fee, res.Hours)
}

func (s *Shell) handlePass(ctx context.Context, parts []string) {
	if len(parts) != 3 {
		fmt.Println("Usage: pass <plate> <size>")
		return
	}

	size, err := ParseSizeClass(parts[2])
	if err != nil {
		fmt.Println("Invalid size class")
		return
	}

	pass, err := s.engine.PurchasePass(ctx, parts[1], size)
	if err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return
	}

	fmt.Printf("Pass %s active until %s\n", pass.ID, pass.ExpiresAt.Format("2006-01-02 15:04"))
}

func (s *Shell) handleStatus(ctx context.Context) {
	views := s.engine.Snapshot(ctx)

	fmt.Println("Slot\t\tStatus\t\tTicket")
	for _, v := range views {
		if v.Occupied {
			fmt.Printf("%s\tOccupied\t%s\n", v.ID, v.TicketID)
		} else {
			fmt.Printf("%s\tFree\n", v.ID)
		}
	}
}

func (s *Shell) handleFind(ctx context.Context, parts []string) {
	if len(parts) != 2 {
		fmt.Println("Usage: find <plate>")
		return
	}

	tickets := s.engine.FindByPlate(ctx, parts[1])
	if len(tickets) == 0 {
		fmt.Println("Not found")
		return
	}

	for _, t := range tickets {
		fmt.Printf("%s -> slot %s since %s\n", t.ID, t.SlotID, t.EntryTime.Format("2006-01-02 15:04"))
	}
}

// Package cli is the text menu front end of the inventory.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	ierrors "github.com/abgdnv/inventory/internal/errors"
	"github.com/abgdnv/inventory/internal/inventory"
	"github.com/abgdnv/inventory/internal/logger"
	"github.com/google/uuid"
)

const (
	clearSequence = "\033[H\033[2J"
	doubleRule    = "============================================="
	singleRule    = "---------------------------------------------"
	timeLayout    = "2006-01-02 15:04:05"
)

// Options tunes the menu presentation.
type Options struct {
	// ClearScreen clears the terminal before each report.
	ClearScreen bool
	// Now returns the report timestamp. Defaults to time.Now.
	Now func() time.Time
}

// Menu is an interactive session over an Inventory.
type Menu struct {
	inv    *inventory.Inventory
	in     io.Reader
	out    io.Writer
	logger *slog.Logger
	opts   Options
}

// NewMenu creates a menu reading choices from in and writing to out.
func NewMenu(inv *inventory.Inventory, in io.Reader, out io.Writer, logger *slog.Logger, opts Options) *Menu {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Menu{
		inv:    inv,
		in:     in,
		out:    out,
		logger: logger.With("component", "cli"),
		opts:   opts,
	}
}

// Run shows the report and options until the user exits, the input ends or
// ctx is cancelled. End of input is a normal exit and returns nil.
func (m *Menu) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	ctx = logger.WithSessionID(ctx, uuid.NewString())
	m.logger.InfoContext(ctx, "Session started")
	defer m.logger.InfoContext(ctx, "Session ended")

	lines := m.readLines(ctx)
	for {
		m.clear()
		m.displayInventory()
		m.printf("Options:\n")
		m.printf("1. Refresh product data from the store\n")
		m.printf("2. Add stock to a product\n")
		m.printf("3. Exit\n")

		choice, err := m.prompt(ctx, lines, "Enter your choice: ")
		if err != nil {
			return m.finish(err)
		}

		switch strings.TrimSpace(choice) {
		case "1":
			m.refresh(ctx)
		case "2":
			if err := m.addStock(ctx, lines); err != nil {
				return m.finish(err)
			}
		case "3":
			m.printf("Exiting application. Goodbye!\n")
			return nil
		default:
			m.printf("Invalid choice. Please try again.\n")
		}
	}
}

func (m *Menu) refresh(ctx context.Context) {
	m.printf("Refreshing data from the store...\n")
	report, err := m.inv.LoadFromStore(ctx)
	if err != nil {
		m.printf("Error: %v\n", err)
		return
	}
	if len(report.Skipped) > 0 {
		m.printf("Skipped %d invalid product record(s).\n", len(report.Skipped))
	}
}

func (m *Menu) addStock(ctx context.Context, lines <-chan string) error {
	id, err := m.prompt(ctx, lines, "Enter product ID to add stock: ")
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	raw, err := m.prompt(ctx, lines, "Enter quantity to add: ")
	if err != nil {
		return err
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		m.logger.DebugContext(ctx, "Rejected quantity input", "input", raw)
		m.printf("Error: quantity must be a whole number, got %q\n", strings.TrimSpace(raw))
		return nil
	}

	err = m.inv.AddStock(ctx, id, quantity)
	switch {
	case err == nil:
		m.printf("Added %d to product %s.\n", quantity, id)
	case errors.Is(err, ierrors.ErrProductNotFound):
		m.printf("Product with ID '%s' not found.\n", id)
	default:
		m.printf("Error: %v\n", err)
	}
	return nil
}

func (m *Menu) displayInventory() {
	m.printf("%s\n", doubleRule)
	m.printf("    Inventory Report as of %s\n", m.opts.Now().Format(timeLayout))
	m.printf("%s\n", doubleRule)
	m.printf("%-5s %-20s %-10s %-5s\n", "ID", "Product Name", "Price", "Stock")
	m.printf("%s\n", singleRule)

	products := m.inv.GetAllProducts()
	if len(products) == 0 {
		m.printf("No products in inventory.\n")
	}
	for _, p := range products {
		m.printf("%-5s %-20s %-10s %-5d\n", p.ID(), p.Name(), FormatCurrency(p.Price()), p.Stock())
	}
	m.printf("%s\n\n", doubleRule)
}

// prompt writes label and waits for the next input line.
func (m *Menu) prompt(ctx context.Context, lines <-chan string, label string) (string, error) {
	m.printf("%s", label)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	}
}

// readLines feeds input lines to the returned channel until the input ends or ctx is done.
func (m *Menu) readLines(ctx context.Context) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(m.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			m.logger.WarnContext(ctx, "Failed to read input", "error", err)
		}
	}()
	return lines
}

func (m *Menu) finish(err error) error {
	if errors.Is(err, io.EOF) {
		m.printf("\nInput closed. Goodbye!\n")
		return nil
	}
	return err
}

func (m *Menu) clear() {
	if m.opts.ClearScreen {
		m.printf(clearSequence)
	}
}

func (m *Menu) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(m.out, format, args...)
}

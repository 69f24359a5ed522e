package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simonvc/erpview/internal/client"
	"github.com/simonvc/erpview/internal/ledger"
)

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-2]) + ".."
}

func blankZero(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return ledger.FormatAmount(d)
}

// dateOrToday returns s, or today's date when s is blank.
func dateOrToday(s string) string {
	if strings.TrimSpace(s) == "" {
		return time.Now().Format(ledger.DateLayout)
	}
	return s
}

func parseID(kind, arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, arg)
	}
	return id, nil
}

// deleted reports the outcome of a delete call, turning a 404 into a
// readable error.
func deleted(kind string, id int64, err error) error {
	if client.IsNotFound(err) {
		return fmt.Errorf("%s %d not found", kind, id)
	}
	if err != nil {
		return err
	}
	fmt.Printf("%s %d deleted\n", strings.ToUpper(kind[:1])+kind[1:], id)
	return nil
}

// optionalID returns nil for an unset id flag.
func optionalID(id int64) *int64 {
	if id <= 0 {
		return nil
	}
	return &id
}

func nameOr(names map[int64]string, id int64) string {
	if name, ok := names[id]; ok {
		return name
	}
	return fmt.Sprintf("#%d", id)
}

package repository

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// FirstQuotationSequence is the sequence given to the first quotation of a prefix.
const FirstQuotationSequence = 101

// NextQuotationNumber returns the number following previous, e.g. RLE-107 -> RLE-108.
// An empty or unparseable previous number starts the series at PREFIX-101.
func NextQuotationNumber(prefix, previous string) string {
	seq, ok := ParseQuotationSequence(prefix, previous)
	if !ok {
		return fmt.Sprintf("%s-%d", prefix, FirstQuotationSequence)
	}
	return fmt.Sprintf("%s-%d", prefix, seq+1)
}

// ParseQuotationSequence extracts the numeric part of a PREFIX-n quotation number.
func ParseQuotationSequence(prefix, number string) (int, bool) {
	rest, found := strings.CutPrefix(number, prefix+"-")
	if !found {
		return 0, false
	}
	seq, err := strconv.Atoi(rest)
	if err != nil || seq < 0 {
		return 0, false
	}
	return seq, true
}

// notFound maps gorm's sentinel onto ErrNotFound and wraps everything else.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}

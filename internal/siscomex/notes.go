// Package siscomex scrapes monetary mentions out of the free-text
// "informacao complementar" block of a DI. The source text format is not
// guaranteed stable, so everything here is best-effort: no match is never
// an error.
package siscomex

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kmee/trade-import/internal/money"
)

// brlAmount matches a Brazilian-formatted amount: thousands separator ".",
// decimal separator ",".
const brlAmount = `([0-9][0-9.]*,[0-9]{2})`

// TaxLabel is the label of the recurring SISCOMEX administrative fee line
const TaxLabel = "TAXA SISCOMEX"

// AFRMMLabel is the label of the merchant-marine freight surcharge line
const AFRMMLabel = "AFRMM"

var calcLine = regexp.MustCompile(`(?m)^\s*([A-ZÀ-ÜÇ][A-ZÀ-ÜÇ0-9 /()-]*?)[.\s]*:[.\s]*R?\$?\s*` + brlAmount + `\s*$`)

// SumTaxMentions sums every SISCOMEX tax mention in the text. Zero when
// the fee line is absent.
func SumTaxMentions(text string) decimal.Decimal {
	return SumLabeledAmounts(text, TaxLabel)
}

// SumLabeledAmounts sums every occurrence of the given label followed by a
// BRL-formatted amount. Unparsable matches are skipped.
func SumLabeledAmounts(text, label string) decimal.Decimal {
	re := regexp.MustCompile(regexp.QuoteMeta(label) + `[.\s]*:?[.\s]*R?\$?\s*` + brlAmount)
	total := decimal.Zero
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		amount, err := money.ParseBRL(m[1])
		if err != nil {
			continue
		}
		total = total.Add(amount)
	}
	return total
}

// ExtractCalcTable pulls the labeled block of computed values out of the
// text, one entry per "LABEL....: R$ amount" line. Returns an empty map
// when no such block exists. Diagnostic only: an incomplete table is not
// reported back as an error.
func ExtractCalcTable(text string) map[string]decimal.Decimal {
	table := make(map[string]decimal.Decimal)
	for _, m := range calcLine.FindAllStringSubmatch(text, -1) {
		label := strings.TrimRight(strings.TrimSpace(m[1]), ". ")
		if label == "" {
			continue
		}
		amount, err := money.ParseBRL(m[2])
		if err != nil {
			continue
		}
		table[label] = table[label].Add(amount)
	}
	return table
}

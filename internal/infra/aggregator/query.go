package aggregator

import (
	"fmt"
	"strings"
	"time"

	"github.com/T3chfalcon/offsec-radar/internal/domain"
)

// defaultTerms is the broad disjunction used when no explicit query is
// given. The provider rejects queries with more than
// domain.MaxQueryOperators OR-joined terms, so the list is capped at build
// time rather than trusted by inspection.
var defaultTerms = []string{"security", "pentest", "vulnerability", "scanner", "forensics"}

// BuildQuery constructs the provider query string (unencoded; the transport
// layer handles escaping). An explicit user query takes precedence over the
// default disjunction.
func BuildQuery(query string, filters domain.FilterParams) string {
	var sb strings.Builder

	query = strings.TrimSpace(query)
	if query != "" {
		sb.WriteString(query)
	} else {
		terms := defaultTerms
		if len(terms) > domain.MaxQueryOperators {
			terms = terms[:domain.MaxQueryOperators]
		}
		sb.WriteString(strings.Join(terms, " OR "))
	}

	if filters.MinStars > 0 {
		fmt.Fprintf(&sb, " stars:>=%d", filters.MinStars)
	}
	if filters.Language != "" {
		fmt.Fprintf(&sb, " language:%s", filters.Language)
	}
	if !filters.UpdatedAfter.IsZero() {
		fmt.Fprintf(&sb, " pushed:>=%s", filters.UpdatedAfter.Format(time.DateOnly))
	}
	for _, topic := range filters.Topics {
		fmt.Fprintf(&sb, " topic:%s", topic)
	}

	return sb.String()
}

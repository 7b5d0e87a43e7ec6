package aggregator

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/T3chfalcon/offsec-radar/internal/domain"
)

func TestBuildQuery_DefaultTermsRespectOperatorCeiling(t *testing.T) {
	q := BuildQuery("", domain.FilterParams{})

	assert.Equal(t, "security OR pentest OR vulnerability OR scanner OR forensics", q)
	assert.LessOrEqual(t, len(strings.Split(q, " OR ")), domain.MaxQueryOperators)
}

func TestBuildQuery_UserQueryTakesPrecedence(t *testing.T) {
	q := BuildQuery("nmap", domain.FilterParams{})
	assert.Equal(t, "nmap", q)
	assert.NotContains(t, q, " OR ")
}

func TestBuildQuery_Filters(t *testing.T) {
	filters := domain.FilterParams{
		MinStars:     500,
		Language:     "Go",
		UpdatedAfter: time.Date(2026, 6, 30, 12, 0, 0, 0, time.UTC),
		Topics:       []string{"security", "osint"},
	}

	q := BuildQuery("recon", filters)

	assert.Equal(t, "recon stars:>=500 language:Go pushed:>=2026-06-30 topic:security topic:osint", q)
}

func TestBuildQuery_ZeroFiltersAddNothing(t *testing.T) {
	q := BuildQuery("nuclei", domain.FilterParams{})
	assert.Equal(t, "nuclei", q)
}

func TestBuildQuery_TrimsWhitespaceQuery(t *testing.T) {
	q := BuildQuery("   ", domain.FilterParams{MinStars: 10})
	assert.Equal(t, "security OR pentest OR vulnerability OR scanner OR forensics stars:>=10", q)
}

package cloudsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-campus-sync/internal/scraper"
)

func TestParseRow(t *testing.T) {
	rec := ParseRow("宁德时代\t研发工程师\t2026届\t2025-10-31\thttps://careers.catl.com/apply", "CloudSheet")
	require.NotNil(t, rec)

	assert.Equal(t, "宁德时代", rec[scraper.FieldCompany])
	assert.Equal(t, "研发工程师", rec[scraper.FieldPosition])
	assert.Equal(t, "2026届", rec[scraper.FieldTargetClass])
	assert.Equal(t, "2025-10-31", rec[scraper.FieldDeadlineText])
	assert.Equal(t, "https://careers.catl.com/apply", rec[scraper.FieldApplyURL])
	assert.Equal(t, "CloudSheet", rec[scraper.FieldSource])
}

func TestParseRowSkipsNonPostings(t *testing.T) {
	assert.Nil(t, ParseRow("", "CloudSheet"))
	assert.Nil(t, ParseRow("工具栏", "CloudSheet"))
	assert.Nil(t, ParseRow("公司\t岗位\t届别", "CloudSheet"))
}

func TestParseRowEmptyCellsCollapsed(t *testing.T) {
	rec := ParseRow(" 比亚迪 \t\t 电池工程师 \t\t2025/11/15", "CloudSheet")
	require.NotNil(t, rec)

	assert.Equal(t, "比亚迪", rec[scraper.FieldCompany])
	assert.Equal(t, "电池工程师", rec[scraper.FieldPosition])
	assert.Equal(t, "2025/11/15", rec[scraper.FieldDeadlineText])
}

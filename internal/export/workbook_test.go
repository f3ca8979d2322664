package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tgienger/studyhub/internal/catalog"
	"github.com/tgienger/studyhub/internal/topics"
)

func TestWriteProgress(t *testing.T) {
	cat, err := catalog.Load("", nil)
	require.NoError(t, err)

	three, _ := cat.Topic("3")
	require.NoError(t, cat.ApplyTopic(topics.Advance(three, time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC))))

	var buf bytes.Buffer
	require.NoError(t, WriteProgress(&buf, cat))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SubjectsSheet, TopicsSheet}, f.GetSheetList())

	subjects, err := f.GetRows(SubjectsSheet)
	require.NoError(t, err)
	require.Len(t, subjects, 4)
	assert.Equal(t, subjectHeaders, subjects[0])
	assert.Equal(t, []string{"Mathematics", "0580", "Cambridge", "31", "48", "65"}, subjects[1])

	rows, err := f.GetRows(TopicsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, topicHeaders, rows[0])
	assert.Equal(t, []string{
		"Mathematics", "1.1", "Number Operations", "Number", "Completed", "Core", "45", "2024-01-15", "foundation, important",
	}, rows[1])

	ratio := rows[3]
	assert.Equal(t, "Ratio and Proportion", ratio[2])
	assert.Equal(t, "In Progress", ratio[4])
	assert.Equal(t, "2024-02-01", ratio[7])
}

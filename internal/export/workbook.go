// Package export writes the student's progress to a spreadsheet.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/tgienger/studyhub/internal/catalog"
	"github.com/tgienger/studyhub/internal/models"
)

const (
	SubjectsSheet = "Subjects"
	TopicsSheet   = "Topics"
)

var (
	subjectHeaders = []string{"Subject", "Syllabus Code", "Exam Board", "Completed", "Total", "Progress %"}
	topicHeaders   = []string{"Subject", "Reference", "Title", "Chapter", "Status", "Difficulty", "Minutes", "Last Studied", "Tags"}
)

// WriteProgress renders subjects and topics from the catalog as an .xlsx workbook.
func WriteProgress(w io.Writer, cat *catalog.Catalog) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SubjectsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(TopicsSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	subjects := cat.Subjects()
	rows := make([][]any, len(subjects))
	for i, s := range subjects {
		rows[i] = []any{s.Name, s.SyllabusCode, s.ExamBoard.String(), s.CompletedTopics, s.TotalTopics, s.Progress}
	}
	if err := writeSheet(f, SubjectsSheet, subjectHeaders, rows, bold); err != nil {
		return err
	}

	all := cat.Topics()
	rows = make([][]any, len(all))
	for i, t := range all {
		rows[i] = topicRow(cat, t)
	}
	if err := writeSheet(f, TopicsSheet, topicHeaders, rows, bold); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func topicRow(cat *catalog.Catalog, t models.Topic) []any {
	subject := t.SubjectID
	if s, ok := cat.Subject(t.SubjectID); ok {
		subject = s.Name
	}
	studied := ""
	if t.LastStudied != nil {
		studied = t.LastStudied.Local().Format("2006-01-02")
	}
	return []any{
		subject, t.SyllabusReference, t.Title, t.Chapter, t.Status.Label(),
		t.Difficulty.String(), t.EstimatedTime, studied, strings.Join(t.UserTags, ", "),
	}
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]any, headerStyle int) error {
	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}

	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("%s header style: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// Package report renders attempt results as a spreadsheet.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jobhub/assessment/internal/domain/results"
)

const (
	SummarySheet = "Summary"
	ReviewSheet  = "Review"
)

var reviewHeader = []any{
	"Question ID", "Type", "Question", "Your answer", "Correct answer",
	"Correct", "Explanation", "Sample answer", "Key points", "Feedback", "Evaluation error",
}

// WriteXLSX writes a workbook with a summary sheet and one review row per question.
func WriteXLSX(w io.Writer, s results.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return err
	}

	summaryRows := [][]any{
		{"Skills", strings.Join(s.SkillsAssessed, ", ")},
		{"Multiple choice correct", fmt.Sprintf("%d/%d", s.MCQ.Correct, s.MCQ.Total)},
		{"Multiple choice score (%)", s.MCQ.Score},
		{"Short answer questions", s.ShortAnswerCount},
		{"Completion (%)", s.Completion},
	}
	for i, row := range summaryRows {
		if err := setRow(f, SummarySheet, i+1, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(ReviewSheet); err != nil {
		return err
	}
	if err := setRow(f, ReviewSheet, 1, reviewHeader); err != nil {
		return err
	}
	for i, item := range s.Review {
		row := []any{
			item.QuestionID,
			string(item.Type),
			item.Prompt,
			item.UserAnswer,
			item.CorrectAnswer,
			yesNo(item.Correct, item.CorrectAnswer != ""),
			item.Explanation,
			item.SampleAnswer,
			strings.Join(item.KeyPoints, "\n"),
			item.Feedback,
			yesNo(item.EvaluationError, item.Feedback != ""),
		}
		if err := setRow(f, ReviewSheet, i+2, row); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func yesNo(v, applicable bool) string {
	switch {
	case !applicable:
		return ""
	case v:
		return "yes"
	default:
		return "no"
	}
}

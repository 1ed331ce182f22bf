package batch

import (
	"fmt"
	"strings"

	"github.com/tealeg/xlsx"

	apperrors "github.com/Lorak9904/RhetorAI/internal/app/errors"
)

var resultHeaders = []string{
	"File",
	"Score",
	"Analysis",
	"Tips",
	"Filler Words",
	"Words Per Minute",
	"Attempts",
	"Elapsed (s)",
	"Error",
}

// ToExcel writes one row per item plus a summary sheet to outputFilePath
func ToExcel(items []Item, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Feedback")
	if err != nil {
		return apperrors.Wrap(apperrors.ErrFileWriteFailed, err.Error())
	}

	headerRow := sheet.AddRow()
	for _, h := range resultHeaders {
		headerRow.AddCell().Value = h
	}

	for _, it := range items {
		row := sheet.AddRow()
		row.AddCell().Value = it.Name

		var score, analysisText, tips, fillers, wpm, attempts string
		if it.Result != nil {
			attempts = fmt.Sprint(it.Result.Attempts)
			if fb := it.Result.Feedback; fb != nil {
				score = fmt.Sprintf("%g", fb.Score)
				analysisText = fb.Analysis
				tips = strings.Join(fb.Tips, "\n")
			}
			if d := it.Result.Disfluency; d != nil {
				fillers = fmt.Sprint(d.FillerCount)
				if d.SpeechRate > 0 {
					wpm = fmt.Sprintf("%.1f", d.WordsPerMinute())
				}
			}
		}

		errMsg := ""
		if it.Err != nil {
			errMsg = it.Err.Error()
		}

		row.AddCell().Value = score
		row.AddCell().Value = analysisText
		row.AddCell().Value = tips
		row.AddCell().Value = fillers
		row.AddCell().Value = wpm
		row.AddCell().Value = attempts
		row.AddCell().Value = fmt.Sprintf("%.2f", it.Elapsed.Seconds())
		row.AddCell().Value = errMsg
	}

	if err := addSummarySheet(file, Summarize(items)); err != nil {
		return err
	}

	if err := file.Save(outputFilePath); err != nil {
		return apperrors.Wrapf(apperrors.ErrFileWriteFailed, "%s: %v", outputFilePath, err)
	}
	return nil
}

func addSummarySheet(file *xlsx.File, s Summary) error {
	sheet, err := file.AddSheet("Summary")
	if err != nil {
		return apperrors.Wrap(apperrors.ErrFileWriteFailed, err.Error())
	}

	add := func(label, value string) {
		row := sheet.AddRow()
		row.AddCell().Value = label
		row.AddCell().Value = value
	}

	add("Total", fmt.Sprint(s.Total))
	add("Succeeded", fmt.Sprint(s.Succeeded))
	add("Failed", fmt.Sprint(s.Failed))
	add("Average Score", fmt.Sprintf("%.1f", s.AverageScore))
	if s.Best != nil {
		add("Best", fmt.Sprintf("%s (%g)", s.Best.Name, s.Best.Result.Feedback.Score))
		add("Worst", fmt.Sprintf("%s (%g)", s.Worst.Name, s.Worst.Result.Feedback.Score))
	}
	return nil
}

package export

import (
	"archive/zip"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/abhisek/papergen/internal/bank"
	"github.com/abhisek/papergen/internal/selection"
)

func paperResult() selection.Result {
	return selection.Result{
		Questions: []bank.Question{
			{ID: "s1", Text: "Define resistance.", Topic: "physics", Difficulty: bank.DifficultyEasy, Type: bank.TypeText, Marks: 2, Unit: "unit1"},
			{ID: "s2", Text: "State Hooke's law.", Topic: "physics", Difficulty: bank.DifficultyEasy, Type: bank.TypeText, Marks: 2, Unit: "unit1"},
			{ID: "l1", Text: "Derive the lens maker's equation.", Topic: "physics", Difficulty: bank.DifficultyHard, Type: bank.TypeEssay, Marks: 16, Unit: "unit2"},
			{ID: "l2", Text: "Explain the photoelectric effect in detail.", Topic: "physics", Difficulty: bank.DifficultyHard, Type: bank.TypeEssay, Marks: 16, Unit: "unit2"},
		},
		TargetMarks:   36,
		AchievedMarks: 36,
		ChoiceOptions: 2,
	}
}

func TestBuildPaper_SectionsAscendingWithChoice(t *testing.T) {
	p := BuildPaper(paperResult(), DefaultLayout())

	require.Len(t, p.Sections, 2)
	assert.Equal(t, "Section A", p.Sections[0].Name)
	assert.Equal(t, 2, p.Sections[0].MarksEach)
	assert.Equal(t, "Section B", p.Sections[1].Name)
	assert.Equal(t, 16, p.Sections[1].MarksEach)

	// Short answers get one question per slot.
	require.Len(t, p.Sections[0].Groups, 2)
	assert.Len(t, p.Sections[0].Groups[0], 1)
	assert.Contains(t, p.Sections[0].Instruction, "Answer all questions")

	// The long-answer section is chunked into internal-choice pairs.
	require.Len(t, p.Sections[1].Groups, 1)
	assert.Len(t, p.Sections[1].Groups[0], 2)
	assert.Contains(t, p.Sections[1].Instruction, "any one alternative")

	assert.Equal(t, 36, p.TotalMarks)
}

func TestBuildPaper_NoChoiceOptions(t *testing.T) {
	res := paperResult()
	res.ChoiceOptions = 0
	p := BuildPaper(res, DefaultLayout())

	require.Len(t, p.Sections, 2)
	assert.Len(t, p.Sections[1].Groups, 2)
	assert.Contains(t, p.Sections[1].Instruction, "Answer all questions")
}

func TestBuildPaper_TotalMarksFallsBackToSum(t *testing.T) {
	res := paperResult()
	res.TargetMarks = 0
	p := BuildPaper(res, Layout{Title: "t"})
	assert.Equal(t, 2+2+16+16, p.TotalMarks)
}

func TestBuildPaper_LayoutTotalWins(t *testing.T) {
	p := BuildPaper(paperResult(), Layout{Title: "t", TotalMarks: 100})
	assert.Equal(t, 100, p.TotalMarks)
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	qs := paperResult().Questions
	qs[0].Keywords = []string{"ohm", "circuits"}
	require.NoError(t, WriteCSV(path, qs))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 5)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "s1", rows[1][0])
	assert.Equal(t, "Define resistance.", rows[1][1])
	assert.Equal(t, "ohm, circuits", rows[1][5])
	assert.Equal(t, "2", rows[1][6])
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteXLSX(path, paperResult().Questions))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)
	got, err := f.GetCellValue(sheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Define resistance.", got)

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	assert.Len(t, rows, 5)
}

func TestWritePDF_ProducesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	p := BuildPaper(paperResult(), DefaultLayout())
	require.NoError(t, WritePDF(path, p))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"), "missing pdf magic")
	assert.Greater(t, len(data), 500)
}

func TestWriteDOCX_ContainsQuestions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.docx")
	p := BuildPaper(paperResult(), DefaultLayout())
	require.NoError(t, WriteDOCX(path, p))

	archive, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer archive.Close()

	var doc string
	for _, part := range archive.File {
		if part.Name == "word/document.xml" {
			r, err := part.Open()
			require.NoError(t, err)
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			r.Close()
			doc = string(data)
		}
	}
	require.NotEmpty(t, doc, "word/document.xml part missing")
	assert.Contains(t, doc, "Define resistance.")
	assert.Contains(t, doc, "Derive the lens maker's equation.")
	assert.Contains(t, doc, "Section B")
}

func TestExport_DispatchAndUnsupported(t *testing.T) {
	dir := t.TempDir()
	res := paperResult()

	require.NoError(t, Export(filepath.Join(dir, "a.csv"), res, DefaultLayout()))
	require.NoError(t, Export(filepath.Join(dir, "a.pdf"), res, DefaultLayout()))

	err := Export(filepath.Join(dir, "a.html"), res, DefaultLayout())
	var unsupported *UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, ".html", unsupported.Ext)
}

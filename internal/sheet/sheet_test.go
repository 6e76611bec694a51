package sheet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"codeberg.org/snonux/sheettrans/internal/table"
	"codeberg.org/snonux/sheettrans/internal/testutil"
)

func values(t *testing.T, ds *table.Dataset, column string) []table.Cell {
	t.Helper()
	cells, err := ds.Column(column)
	require.NoError(t, err)
	return cells
}

func TestLoadCSV(t *testing.T) {
	path := testutil.CreateCSV(t, "greetings.csv", "\ufeffID,Greeting,\n1,Hello,x\n2,,\n3,Goodbye\n")

	wb, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"greetings"}, wb.Names())

	ds, _ := wb.Sheet("greetings")
	assert.Equal(t, []string{"ID", "Greeting", "Unnamed: 2"}, ds.Columns())
	assert.Equal(t, 3, ds.Rows())
	assert.Equal(t, []table.Cell{table.Text("Hello"), table.Null(), table.Text("Goodbye")}, values(t, ds, "Greeting"))
	assert.Equal(t, []table.Cell{table.Text("x"), table.Null(), table.Null()}, values(t, ds, "Unnamed: 2"))
}

func TestLoadTSV(t *testing.T) {
	path := testutil.CreateCSV(t, "data.tsv", "A\tB\n1\ttwo words\n")

	wb, err := Load(path)
	require.NoError(t, err)

	ds, _ := wb.Sheet("data")
	assert.Equal(t, []table.Cell{table.Text("two words")}, values(t, ds, "B"))
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	unsupported := filepath.Join(dir, "notes.txt")
	testutil.CreateTestFile(t, unsupported, []byte("hello"))
	_, err := Load(unsupported)
	assert.ErrorIs(t, err, ErrFileFormat)

	corrupt := filepath.Join(dir, "broken.xlsx")
	testutil.CreateTestFile(t, corrupt, []byte("this is not a zip archive"))
	_, err = Load(corrupt)
	assert.ErrorIs(t, err, ErrFileFormat)

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, corrupt, formatErr.Path)

	empty := filepath.Join(dir, "empty.csv")
	testutil.CreateTestFile(t, empty, nil)
	_, err = Load(empty)
	assert.ErrorIs(t, err, ErrFileFormat)

	_, err = Load(filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrFileFormat)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"unique", []string{"A", "B"}, []string{"A", "B"}},
		{"blank", []string{"A", " ", ""}, []string{"A", "Unnamed: 1", "Unnamed: 2"}},
		{"duplicates", []string{"A", "A", "A"}, []string{"A", "A.1", "A.2"}},
		{"duplicate collides", []string{"A", "A.1", "A"}, []string{"A", "A.1", "A.2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeHeader(tt.in))
		})
	}
}

func TestCSVRoundTrip(t *testing.T) {
	path := testutil.CreateCSV(t, "in.csv", "Name,Note\nä,\"comma, inside\"\n,\n")

	wb, err := Load(path)
	require.NoError(t, err)

	out := filepath.Join(filepath.Dir(path), "out.csv")
	require.NoError(t, Save(out, wb))

	testutil.AssertFileContent(t, out, []byte("\ufeffName,Note\nä,\"comma, inside\"\n,\n"))

	again, err := Load(out)
	require.NoError(t, err)
	ds, _ := again.Sheet("out")
	assert.Equal(t, []string{"Name", "Note"}, ds.Columns())
	assert.Equal(t, []table.Cell{table.Text("ä"), table.Null()}, values(t, ds, "Name"))
}

func TestBlankHeaderColumnSurvives(t *testing.T) {
	t.Run("csv", func(t *testing.T) {
		path := testutil.CreateCSV(t, "notes.csv", "Name\nHello,keep me\nBye\n")

		wb, err := Load(path)
		require.NoError(t, err)
		ds, _ := wb.Sheet("notes")
		assert.Equal(t, []string{"Name", "Unnamed: 1"}, ds.Columns())

		out := OutputPath(path)
		require.NoError(t, Save(out, wb))
		testutil.AssertFileContent(t, out, []byte("\ufeffName,Unnamed: 1\nHello,keep me\nBye,\n"))
	})

	t.Run("xlsx", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.xlsx")
		f := excelize.NewFile()
		require.NoError(t, f.SetCellValue("Sheet1", "A1", "Name"))
		require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Hello", "keep me"}))
		require.NoError(t, f.SaveAs(path))
		require.NoError(t, f.Close())

		wb, err := Load(path)
		require.NoError(t, err)
		ds, _ := wb.Sheet("Sheet1")
		assert.Equal(t, []string{"Name", "Unnamed: 1"}, ds.Columns())

		out := OutputPath(path)
		require.NoError(t, Save(out, wb))

		saved, err := excelize.OpenFile(out)
		require.NoError(t, err)
		defer saved.Close()
		rows, err := saved.GetRows("Sheet1")
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"Name", "Unnamed: 1"}, {"Hello", "keep me"}}, rows)
	})
}

func TestSaveCSVRejectsMultipleSheets(t *testing.T) {
	wb := table.NewWorkbook()
	wb.Add("a", table.NewDataset(0))
	wb.Add("b", table.NewDataset(0))

	err := Save(filepath.Join(t.TempDir(), "out.csv"), wb)
	assert.Error(t, err)
}

func createWorkbook(t *testing.T, path string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Greetings"))
	require.NoError(t, f.SetSheetRow("Greetings", "A1", &[]interface{}{"ID", "Greeting"}))
	require.NoError(t, f.SetSheetRow("Greetings", "A2", &[]interface{}{1, "Hello"}))
	require.NoError(t, f.SetCellValue("Greetings", "A3", 2))
	require.NoError(t, f.SetSheetRow("Greetings", "A4", &[]interface{}{3, "Goodbye"}))

	_, err := f.NewSheet("Other")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Other", "A1", &[]interface{}{"Word"}))
	require.NoError(t, f.SetSheetRow("Other", "A2", &[]interface{}{"cat"}))

	require.NoError(t, f.SaveAs(path))
}

func TestXLSXRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	createWorkbook(t, path)

	wb, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"Greetings", "Other"}, wb.Names())

	ds, _ := wb.Sheet("Greetings")
	assert.Equal(t, []string{"ID", "Greeting"}, ds.Columns())
	assert.Equal(t, []table.Cell{table.Text("Hello"), table.Null(), table.Text("Goodbye")}, values(t, ds, "Greeting"))

	require.NoError(t, ds.Insert("Greeting_translated", []table.Cell{table.Text("你好"), table.Text(""), table.Text("再见")}))

	out := OutputPath(path)
	require.NoError(t, Save(out, wb))

	saved, err := Load(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"Greetings", "Other"}, saved.Names())

	got, _ := saved.Sheet("Greetings")
	assert.Equal(t, []string{"ID", "Greeting", "Greeting_translated"}, got.Columns())
	assert.Equal(t, []table.Cell{table.Text("你好"), table.Null(), table.Text("再见")}, values(t, got, "Greeting_translated"))

	other, _ := saved.Sheet("Other")
	assert.Equal(t, []table.Cell{table.Text("cat")}, values(t, other, "Word"))
}

func TestSQLiteRoundTrip(t *testing.T) {
	dir := t.TempDir()

	wb := table.NewWorkbook()
	ds, err := table.FromRecords([]string{"id", "text"}, [][]table.Cell{
		{table.Text("1"), table.Text("Hello")},
		{table.Text("2"), table.Null()},
	})
	require.NoError(t, err)
	wb.Add("phrases", ds)

	path := filepath.Join(dir, "phrases.db")
	require.NoError(t, Save(path, wb))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"phrases"}, loaded.Names())

	got, _ := loaded.Sheet("phrases")
	assert.Equal(t, []string{"id", "text"}, got.Columns())
	assert.Equal(t, []table.Cell{table.Text("Hello"), table.Null()}, values(t, got, "text"))
}

func TestOutputPath(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "report.xlsx")

	assert.Equal(t, filepath.Join(dir, "report_translated.xlsx"), OutputPath(input))

	testutil.CreateTestFile(t, filepath.Join(dir, "report_translated.xlsx"), nil)
	assert.Equal(t, filepath.Join(dir, "report_translated_1.xlsx"), OutputPath(input))

	testutil.CreateTestFile(t, filepath.Join(dir, "report_translated_1.xlsx"), nil)
	assert.Equal(t, filepath.Join(dir, "report_translated_2.xlsx"), OutputPath(input))
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"a.xlsx":    FormatXLSX,
		"a.XLSX":    FormatXLSX,
		"a.csv":     FormatCSV,
		"a.tsv":     FormatTSV,
		"a.sqlite3": FormatSQLite,
		"a.xls":     FormatUnknown,
	}

	for path, want := range tests {
		got, err := DetectFormat(path)
		assert.Equal(t, want, got, path)
		if want == FormatUnknown {
			assert.Error(t, err, path)
		}
	}
}

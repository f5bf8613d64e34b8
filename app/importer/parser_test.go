package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseCSVCommaSeparated(t *testing.T) {
	data := []byte("name,student_id,course\nJoão Silva,2021001,Engenharia\nMaria Souza,2021002,Direito\n")

	sheet, err := Parse("alunos.csv", data)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "student_id", "course"}, sheet.Headers)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "João Silva", sheet.Rows[0]["name"])
	assert.Equal(t, "2021002", sheet.Rows[1]["student_id"])
}

func TestParseCSVSemicolonBeatsComma(t *testing.T) {
	// Decimal commas inside cells must not win the separator vote.
	data := []byte("matricula;disciplina;nota\n2021001;Cálculo I;7,5\n2021002;Cálculo I;8,25\n")

	sheet, err := Parse("notas.csv", data)
	require.NoError(t, err)

	assert.Equal(t, []string{"matricula", "disciplina", "nota"}, sheet.Headers)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "7,5", sheet.Rows[0]["nota"])
}

func TestParseCSVTabSeparated(t *testing.T) {
	data := []byte("name\tstudent_id\nJoão\t2021001\n")

	sheet, err := Parse("alunos.csv", data)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "student_id"}, sheet.Headers)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "2021001", sheet.Rows[0]["student_id"])
}

func TestParseCSVSingleColumnTieFavorsComma(t *testing.T) {
	data := []byte("name\nJoão\nMaria\n")

	sheet, err := Parse("alunos.csv", data)
	require.NoError(t, err)

	assert.Equal(t, []string{"name"}, sheet.Headers)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "João", sheet.Rows[0]["name"])
}

func TestParseCSVStripsQuotesAndCarriageReturns(t *testing.T) {
	data := []byte("name,course\r\n\"João Silva\",\"Engenharia\"\r\n")

	sheet, err := Parse("alunos.csv", data)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "course"}, sheet.Headers)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "João Silva", sheet.Rows[0]["name"])
	assert.Equal(t, "Engenharia", sheet.Rows[0]["course"])
}

func TestParseCSVPadsShortRows(t *testing.T) {
	data := []byte("name,student_id,email\nJoão,2021001\n")

	sheet, err := Parse("alunos.csv", data)
	require.NoError(t, err)

	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "", sheet.Rows[0]["email"])
}

func TestParseCSVLatin1Fallback(t *testing.T) {
	// "José" encoded as ISO-8859-1, invalid as UTF-8.
	data := []byte("nome,curso\nJos\xe9,Engenharia\n")

	sheet, err := Parse("alunos.csv", data)
	require.NoError(t, err)

	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "José", sheet.Rows[0]["nome"])
}

func TestParseCSVStripsUTF8BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("name,student_id\nJoão,2021001\n")...)

	sheet, err := Parse("alunos.csv", data)
	require.NoError(t, err)

	assert.Equal(t, "name", sheet.Headers[0])
}

func TestParseEmptyCSV(t *testing.T) {
	_, err := Parse("vazio.csv", []byte(""))
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = Parse("soheader.csv", []byte("name,student_id\n"))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestParseUnsupportedExtension(t *testing.T) {
	_, err := Parse("alunos.pdf", []byte("whatever"))
	assert.ErrorIs(t, err, ErrUnsupportedExtension)
}

func TestParseXLSXRoundTrip(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"name", "student_id", "course"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"João Silva", "2021001", "Engenharia"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"Maria Souza", "2021002", "Direito"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	sheet, err := Parse("alunos.xlsx", buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "student_id", "course"}, sheet.Headers)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "Maria Souza", sheet.Rows[1]["name"])
}

func TestParseXLSXSkipsBlankRows(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"name", "student_id"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"João", "2021001"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	sheet, err := Parse("alunos.xlsx", buf.Bytes())
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 1)
	assert.Equal(t, "João", sheet.Rows[0]["name"])
}

func TestParseCorruptXLSX(t *testing.T) {
	_, err := Parse("alunos.xlsx", []byte("this is not a zip archive"))
	assert.ErrorIs(t, err, ErrUnreadableFile)
}

package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/booktracer/internal/testutil"
)

func TestExportImportRoundTrip(t *testing.T) {
	env := testutil.NewTestEnv(t)
	src := newTestStore(t)

	originals := []Book{
		{Title: "The Hobbit", Author: "J.R.R. Tolkien", TotalPages: 310, CurrentPage: 310, Status: StatusFinished, ISBN: "9780618260300"},
		{Title: "Dune, Part One", Author: "Frank Herbert", TotalPages: 412, CurrentPage: 100, Status: StatusReading},
		{Title: `A "Quoted" Title`, Author: "", TotalPages: 0, CurrentPage: 0, Status: StatusToRead},
	}
	for _, b := range originals {
		_, err := src.Add(b)
		require.NoError(t, err)
	}

	csvPath := env.Path("books.csv")
	require.NoError(t, src.ExportCSV(csvPath))

	dst := newTestStore(t)
	require.NoError(t, dst.ImportCSV(csvPath))

	imported, err := dst.List(nil)
	require.NoError(t, err)
	require.Len(t, imported, len(originals))

	for i, want := range originals {
		got := imported[i]
		assert.Equal(t, want.Title, got.Title)
		assert.Equal(t, want.Author, got.Author)
		assert.Equal(t, want.TotalPages, got.TotalPages)
		assert.Equal(t, want.CurrentPage, got.CurrentPage)
		assert.Equal(t, want.Status, got.Status)
		assert.Equal(t, want.ISBN, got.ISBN)
	}
}

func TestExportWritesHeaderAndQuoting(t *testing.T) {
	env := testutil.NewTestEnv(t)
	s := newTestStore(t)

	_, err := s.Add(Book{Title: "Dune, Part One", Author: "Frank Herbert", TotalPages: 412})
	require.NoError(t, err)

	csvPath := env.Path("out.csv")
	require.NoError(t, s.ExportCSV(csvPath))

	content := env.ReadFileString("out.csv")
	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,title,author,totalPages,currentPage,status,isbn", lines[0])
	assert.Contains(t, lines[1], `"Dune, Part One"`)
}

func TestImportSkipsMalformedRows(t *testing.T) {
	env := testutil.NewTestEnv(t)
	s := newTestStore(t)

	env.WriteFileString("books.csv", strings.Join([]string{
		"id,title,author,totalPages,currentPage,status,isbn",
		`1,"Good Book","Author",200,50,1,9780306406157`,
		`2,"Too Short"`,
		`3,"Another Good One","",150,150,2,`,
		"",
	}, "\n"))

	require.NoError(t, s.ImportCSV(env.Path("books.csv")))

	books, err := s.List(nil)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Good Book", books[0].Title)
	assert.Equal(t, "Another Good One", books[1].Title)
}

func TestImportWithoutHeader(t *testing.T) {
	env := testutil.NewTestEnv(t)
	s := newTestStore(t)

	env.WriteFileString("books.csv", `7,"Headerless","Someone",100,10,1,`+"\n")

	require.NoError(t, s.ImportCSV(env.Path("books.csv")))

	books, err := s.List(nil)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Headerless", books[0].Title)
	// Ids are always reassigned on import.
	assert.NotEqual(t, int64(7), books[0].ID)
}

func TestImportClampsValues(t *testing.T) {
	env := testutil.NewTestEnv(t)
	s := newTestStore(t)

	env.WriteFileString("books.csv", strings.Join([]string{
		"id,title,author,totalPages,currentPage,status,isbn",
		`1,"Page beyond end","",100,500,1,`,
		`2,"Negative page","",100,-3,1,`,
		`3,"Status out of range","",100,10,9,`,
	}, "\n"))

	require.NoError(t, s.ImportCSV(env.Path("books.csv")))

	books, err := s.List(nil)
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, 100, books[0].CurrentPage)
	assert.Equal(t, 0, books[1].CurrentPage)
	assert.Equal(t, StatusFinished, books[2].Status)
}

func TestImportRollsBackOnInsertFailure(t *testing.T) {
	env := testutil.NewTestEnv(t)
	s := newTestStore(t)

	// Force the second insert to fail partway through the transaction.
	_, err := s.db.Exec("CREATE UNIQUE INDEX idx_books_isbn_unique ON books(isbn)")
	require.NoError(t, err)

	env.WriteFileString("books.csv", strings.Join([]string{
		"id,title,author,totalPages,currentPage,status,isbn",
		`1,"First","",100,0,0,9780618260300`,
		`2,"Duplicate","",100,0,0,9780618260300`,
	}, "\n"))

	require.Error(t, s.ImportCSV(env.Path("books.csv")))

	// The first row made it into the transaction but must not survive it.
	books, err := s.List(nil)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestImportMissingFile(t *testing.T) {
	s := newTestStore(t)
	assert.Error(t, s.ImportCSV("/nonexistent/books.csv"))
}

package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rhdocs/internal/model"
	"rhdocs/internal/repository"
)

var pieceCols = []string{"id", "collaborateur_id", "nom", "type", "description", "fichier", "nom_fichier", "content_type", "taille", "statut", "created_at"}

func pieceRow(rows *sqlmock.Rows, d model.Document) *sqlmock.Rows {
	return rows.AddRow(d.ID, d.OwnerID, d.DisplayName, string(d.DocumentType), d.Description,
		d.StoredFileReference, d.OriginalFilename, d.ContentType, d.Size, string(d.Status), d.CreatedAt)
}

func newMock(t *testing.T) (*PiecePostgres, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPiecePostgres(db), mock
}

func contrat(now time.Time) model.Document {
	return model.Document{
		ID:                  12,
		OwnerID:             7,
		DisplayName:         "Contrat",
		DocumentType:        model.TypeContract,
		Description:         "CDI",
		StoredFileReference: "/uploads/pieces/abc.pdf",
		OriginalFilename:    "contrat.pdf",
		ContentType:         "application/pdf",
		Size:                2048,
		Status:              model.StatusPending,
		CreatedAt:           now,
	}
}

func TestPiecePostgres_Create(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now().UTC()
	want := contrat(now)

	in := want
	in.ID = 0
	in.Status = ""

	mock.ExpectQuery("INSERT INTO pieces_justificatives").
		WithArgs(int64(7), "Contrat", "CONTRACT", "CDI", "/uploads/pieces/abc.pdf", "contrat.pdf", "application/pdf", int64(2048), "", now).
		WillReturnRows(pieceRow(sqlmock.NewRows(pieceCols), want))

	got, err := repo.Create(context.Background(), &in)

	require.NoError(t, err)
	assert.Equal(t, &want, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPiecePostgres_Create_DefaultsCreatedAt(t *testing.T) {
	repo, mock := newMock(t)
	want := contrat(time.Now().UTC())

	mock.ExpectQuery("INSERT INTO pieces_justificatives").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), nil).
		WillReturnRows(pieceRow(sqlmock.NewRows(pieceCols), want))

	in := want
	in.CreatedAt = time.Time{}
	_, err := repo.Create(context.Background(), &in)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPiecePostgres_Update(t *testing.T) {
	repo, mock := newMock(t)
	want := contrat(time.Now().UTC())

	mock.ExpectQuery("UPDATE pieces_justificatives SET collaborateur_id").
		WithArgs(int64(12), int64(7), "Contrat", "CONTRACT", "CDI", "/uploads/pieces/abc.pdf", "contrat.pdf", "application/pdf", int64(2048)).
		WillReturnRows(pieceRow(sqlmock.NewRows(pieceCols), want))

	got, err := repo.Update(context.Background(), &want)

	require.NoError(t, err)
	assert.Equal(t, int64(12), got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPiecePostgres_FindByID(t *testing.T) {
	repo, mock := newMock(t)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		want := contrat(time.Now().UTC())
		mock.ExpectQuery("SELECT (.+) FROM pieces_justificatives WHERE id = ?").
			WithArgs(int64(12)).
			WillReturnRows(pieceRow(sqlmock.NewRows(pieceCols), want))

		doc, err := repo.FindByID(ctx, 12)

		require.NoError(t, err)
		assert.Equal(t, &want, doc)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM pieces_justificatives WHERE id = ?").
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByID(ctx, 99)

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, doc)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPiecePostgres_List(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name   string
		filter repository.ListFilter
		query  string
		args   []driver.Value
	}{
		{
			name:  "all owners",
			query: `SELECT (.+) FROM pieces_justificatives ORDER BY created_at DESC, id DESC$`,
		},
		{
			name:   "one owner",
			filter: repository.ListFilter{OwnerID: 7},
			query:  `FROM pieces_justificatives WHERE collaborateur_id = \$1 ORDER BY`,
			args:   []driver.Value{int64(7)},
		},
		{
			name:   "one owner paginated",
			filter: repository.ListFilter{OwnerID: 7, Limit: 10, Offset: 20},
			query:  `WHERE collaborateur_id = \$1 ORDER BY created_at DESC, id DESC LIMIT \$2 OFFSET \$3`,
			args:   []driver.Value{int64(7), 10, 20},
		},
		{
			name:   "paginated, negative offset",
			filter: repository.ListFilter{Limit: 5, Offset: -3},
			query:  `ORDER BY created_at DESC, id DESC LIMIT \$1 OFFSET \$2`,
			args:   []driver.Value{5, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMock(t)
			rows := pieceRow(sqlmock.NewRows(pieceCols), contrat(now))

			exp := mock.ExpectQuery(tt.query)
			if len(tt.args) > 0 {
				exp = exp.WithArgs(tt.args...)
			}
			exp.WillReturnRows(rows)

			items, err := repo.List(context.Background(), tt.filter)

			require.NoError(t, err)
			assert.Len(t, items, 1)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPiecePostgres_List_Empty(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery("SELECT (.+) FROM pieces_justificatives").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(pieceCols))

	items, err := repo.List(context.Background(), repository.ListFilter{OwnerID: 9})

	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestPiecePostgres_List_Error(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery("SELECT (.+) FROM pieces_justificatives").WillReturnError(errors.New("db down"))

	items, err := repo.List(context.Background(), repository.ListFilter{})

	assert.EqualError(t, err, "db down")
	assert.Nil(t, items)
}

func TestPiecePostgres_UpdateStatus(t *testing.T) {
	repo, mock := newMock(t)
	want := contrat(time.Now().UTC())
	want.Status = model.StatusValidated

	mock.ExpectQuery("UPDATE pieces_justificatives SET statut = ").
		WithArgs(int64(12), "VALIDATED").
		WillReturnRows(pieceRow(sqlmock.NewRows(pieceCols), want))

	got, err := repo.UpdateStatus(context.Background(), 12, model.StatusValidated)

	require.NoError(t, err)
	assert.Equal(t, model.StatusValidated, got.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPiecePostgres_Delete(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec("DELETE FROM pieces_justificatives WHERE id = ?").
		WithArgs(int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), 12)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/backoffice/internal/repository"
	"github.com/iliyamo/backoffice/internal/service"
)

func newRubricaHandler(t *testing.T) (*RubricaHandler, sqlmock.Sqlmock) {
	db, mock := newMock(t)
	return NewRubricaHandler(service.NewRubricaService(repository.NewRubricaRepo(db), service.NopEvents{})), mock
}

func TestRubricaListIsBareArray(t *testing.T) {
	h, mock := newRubricaHandler(t)
	mock.ExpectQuery("FROM rubricas ORDER BY id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome"}).AddRow(1, "Mario Rossi"))

	c, rec := request(http.MethodGet, "/api/rubricas", "")
	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":1,"nome":"Mario Rossi"}]`, rec.Body.String())
}

func TestRubricaWritesAnswerWithID(t *testing.T) {
	h, mock := newRubricaHandler(t)
	mock.ExpectExec("INSERT INTO rubricas").WithArgs("Luca").WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec("UPDATE rubricas").WithArgs("Luca B.", uint64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM rubricas").WithArgs(uint64(5)).WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := request(http.MethodPost, "/api/rubricas", `{"nome":"Luca"}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "5", strings.TrimSpace(rec.Body.String()))

	c, rec = request(http.MethodPut, "/api/rubricas/5", `{"nome":"Luca B."}`)
	require.NoError(t, h.Update(withID(c, "5")))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "5", strings.TrimSpace(rec.Body.String()))

	c, rec = request(http.MethodDelete, "/api/rubricas/5", "")
	require.NoError(t, h.Delete(withID(c, "5")))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRubricaGetMissing(t *testing.T) {
	h, mock := newRubricaHandler(t)
	mock.ExpectQuery("FROM rubricas WHERE id").WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome"}))

	c, rec := request(http.MethodGet, "/api/rubricas/3", "")
	require.NoError(t, h.Get(withID(c, "3")))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = request(http.MethodGet, "/api/rubricas/x", "")
	require.NoError(t, h.Get(withID(c, "x")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

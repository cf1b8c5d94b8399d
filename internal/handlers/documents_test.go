package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"careconnect-server/internal/storage"
)

func documentRouter(t *testing.T, maxBytes int64) (*gin.Engine, sqlmock.Sqlmock, *storage.FileStore) {
	db, mock := newMockDB(t)
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	h := NewDocumentHandler(db, store, zap.NewNop(), maxBytes)

	router := gin.New()
	router.POST("/api/upload-document", h.UploadDocument)
	router.GET("/api/documents/:patientId", h.GetDocuments)
	return router, mock, store
}

func multipartUpload(t *testing.T, fields map[string]string, fileName, contentType string, content []byte) *http.Request {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", `form-data; name="document"; filename="`+fileName+`"`)
		hdr.Set("Content-Type", contentType)
		part, err := mw.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/upload-document", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadDocument_StoresFileAndMetadata(t *testing.T) {
	router, mock, store := documentRouter(t, 10*1024*1024)

	mock.ExpectQuery("SELECT (.+) FROM `users` WHERE id = ").
		WillReturnRows(sqlmock.NewRows([]string{"id", "role"}).AddRow("p1", "patient"))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `medical_documents`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	content := []byte("%PDF-1.4 report body")
	req := multipartUpload(t, map[string]string{
		"patientId":   "p1",
		"description": "lab results",
	}, "report.pdf", "application/pdf", content)

	w := performRaw(router, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	document := body["document"].(map[string]interface{})
	assert.Equal(t, "report.pdf", document["fileName"])

	// The bytes must be on disk under a timestamp-prefixed name.
	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), "-report.pdf"))

	stored, err := os.ReadFile(filepath.Join(store.Dir(), entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, content, stored)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUploadDocument_RejectsDisallowedType(t *testing.T) {
	router, mock, store := documentRouter(t, 10*1024*1024)

	mock.ExpectQuery("SELECT (.+) FROM `users` WHERE id = ").
		WillReturnRows(sqlmock.NewRows([]string{"id", "role"}).AddRow("p1", "patient"))

	req := multipartUpload(t, map[string]string{"patientId": "p1"},
		"notes.txt", "text/plain", []byte("plain text"))

	w := performRaw(router, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected upload must not reach disk")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUploadDocument_RejectsOversizedFile(t *testing.T) {
	router, mock, _ := documentRouter(t, 16)

	mock.ExpectQuery("SELECT (.+) FROM `users` WHERE id = ").
		WillReturnRows(sqlmock.NewRows([]string{"id", "role"}).AddRow("p1", "patient"))

	req := multipartUpload(t, map[string]string{"patientId": "p1"},
		"big.pdf", "application/pdf", bytes.Repeat([]byte("x"), 64))

	w := performRaw(router, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUploadDocument_MissingFile(t *testing.T) {
	router, mock, _ := documentRouter(t, 10*1024*1024)

	mock.ExpectQuery("SELECT (.+) FROM `users` WHERE id = ").
		WillReturnRows(sqlmock.NewRows([]string{"id", "role"}).AddRow("p1", "patient"))

	req := multipartUpload(t, map[string]string{"patientId": "p1"}, "", "", nil)

	w := performRaw(router, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadDocument_UnknownPatient(t *testing.T) {
	router, mock, _ := documentRouter(t, 10*1024*1024)

	mock.ExpectQuery("SELECT (.+) FROM `users` WHERE id = ").
		WillReturnRows(sqlmock.NewRows([]string{"id", "role"}))

	req := multipartUpload(t, map[string]string{"patientId": "ghost"},
		"report.pdf", "application/pdf", []byte("%PDF"))

	w := performRaw(router, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetDocuments_SortedByUploadDateDescending(t *testing.T) {
	router, mock, _ := documentRouter(t, 10*1024*1024)

	newer := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	older := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "patient_id", "file_name", "original_name", "file_type", "file_size", "upload_date"}).
		AddRow("doc2", "p1", "2-scan.png", "scan.png", "image/png", 2048, newer).
		AddRow("doc1", "p1", "1-report.pdf", "report.pdf", "application/pdf", 1024, older)
	mock.ExpectQuery("SELECT (.+) FROM `medical_documents` WHERE patient_id = (.+) ORDER BY upload_date DESC").
		WillReturnRows(rows)

	w := performJSON(t, router, "GET", "/api/documents/p1", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	documents := body["documents"].([]interface{})
	require.Len(t, documents, 2)
	assert.Equal(t, "doc2", documents[0].(map[string]interface{})["id"])
	assert.Equal(t, "doc1", documents[1].(map[string]interface{})["id"])
}

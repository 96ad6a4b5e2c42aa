package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jkuschner/Document-Storage-App/internal/common"
	"github.com/jkuschner/Document-Storage-App/internal/server/models"
)

type fakeObjectStore struct {
	presignPutOut string
	presignPutErr error
	presignGetOut string
	presignGetErr error
	readOut       []byte
	readErr       error
	deleteErr     error

	deletedKeys []string
	lastPutKey  string
	lastPutType string
}

func (f *fakeObjectStore) PresignPut(ctx context.Context, key, contentType string) (string, error) {
	f.lastPutKey = key
	f.lastPutType = contentType
	if f.presignPutErr != nil {
		return "", f.presignPutErr
	}
	return f.presignPutOut, nil
}

func (f *fakeObjectStore) PresignGet(ctx context.Context, key string) (string, error) {
	if f.presignGetErr != nil {
		return "", f.presignGetErr
	}
	return f.presignGetOut, nil
}

func (f *fakeObjectStore) ReadObject(ctx context.Context, key string, limit int64) ([]byte, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.readOut, nil
}

func (f *fakeObjectStore) DeleteObject(ctx context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedKeys = append(f.deletedKeys, key)
	return nil
}

func TestRequestUpload_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	files := &fakeFilesRepo{}
	store := &fakeObjectStore{presignPutOut: "https://s3.example.com/put"}
	s := NewFileService(db, &fakeRepoManager{f: files}, store, testLogger())

	slot, err := s.RequestUpload(context.Background(), "u1", "report.pdf", "application/pdf", 2048)
	if err != nil {
		t.Fatalf("RequestUpload error: %v", err)
	}
	if slot.UploadURL != "https://s3.example.com/put" {
		t.Fatalf("unexpected upload url: %q", slot.UploadURL)
	}
	if slot.FileID == "" {
		t.Fatal("expected generated file id")
	}
	if len(files.created) != 1 {
		t.Fatalf("expected one metadata row, got %d", len(files.created))
	}

	rec := files.created[0]
	if rec.Status != models.StatusPending {
		t.Fatalf("new upload must be pending, got %q", rec.Status)
	}
	if rec.UploadDate.IsZero() {
		t.Fatal("metadata row inserted without an upload timestamp")
	}
	if time.Since(rec.UploadDate) > time.Minute {
		t.Fatalf("upload timestamp not current: %v", rec.UploadDate)
	}
	if !strings.HasPrefix(rec.StorageKey, "users/u1/") {
		t.Fatalf("storage key not scoped to owner: %q", rec.StorageKey)
	}
	if store.lastPutKey != rec.StorageKey {
		t.Fatalf("presigned key %q differs from stored key %q", store.lastPutKey, rec.StorageKey)
	}
}

func TestRequestUpload_Validation(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := NewFileService(db, &fakeRepoManager{f: &fakeFilesRepo{}}, &fakeObjectStore{}, testLogger())

	if _, err := s.RequestUpload(context.Background(), "u1", "   ", "text/plain", 1); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("blank name: want ErrorValidation, got %v", err)
	}
	if _, err := s.RequestUpload(context.Background(), "u1", "a.txt", "text/plain", -1); !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("negative size: want ErrorValidation, got %v", err)
	}
}

func TestRequestUpload_DefaultContentType(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	store := &fakeObjectStore{presignPutOut: "u"}
	s := NewFileService(db, &fakeRepoManager{f: &fakeFilesRepo{}}, store, testLogger())

	if _, err := s.RequestUpload(context.Background(), "u1", "blob", "", 1); err != nil {
		t.Fatalf("RequestUpload error: %v", err)
	}
	if store.lastPutType != "application/octet-stream" {
		t.Fatalf("unexpected content type: %q", store.lastPutType)
	}
}

func TestRequestUpload_PresignError(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	files := &fakeFilesRepo{}
	store := &fakeObjectStore{presignPutErr: errBoom{}}
	s := NewFileService(db, &fakeRepoManager{f: files}, store, testLogger())

	_, err := s.RequestUpload(context.Background(), "u1", "a.txt", "text/plain", 1)
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want ErrorInternal, got %v", err)
	}
	if len(files.created) != 0 {
		t.Fatal("no metadata row should exist when presigning fails")
	}
}

func TestDownload_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	files := &fakeFilesRepo{getOut: &models.File{ID: "f1", FileName: "report.pdf", StorageKey: "users/u1/k"}}
	store := &fakeObjectStore{presignGetOut: "https://s3.example.com/get"}
	s := NewFileService(db, &fakeRepoManager{f: files}, store, testLogger())

	link, err := s.Download(context.Background(), "u1", "f1")
	if err != nil {
		t.Fatalf("Download error: %v", err)
	}
	if link.DownloadURL != "https://s3.example.com/get" || link.FileName != "report.pdf" {
		t.Fatalf("unexpected link: %+v", link)
	}
	if files.lastGetUser != "u1" {
		t.Fatalf("lookup not scoped to owner: %q", files.lastGetUser)
	}
}

func TestDownload_NotFound(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	files := &fakeFilesRepo{getErr: common.ErrorNotFound}
	s := NewFileService(db, &fakeRepoManager{f: files}, &fakeObjectStore{}, testLogger())

	_, err := s.Download(context.Background(), "u1", "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestDelete_RemovesObjectAndRow(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	files := &fakeFilesRepo{getOut: &models.File{ID: "f1", StorageKey: "users/u1/k"}}
	store := &fakeObjectStore{}
	s := NewFileService(db, &fakeRepoManager{f: files}, store, testLogger())

	if err := s.Delete(context.Background(), "u1", "f1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if len(store.deletedKeys) != 1 || store.deletedKeys[0] != "users/u1/k" {
		t.Fatalf("object not deleted: %+v", store.deletedKeys)
	}
	if len(files.deletedIDs) != 1 || files.deletedIDs[0] != "f1" {
		t.Fatalf("row not deleted: %+v", files.deletedIDs)
	}
}

func TestDelete_ObjectErrorStillDeletesRow(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	files := &fakeFilesRepo{getOut: &models.File{ID: "f1", StorageKey: "users/u1/k"}}
	store := &fakeObjectStore{deleteErr: errBoom{}}
	s := NewFileService(db, &fakeRepoManager{f: files}, store, testLogger())

	if err := s.Delete(context.Background(), "u1", "f1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if len(files.deletedIDs) != 1 {
		t.Fatal("metadata row must be deleted even if the object delete fails")
	}
}

func TestComplete(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	files := &fakeFilesRepo{}
	s := NewFileService(db, &fakeRepoManager{f: files}, &fakeObjectStore{}, testLogger())

	if err := s.Complete(context.Background(), "u1", "f1"); err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if len(files.marked) != 1 || files.marked[0] != "f1" {
		t.Fatalf("file not marked completed: %+v", files.marked)
	}

	files.markErr = common.ErrorNotFound
	if err := s.Complete(context.Background(), "u1", "f2"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestList(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	files := &fakeFilesRepo{listOut: []*models.File{{ID: "f1"}, {ID: "f2"}}}
	s := NewFileService(db, &fakeRepoManager{f: files}, &fakeObjectStore{}, testLogger())

	out, err := s.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("unexpected list: %+v", out)
	}
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jkuschner/Document-Storage-App/internal/common"
	"github.com/jkuschner/Document-Storage-App/internal/server/config"
	"github.com/jkuschner/Document-Storage-App/internal/server/models"
)

func newTestShareService(t *testing.T, rm *fakeRepoManager, store ObjectStorage) *ShareService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		ShareBaseURL:         "https://app.example.com/shared/",
		DefaultShareValidity: 24 * time.Hour,
	}
	return NewShareService(db, rm, store, cfg, testLogger())
}

func TestShareCreate_Success(t *testing.T) {
	shares := &fakeSharesRepo{}
	rm := &fakeRepoManager{
		f: &fakeFilesRepo{getOut: &models.File{ID: "f1", UserID: "u1"}},
		s: shares,
	}
	s := newTestShareService(t, rm, &fakeObjectStore{})

	grant, err := s.Create(context.Background(), "u1", "f1", 2*time.Hour)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if grant.Token == "" {
		t.Fatal("expected generated token")
	}
	if grant.ShareURL != "https://app.example.com/shared/"+grant.Token {
		t.Fatalf("unexpected share url: %q", grant.ShareURL)
	}
	if until := time.Until(grant.ExpiresAt); until < time.Hour || until > 3*time.Hour {
		t.Fatalf("unexpected expiry: %v", grant.ExpiresAt)
	}
	if len(shares.created) != 1 {
		t.Fatalf("expected one share row, got %d", len(shares.created))
	}
}

func TestShareCreate_DefaultValidity(t *testing.T) {
	shares := &fakeSharesRepo{}
	rm := &fakeRepoManager{
		f: &fakeFilesRepo{getOut: &models.File{ID: "f1", UserID: "u1"}},
		s: shares,
	}
	s := newTestShareService(t, rm, &fakeObjectStore{})

	grant, err := s.Create(context.Background(), "u1", "f1", 0)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if until := time.Until(grant.ExpiresAt); until < 23*time.Hour || until > 25*time.Hour {
		t.Fatalf("default validity not applied: %v", grant.ExpiresAt)
	}
}

func TestShareCreate_ForeignFile(t *testing.T) {
	rm := &fakeRepoManager{f: &fakeFilesRepo{getErr: common.ErrorNotFound}, s: &fakeSharesRepo{}}
	s := newTestShareService(t, rm, &fakeObjectStore{})

	_, err := s.Create(context.Background(), "u1", "f1", time.Hour)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestShareResolve_Success(t *testing.T) {
	rm := &fakeRepoManager{
		s: &fakeSharesRepo{byToken: &models.Share{
			Token:     "tok",
			FileID:    "f1",
			UserID:    "u1",
			ExpiresAt: time.Now().Add(time.Hour),
		}},
		f: &fakeFilesRepo{getOut: &models.File{ID: "f1", FileName: "report.pdf", StorageKey: "users/u1/k"}},
	}
	store := &fakeObjectStore{presignGetOut: "https://s3.example.com/get"}
	s := newTestShareService(t, rm, store)

	link, err := s.Resolve(context.Background(), "tok")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if link.DownloadURL != "https://s3.example.com/get" || link.FileName != "report.pdf" {
		t.Fatalf("unexpected link: %+v", link)
	}
}

func TestShareResolve_Expired(t *testing.T) {
	rm := &fakeRepoManager{
		s: &fakeSharesRepo{byToken: &models.Share{
			Token:     "tok",
			FileID:    "f1",
			UserID:    "u1",
			ExpiresAt: time.Now().Add(-time.Minute),
		}},
		f: &fakeFilesRepo{},
	}
	s := newTestShareService(t, rm, &fakeObjectStore{})

	_, err := s.Resolve(context.Background(), "tok")
	if !errors.Is(err, common.ErrShareExpired) {
		t.Fatalf("want ErrShareExpired, got %v", err)
	}
}

func TestShareResolve_UnknownToken(t *testing.T) {
	rm := &fakeRepoManager{s: &fakeSharesRepo{tokenErr: common.ErrorNotFound}, f: &fakeFilesRepo{}}
	s := newTestShareService(t, rm, &fakeObjectStore{})

	_, err := s.Resolve(context.Background(), "nope")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestShareResolve_FileGone(t *testing.T) {
	rm := &fakeRepoManager{
		s: &fakeSharesRepo{byToken: &models.Share{
			Token:     "tok",
			FileID:    "f1",
			UserID:    "u1",
			ExpiresAt: time.Now().Add(time.Hour),
		}},
		f: &fakeFilesRepo{getErr: common.ErrorNotFound},
	}
	s := newTestShareService(t, rm, &fakeObjectStore{})

	_, err := s.Resolve(context.Background(), "tok")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestPurgeExpired(t *testing.T) {
	rm := &fakeRepoManager{s: &fakeSharesRepo{purged: 3}}
	s := newTestShareService(t, rm, &fakeObjectStore{})

	n, err := s.PurgeExpired(context.Background())
	if err != nil {
		t.Fatalf("PurgeExpired error: %v", err)
	}
	if n != 3 {
		t.Fatalf("want 3 purged, got %d", n)
	}
}

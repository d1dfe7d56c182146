package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"rhdocs/internal/model"
	"rhdocs/internal/repository"
	"rhdocs/internal/storage"
)

var (
	ErrIDRequired      = errors.New("id is required")
	ErrNotFound        = errors.New("document not found")
	ErrReaderNil       = errors.New("reader is nil")
	ErrInvalidStatus   = errors.New("status must be PENDING, VALIDATED or REJECTED")
	ErrInvalidMetadata = errors.New("invalid document metadata")
)

const (
	// UploadsPrefix is the public path under which stored objects are served.
	UploadsPrefix = "/uploads/"
	objectDir     = "pieces"
	sniffLen      = 3072
	octetStream   = "application/octet-stream"
)

// File is an uploaded document file.
type File struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// PieceService defines the use cases of supporting documents.
type PieceService interface {
	// Create stores the file, saves the record as PENDING and removes the stored
	// object again if the record cannot be saved.
	Create(ctx context.Context, meta model.Metadata, f File) (*model.Document, error)

	// Update replaces the metadata of a document and, when f is not nil, its file.
	// The status and ID are kept.
	Update(ctx context.Context, id int64, meta model.Metadata, f *File) (*model.Document, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id int64) (*model.Document, error)

	// List returns documents newest first; ownerID 0 lists all owners and limit 0 disables paging.
	List(ctx context.Context, ownerID int64, limit, offset int) ([]model.Document, error)

	// UpdateStatus changes the workflow status of a document.
	UpdateStatus(ctx context.Context, id int64, status string) (*model.Document, error)

	// Delete removes a document from both storage and repository.
	Delete(ctx context.Context, id int64) error

	// Open streams the stored object behind an /uploads/ path.
	Open(ctx context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error)
}

type pieceService struct {
	store storage.Storage
	repo  repository.PieceRepository
	log   *zap.Logger
	now   func() time.Time
}

// NewPieceService constructs a new PieceService.
func NewPieceService(store storage.Storage, repo repository.PieceRepository, log *zap.Logger) PieceService {
	if log == nil {
		log = zap.NewNop()
	}
	return &pieceService{store: store, repo: repo, log: log, now: time.Now}
}

func validateMetadata(m model.Metadata) error {
	switch {
	case m.OwnerID <= 0:
		return fmt.Errorf("%w: collaborateurId must be a positive integer", ErrInvalidMetadata)
	case strings.TrimSpace(m.DisplayName) == "":
		return fmt.Errorf("%w: nom is required", ErrInvalidMetadata)
	case strings.TrimSpace(string(m.DocumentType)) == "":
		return fmt.Errorf("%w: type is required", ErrInvalidMetadata)
	}
	return nil
}

// ObjectKey returns the storage key of a stored file reference, or "" when the
// reference does not point into this store.
func ObjectKey(ref string) string {
	if !strings.HasPrefix(ref, UploadsPrefix) {
		return ""
	}
	return strings.TrimPrefix(ref, UploadsPrefix)
}

// detectContentType keeps a declared content type and sniffs the magic bytes
// otherwise. The returned reader yields the full content.
func detectContentType(r io.Reader, filename, declared string) (io.Reader, string, error) {
	if declared != "" && declared != octetStream {
		return r, declared, nil
	}
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, "", err
	}
	head = head[:n]

	ct := mimetype.Detect(head).String()
	if ct == octetStream {
		if byExt := mime.TypeByExtension(path.Ext(filename)); byExt != "" {
			ct = byExt
		}
	}
	return io.MultiReader(bytes.NewReader(head), r), ct, nil
}

// putFile stores f under a fresh key and returns the stored object.
func (s *pieceService) putFile(ctx context.Context, f File) (storage.ObjectInfo, error) {
	r, ct, err := detectContentType(f.Reader, f.Filename, f.ContentType)
	if err != nil {
		return storage.ObjectInfo{}, fmt.Errorf("read upload: %w", err)
	}

	ext := strings.ToLower(path.Ext(strings.ReplaceAll(f.Filename, "\\", "/")))
	key := objectDir + "/" + uuid.New().String() + ext

	obj, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        f.Size,
		ContentType: ct,
		Metadata: map[string]string{
			storage.OriginalFilenameMeta: f.Filename,
		},
	})
	if err != nil {
		return storage.ObjectInfo{}, fmt.Errorf("upload to storage: %w", err)
	}
	if obj.Key == "" {
		obj.Key = key
	}
	if obj.ContentType == "" {
		obj.ContentType = ct
	}
	return obj, nil
}

// rollback removes an object whose record could not be saved.
func (s *pieceService) rollback(ctx context.Context, key string, cause error) error {
	if delErr := s.store.Delete(ctx, key); delErr != nil {
		return fmt.Errorf("db save failed: %v; rollback delete failed: %v", cause, delErr)
	}
	return fmt.Errorf("db save failed: %w", cause)
}

func (s *pieceService) Create(ctx context.Context, meta model.Metadata, f File) (*model.Document, error) {
	if err := validateMetadata(meta); err != nil {
		return nil, err
	}
	if f.Reader == nil {
		return nil, ErrReaderNil
	}

	obj, err := s.putFile(ctx, f)
	if err != nil {
		return nil, err
	}

	doc := &model.Document{
		OwnerID:             int64(meta.OwnerID),
		DisplayName:         meta.DisplayName,
		DocumentType:        meta.DocumentType,
		Description:         meta.Description,
		StoredFileReference: UploadsPrefix + obj.Key,
		OriginalFilename:    f.Filename,
		ContentType:         obj.ContentType,
		Size:                obj.Size,
		Status:              model.StatusPending,
		CreatedAt:           s.now().UTC(),
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		return nil, s.rollback(ctx, obj.Key, err)
	}
	return stored, nil
}

func (s *pieceService) Update(ctx context.Context, id int64, meta model.Metadata, f *File) (*model.Document, error) {
	if id <= 0 {
		return nil, ErrIDRequired
	}
	if err := validateMetadata(meta); err != nil {
		return nil, err
	}
	if f != nil && f.Reader == nil {
		return nil, ErrReaderNil
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next := *current
	next.OwnerID = int64(meta.OwnerID)
	next.DisplayName = meta.DisplayName
	next.DocumentType = meta.DocumentType
	next.Description = meta.Description

	var newKey string
	if f != nil {
		obj, err := s.putFile(ctx, *f)
		if err != nil {
			return nil, err
		}
		newKey = obj.Key
		next.StoredFileReference = UploadsPrefix + obj.Key
		next.OriginalFilename = f.Filename
		next.ContentType = obj.ContentType
		next.Size = obj.Size
	}

	stored, err := s.repo.Update(ctx, &next)
	if err != nil {
		if newKey != "" {
			err = s.rollback(ctx, newKey, err)
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if oldKey := ObjectKey(current.StoredFileReference); newKey != "" && oldKey != "" {
		if err := s.store.Delete(ctx, oldKey); err != nil {
			s.log.Warn("replaced_object_not_deleted",
				zap.Int64("document_id", id),
				zap.String("key", oldKey),
				zap.Error(err),
			)
		}
	}
	return stored, nil
}

func (s *pieceService) Get(ctx context.Context, id int64) (*model.Document, error) {
	if id <= 0 {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *pieceService) List(ctx context.Context, ownerID int64, limit, offset int) ([]model.Document, error) {
	if ownerID < 0 {
		ownerID = 0
	}
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, repository.ListFilter{OwnerID: ownerID, Limit: limit, Offset: offset})
}

func (s *pieceService) UpdateStatus(ctx context.Context, id int64, status string) (*model.Document, error) {
	if id <= 0 {
		return nil, ErrIDRequired
	}
	st, ok := model.ParseStatus(status)
	if !ok {
		return nil, ErrInvalidStatus
	}
	doc, err := s.repo.UpdateStatus(ctx, id, st)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Delete removes the stored object first; if that fails the record is kept so
// the object stays reachable.
func (s *pieceService) Delete(ctx context.Context, id int64) error {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if key := ObjectKey(doc.StoredFileReference); key != "" {
		if err := s.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete storage: %w", err)
		}
	}
	return s.repo.Delete(ctx, id)
}

func (s *pieceService) Open(ctx context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	key = strings.TrimPrefix(path.Clean("/"+key), "/")
	if key == "" {
		return nil, storage.ObjectInfo{}, ErrNotFound
	}
	rc, info, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, storage.ObjectInfo{}, ErrNotFound
		}
		return nil, storage.ObjectInfo{}, err
	}
	return rc, info, nil
}

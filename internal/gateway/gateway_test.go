package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rhdocs/internal/backend"
	"rhdocs/internal/http/apierror"
	"rhdocs/internal/http/middleware"
	"rhdocs/internal/model"
	"rhdocs/internal/session"
)

const testSecret = "test-secret"

func newGateway(t *testing.T, backendURL string) *fiber.App {
	t.Helper()
	return newGatewayWithDecoder(t, backendURL, session.NewDecoder(testSecret))
}

func newGatewayWithDecoder(t *testing.T, backendURL string, dec *session.Decoder) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: apierror.ErrorHandler()})
	app.Use(middleware.RequestID())
	app.Use(middleware.Session(dec, zap.NewNop()))
	RegisterRoutes(app, NewHandler(backend.NewClient(backendURL), zap.NewNop()))
	return app
}

func signToken(t *testing.T, id int64, role string) string {
	t.Helper()
	claims := session.Claims{
		CollaborateurID: id,
		Role:            role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(id, 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

type formPart struct {
	name        string
	filename    string
	contentType string
	data        []byte
}

func textPart(name, value string) formPart {
	return formPart{name: name, data: []byte(value)}
}

func filePartOf(name, filename, contentType string, data []byte) formPart {
	return formPart{name: name, filename: filename, contentType: contentType, data: data}
}

func multipartRequest(t *testing.T, method, target string, parts ...formPart) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, p := range parts {
		if p.filename == "" {
			require.NoError(t, mw.WriteField(p.name, string(p.data)))
			continue
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, p.name, p.filename))
		if p.contentType != "" {
			h.Set("Content-Type", p.contentType)
		}
		w, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = w.Write(p.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeError(t *testing.T, resp *http.Response) apierror.Payload {
	t.Helper()
	var p apierror.Payload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	return p
}

// capture is what a stub backend saw for one request.
type capture struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// form parses the captured multipart body.
func (c capture) form(t *testing.T) *multipart.Form {
	t.Helper()
	_, params, err := mime.ParseMediaType(c.Header.Get("Content-Type"))
	require.NoError(t, err)
	f, err := multipart.NewReader(bytes.NewReader(c.Body), params["boundary"]).ReadForm(32 << 20)
	require.NoError(t, err)
	return f
}

// stubBackend answers every request with the same canned response.
type stubBackend struct {
	URL string

	mu    sync.Mutex
	calls []capture
}

func newStubBackend(t *testing.T, status int, contentType, body string) *stubBackend {
	t.Helper()
	sb := &stubBackend{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		sb.mu.Lock()
		sb.calls = append(sb.calls, capture{Method: r.Method, Path: r.URL.Path, Header: r.Header.Clone(), Body: b})
		sb.mu.Unlock()
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	sb.URL = srv.URL
	return sb
}

func (sb *stubBackend) hits() int {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return len(sb.calls)
}

func (sb *stubBackend) last(t *testing.T) capture {
	t.Helper()
	sb.mu.Lock()
	defer sb.mu.Unlock()
	require.NotEmpty(t, sb.calls, "backend was not called")
	return sb.calls[len(sb.calls)-1]
}

// memoryBackend is an in-memory implementation of the document API.
type memoryBackend struct {
	URL string

	mu    sync.Mutex
	docs  []model.Document
	files map[int64][]byte
	next  int64
}

func newMemoryBackend(t *testing.T, seed ...model.Document) *memoryBackend {
	t.Helper()
	mb := &memoryBackend{files: map[int64][]byte{}}
	for _, d := range seed {
		mb.docs = append(mb.docs, d)
		if d.ID > mb.next {
			mb.next = d.ID
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("POST /api/pieces-justificatives", mb.create)
	mux.HandleFunc("PUT /api/pieces-justificatives/{id}", mb.update)
	mux.HandleFunc("GET /api/pieces-justificatives", func(w http.ResponseWriter, r *http.Request) {
		mb.writeList(w, 0)
	})
	mux.HandleFunc("GET /api/pieces-justificatives/collaborateur/{owner}", func(w http.ResponseWriter, r *http.Request) {
		owner, _ := strconv.ParseInt(r.PathValue("owner"), 10, 64)
		mb.writeList(w, owner)
	})
	mux.HandleFunc("GET /api/pieces-justificatives/{id}", func(w http.ResponseWriter, r *http.Request) {
		mb.withDoc(w, r, func(d *model.Document) { writeJSON(w, http.StatusOK, d) })
	})
	mux.HandleFunc("PATCH /api/pieces-justificatives/{id}/statut", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Statut model.Status `json:"statut"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		mb.withDoc(w, r, func(d *model.Document) {
			d.Status = body.Statut
			writeJSON(w, http.StatusOK, d)
		})
	})
	mux.HandleFunc("DELETE /api/pieces-justificatives/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		mb.mu.Lock()
		defer mb.mu.Unlock()
		for i, d := range mb.docs {
			if d.ID == id {
				mb.docs = append(mb.docs[:i], mb.docs[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	mb.URL = srv.URL
	return mb
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (mb *memoryBackend) writeList(w http.ResponseWriter, owner int64) {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	out := []model.Document{}
	for _, d := range mb.docs {
		if owner == 0 || d.OwnerID == owner {
			out = append(out, d)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (mb *memoryBackend) withDoc(w http.ResponseWriter, r *http.Request, fn func(*model.Document)) {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	mb.mu.Lock()
	defer mb.mu.Unlock()
	for i := range mb.docs {
		if mb.docs[i].ID == id {
			fn(&mb.docs[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
}

func (mb *memoryBackend) readFields(r *http.Request) (model.Document, []byte, bool) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return model.Document{}, nil, false
	}
	owner, _ := strconv.ParseInt(r.FormValue("collaborateurId"), 10, 64)
	d := model.Document{
		OwnerID:      owner,
		DisplayName:  r.FormValue("nom"),
		DocumentType: model.DocumentType(r.FormValue("type")),
		Description:  r.FormValue("description"),
	}
	f, fh, err := r.FormFile("file")
	if err != nil {
		return d, nil, true
	}
	defer f.Close()
	b, _ := io.ReadAll(f)
	d.OriginalFilename = fh.Filename
	d.ContentType = fh.Header.Get("Content-Type")
	d.Size = int64(len(b))
	return d, b, true
}

func (mb *memoryBackend) create(w http.ResponseWriter, r *http.Request) {
	d, file, ok := mb.readFields(r)
	if !ok || file == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "file is required"})
		return
	}
	mb.mu.Lock()
	defer mb.mu.Unlock()
	mb.next++
	d.ID = mb.next
	d.StoredFileReference = fmt.Sprintf("/uploads/pieces/%d-%s", d.ID, d.OriginalFilename)
	d.Status = model.StatusPending
	d.CreatedAt = time.Now().UTC()
	mb.docs = append(mb.docs, d)
	mb.files[d.ID] = file
	writeJSON(w, http.StatusCreated, d)
}

func (mb *memoryBackend) update(w http.ResponseWriter, r *http.Request) {
	in, file, ok := mb.readFields(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid form"})
		return
	}
	mb.withDoc(w, r, func(d *model.Document) {
		d.OwnerID = in.OwnerID
		d.DisplayName = in.DisplayName
		d.DocumentType = in.DocumentType
		d.Description = in.Description
		if file != nil {
			d.OriginalFilename = in.OriginalFilename
			d.ContentType = in.ContentType
			d.Size = in.Size
			mb.files[d.ID] = file
		}
		writeJSON(w, http.StatusOK, d)
	})
}

func (mb *memoryBackend) count() int {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	return len(mb.docs)
}

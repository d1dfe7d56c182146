package gateway

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"rhdocs/internal/model"
)

const (
	filePart     = "file"
	metadataPart = "pieceJustificative"

	// maxMetadataBytes bounds a pieceJustificative sent as a blob part.
	maxMetadataBytes = 1 << 20
)

// inboundForm is the browser payload of the upload and update proxies.
type inboundForm struct {
	file     *multipart.FileHeader
	metadata []byte
}

// readInboundForm extracts the file and the pieceJustificative parts. A
// pieceJustificative may be a text field or a blob part holding JSON; a text
// field named "file" is not a file. Empty parts count as missing.
func readInboundForm(form *multipart.Form) (inboundForm, error) {
	var in inboundForm
	if form == nil {
		return in, nil
	}
	if files := form.File[filePart]; len(files) > 0 && files[0].Size > 0 {
		in.file = files[0]
	}

	if vals := form.Value[metadataPart]; len(vals) > 0 && strings.TrimSpace(vals[0]) != "" {
		in.metadata = []byte(vals[0])
		return in, nil
	}
	if files := form.File[metadataPart]; len(files) > 0 {
		b, err := readSmallPart(files[0])
		if err != nil {
			return in, err
		}
		in.metadata = b
	}
	return in, nil
}

func readSmallPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s part: %w", metadataPart, err)
	}
	defer f.Close()
	b, err := io.ReadAll(io.LimitReader(f, maxMetadataBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s part: %w", metadataPart, err)
	}
	if len(b) > maxMetadataBytes {
		return nil, fmt.Errorf("%s part exceeds %d bytes", metadataPart, maxMetadataBytes)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, nil
	}
	return b, nil
}

// formStream is an outbound multipart body written on the fly by a goroutine.
// Close stops the writer and waits for it, so the inbound file is no longer read
// once the handler returns.
type formStream struct {
	pr          *io.PipeReader
	done        chan struct{}
	contentType string
}

// newFormStream flattens meta into individual fields and copies file, when not
// nil, byte for byte with its original filename and content type.
func newFormStream(meta model.Metadata, file *multipart.FileHeader) *formStream {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	s := &formStream{pr: pr, done: make(chan struct{}), contentType: mw.FormDataContentType()}

	go func() {
		defer close(s.done)
		err := writeForm(mw, meta, file)
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()
	return s
}

func (s *formStream) Read(p []byte) (int, error) { return s.pr.Read(p) }

func (s *formStream) Close() error {
	err := s.pr.Close()
	<-s.done
	return err
}

// ContentType is the multipart content type including the boundary.
func (s *formStream) ContentType() string { return s.contentType }

func writeForm(mw *multipart.Writer, meta model.Metadata, file *multipart.FileHeader) error {
	for _, kv := range meta.Fields() {
		if err := mw.WriteField(kv[0], kv[1]); err != nil {
			return fmt.Errorf("write field %s: %w", kv[0], err)
		}
	}
	if file == nil {
		return nil
	}

	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	ct := file.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, filePart, quoteEscaper.Replace(file.Filename)))
	h.Set("Content-Type", ct)

	dst, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("copy file part: %w", err)
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

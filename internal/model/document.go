package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Status is the admin workflow state of a supporting document.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusValidated Status = "VALIDATED"
	StatusRejected  Status = "REJECTED"
)

// ParseStatus normalizes s and reports whether it names a known status.
func ParseStatus(s string) (Status, bool) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusPending, StatusValidated, StatusRejected:
		return st, true
	}
	return "", false
}

// DocumentType categorizes a document. The backend owns the set of valid values;
// KnownDocumentTypes only lists the ones offered by default.
type DocumentType string

const (
	TypeIdentityCard DocumentType = "IDENTITY_CARD"
	TypeDiploma      DocumentType = "DIPLOMA"
	TypeContract     DocumentType = "CONTRACT"
	TypeCertificate  DocumentType = "CERTIFICATE"
	TypePaySlip      DocumentType = "PAY_SLIP"
	TypeOther        DocumentType = "OTHER"
)

var KnownDocumentTypes = []DocumentType{
	TypeIdentityCard, TypeDiploma, TypeContract, TypeCertificate, TypePaySlip, TypeOther,
}

// Known reports whether t is one of KnownDocumentTypes.
func (t DocumentType) Known() bool {
	for _, k := range KnownDocumentTypes {
		if t == k {
			return true
		}
	}
	return false
}

// Document is a supporting document (pièce justificative) owned by one collaborator.
// JSON names follow the backend API contract.
type Document struct {
	ID                  int64        `json:"id,omitempty"`
	OwnerID             int64        `json:"collaborateurId"`
	DisplayName         string       `json:"nom"`
	DocumentType        DocumentType `json:"type"`
	StoredFileReference string       `json:"fichier,omitempty"`
	OriginalFilename    string       `json:"nomFichier,omitempty"`
	ContentType         string       `json:"contentType,omitempty"`
	Size                int64        `json:"taille,omitempty"`
	Status              Status       `json:"statut,omitempty"`
	Description         string       `json:"description,omitempty"`
	CreatedAt           time.Time    `json:"dateCreation"`
}

// EffectiveStatus returns the document status, PENDING when the backend sent none.
func (d Document) EffectiveStatus() Status {
	if st, ok := ParseStatus(string(d.Status)); ok {
		return st
	}
	return StatusPending
}

// OwnerID decodes from either a JSON number or a numeric string, since browser
// forms commonly send ids as text.
type OwnerID int64

func (o *OwnerID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*o = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*o = 0
			return nil
		}
		b = []byte(s)
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("collaborateurId: %q is not an integer", string(b))
	}
	*o = OwnerID(n)
	return nil
}

// Metadata is the canonical `pieceJustificative` payload sent alongside a file.
type Metadata struct {
	OwnerID      OwnerID      `json:"collaborateurId" validate:"required,gt=0"`
	DisplayName  string       `json:"nom" validate:"required"`
	DocumentType DocumentType `json:"type" validate:"required"`
	Description  string       `json:"description,omitempty"`
}

// ParseMetadata decodes a JSON-encoded pieceJustificative.
func ParseMetadata(raw []byte) (Metadata, error) {
	var m Metadata
	if err := json.Unmarshal(raw, &m); err != nil {
		return Metadata{}, err
	}
	m.DisplayName = strings.TrimSpace(m.DisplayName)
	m.DocumentType = DocumentType(strings.TrimSpace(string(m.DocumentType)))
	return m, nil
}

// Fields flattens the metadata into the form fields expected by the backend.
func (m Metadata) Fields() [][2]string {
	return [][2]string{
		{"collaborateurId", strconv.FormatInt(int64(m.OwnerID), 10)},
		{"nom", m.DisplayName},
		{"type", string(m.DocumentType)},
		{"description", m.Description},
	}
}

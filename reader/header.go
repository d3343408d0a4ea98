package reader

import (
	"time"

	"github.com/lehigh-university-libraries/zugferd/collection"
	"github.com/lehigh-university-libraries/zugferd/graph"
)

const (
	pathContext = "SpecifiedExchangedDocumentContext"
	pathHeader  = "HeaderExchangedDocument"
	pathNotes   = pathHeader + ".IncludedNote"
)

// Cursor keys of header-level groups.
const (
	KeyNotes = "notes"
)

// DocumentID returns the invoice number.
func (s *Session) DocumentID() string {
	return graph.Resolve(s.root, join(pathHeader, "ID.value"), "")
}

// DocumentName returns the document title (e.g., "RECHNUNG").
func (s *Session) DocumentName() string {
	return graph.Resolve(s.root, join(pathHeader, "Name.value"), "")
}

// TypeCode returns the UN/CEFACT document type code (380 for invoices).
func (s *Session) TypeCode() string {
	return graph.Resolve(s.root, join(pathHeader, "TypeCode.value"), "")
}

// IssueDate returns the invoice date.
func (s *Session) IssueDate() time.Time {
	return graph.Resolve(s.root, join(pathHeader, "IssueDateTime"), time.Time{})
}

// LanguageID returns the document language (Extended only).
func (s *Session) LanguageID() string {
	return graph.Resolve(s.root, join(pathHeader, "LanguageID.value"), "")
}

// IsCopy reports the copy indicator (Extended only).
func (s *Session) IsCopy() bool {
	return graph.Resolve(s.root, join(pathHeader, "CopyIndicator.value"), false)
}

// TestIndicator reports the test indicator of the document context.
func (s *Session) TestIndicator() bool {
	return graph.Resolve(s.root, join(pathContext, "TestIndicator.value"), false)
}

// Notes returns the content of every header note.
func (s *Session) Notes() []string {
	return collection.Flat(s.node(pathNotes), collection.Field("content", "Content.value", ""))
}

// FirstNote moves to the first header note.
func (s *Session) FirstNote() bool {
	return s.cursors.First(KeyNotes, s.length(pathNotes))
}

// NextNote moves to the next header note.
func (s *Session) NextNote() bool {
	return s.cursors.Next(KeyNotes, s.length(pathNotes))
}

// NoteContent returns the content of the current header note.
func (s *Session) NoteContent() string {
	return graph.Resolve(s.item(KeyNotes, pathNotes), "Content.value", "")
}

// NoteSubjectCode returns the subject code of the current header note
// (Comfort and Extended).
func (s *Session) NoteSubjectCode() string {
	return graph.Resolve(s.item(KeyNotes, pathNotes), "SubjectCode.value", "")
}

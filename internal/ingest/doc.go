// Package ingest reads documents from disk or stdin and extracts their text.
//
// Plain text is read as UTF-8, PDF pages are extracted with
// github.com/ledongthuc/pdf, and DOCX bodies are read from word/document.xml.
// Collect expands files and directories into the list of documents a batch
// should fingerprint, filtered by include/exclude glob patterns.
package ingest

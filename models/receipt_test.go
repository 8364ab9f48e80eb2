package models

import "testing"

func TestReceiptFileTypeHelpers(t *testing.T) {
	tests := []struct {
		filename string
		isImage  bool
		isPDF    bool
	}{
		{"receipt.jpg", true, false},
		{"Receipt.JPEG", true, false},
		{"scan.png", true, false},
		{"invoice.pdf", false, true},
		{"notes.docx", false, false},
		{"noextension", false, false},
	}

	for _, tt := range tests {
		r := Receipt{OriginalFilename: tt.filename}
		if got := r.IsImage(); got != tt.isImage {
			t.Errorf("IsImage(%q) = %v, want %v", tt.filename, got, tt.isImage)
		}
		if got := r.IsPDF(); got != tt.isPDF {
			t.Errorf("IsPDF(%q) = %v, want %v", tt.filename, got, tt.isPDF)
		}
	}
}

func TestReceiptFileSizeMB(t *testing.T) {
	r := Receipt{FileSize: 5 * 1024 * 1024}
	if got := r.FileSizeMB(); got != 5 {
		t.Errorf("FileSizeMB() = %v, want 5", got)
	}
}

func TestProjectStatusValidation(t *testing.T) {
	for _, status := range ProjectStatuses {
		if !IsValidProjectStatus(status) {
			t.Errorf("IsValidProjectStatus(%q) = false", status)
		}
	}
	if IsValidProjectStatus("demolished") {
		t.Error(`IsValidProjectStatus("demolished") = true`)
	}
	if IsValidProjectStatus("") {
		t.Error(`IsValidProjectStatus("") = true`)
	}
}

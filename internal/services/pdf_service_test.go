package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckDocument_RejectsEmptyUpload(t *testing.T) {
	service := NewPDFService()

	_, err := service.CheckDocument("poliza.pdf", nil)

	assert.ErrorIs(t, err, ErrNotAPDF)
}

func TestCheckDocument_RejectsWrongExtension(t *testing.T) {
	service := NewPDFService()

	_, err := service.CheckDocument("poliza.png", []byte("%PDF-1.7"))

	assert.ErrorIs(t, err, ErrNotAPDF)
}

func TestCheckDocument_RejectsGarbageBytes(t *testing.T) {
	service := NewPDFService()

	_, err := service.CheckDocument("poliza.pdf", []byte("definitely not a pdf"))

	assert.ErrorIs(t, err, ErrNotAPDF)
}

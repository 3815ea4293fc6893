package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/mkrylov/resume-analyzer/api/http/presenter"
	"github.com/mkrylov/resume-analyzer/pkg/extract"
)

// PDFHandler serves resume text extraction.
type PDFHandler struct{}

func NewPDFHandler() *PDFHandler { return &PDFHandler{} }

// ExtractText extracts plain text from an uploaded PDF or DOCX file.
// @Summary Extract text from a resume file
// @Tags    pdf
// @Accept  multipart/form-data
// @Produce json
// @Param   pdf formData file true "resume file (PDF or DOCX, max 5MB)"
// @Success 200 {object} map[string]string
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /pdf/extract-text [post]
func (h *PDFHandler) ExtractText(c *fiber.Ctx) error {
	fh, err := c.FormFile("pdf")
	if err != nil || fh == nil {
		// the web form posts "pdf"; accept "file" for API clients
		fh, err = c.FormFile("file")
	}
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, "no PDF file provided")
	}
	if fh.Size > extract.MaxBytes {
		return presenter.Error(c, http.StatusBadRequest, extract.ErrTooLarge.Error())
	}
	file, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()

	data, err := readAtMost(file, extract.MaxBytes)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	text, err := extract.Text(fh.Filename, data)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupported) || errors.Is(err, extract.ErrTooLarge) {
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, fmt.Sprintf("failed to extract text: %v", err))
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"text": text})
}

func readAtMost(f multipart.File, max int64) ([]byte, error) {
	limited := io.LimitReader(f, max+1)
	b, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(b)) > max {
		return nil, extract.ErrTooLarge
	}
	return b, nil
}

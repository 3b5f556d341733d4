package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"text/template"

	"github.com/jumapesa/billing-api/pkg/apperror"
	"github.com/sirupsen/logrus"
)

// TypstRenderer renders invoice documents to PDF by filling a Typst
// template and compiling it with the typst binary.
type TypstRenderer struct {
	binaryPath   string
	templatePath string
	fontDir      string
	outputDir    string
	logger       *logrus.Logger
}

// NewTypstRenderer creates a Typst-backed invoice renderer. Documents are
// written under outputDir/invoices.
func NewTypstRenderer(templatePath, fontDir, outputDir string, logger *logrus.Logger) *TypstRenderer {
	return &TypstRenderer{
		binaryPath:   "typst",
		templatePath: templatePath,
		fontDir:      fontDir,
		outputDir:    outputDir,
		logger:       logger,
	}
}

// templateData wraps the document with pre-formatted amounts so the
// template never deals with decimal arithmetic.
type templateData struct {
	*Document
	FormattedSubtotal  string
	FormattedTaxAmount string
	FormattedTotal     string
	FormattedLines     []formattedLine
}

type formattedLine struct {
	Description string
	Quantity    int
	UnitPrice   string
	Total       string
}

// Render fills the Typst template with the document data and compiles it.
// The output file is invoices/<serial>.pdf under the renderer's output
// directory, overwriting any previous artifact for the same serial.
func (r *TypstRenderer) Render(ctx context.Context, doc *Document) (string, error) {
	tmpl, err := template.ParseFiles(r.templatePath)
	if err != nil {
		r.logger.WithError(err).Error("failed to parse invoice template")
		return "", apperror.ErrRenderingFailed
	}

	data := templateData{
		Document:           doc,
		FormattedSubtotal:  FormatAmount(doc.Subtotal, doc.Format),
		FormattedTaxAmount: FormatAmount(doc.TaxAmount, doc.Format),
		FormattedTotal:     FormatAmount(doc.Total, doc.Format),
	}
	for _, line := range doc.Lines {
		data.FormattedLines = append(data.FormattedLines, formattedLine{
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   FormatAmount(line.UnitPrice, doc.Format),
			Total:       FormatAmount(line.Total, doc.Format),
		})
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		r.logger.WithError(err).Error("failed to execute invoice template")
		return "", apperror.ErrRenderingFailed
	}

	sourceFile, err := os.CreateTemp("", "invoice-*.typ")
	if err != nil {
		return "", apperror.ErrRenderingFailed
	}
	defer os.Remove(sourceFile.Name())

	if _, err := sourceFile.Write(rendered.Bytes()); err != nil {
		sourceFile.Close()
		return "", apperror.ErrRenderingFailed
	}
	sourceFile.Close()

	outputDir := filepath.Join(r.outputDir, "invoices")
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", apperror.ErrRenderingFailed
	}
	outputFile := filepath.Join(outputDir, fmt.Sprintf("%s.pdf", doc.Serial))

	args := []string{"compile"}
	if r.fontDir != "" {
		args = append(args, "--font-path", r.fontDir)
	}
	args = append(args, sourceFile.Name(), outputFile)

	cmd := exec.CommandContext(ctx, r.binaryPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		r.logger.WithFields(logrus.Fields{
			"serial": doc.Serial,
			"stderr": stderr.String(),
		}).WithError(err).Error("typst compilation failed")
		return "", apperror.ErrRenderingFailed
	}

	return outputFile, nil
}

package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/yurifrl/invoicer/pkg/models"
)

type FileType string

const (
	XLSX FileType = "xlsx"
	XLS  FileType = "xls"
)

var (
	ErrUnknownFileType  = errors.New("unknown file type")
	ErrEmptySheet       = errors.New("no data found in sheet")
	ErrNoWorkbookStream = errors.New("no workbook stream in xls container")
)

// maxRows bounds how far a legacy sheet is scanned.
const maxRows = 10000

// Parser extracts the first sheet of an uploaded workbook into a grid.
type Parser struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Parser {
	return &Parser{
		logger: logger,
	}
}

// ProcessFile reads a stored upload and extracts its grid.
func (p *Parser) ProcessFile(path string) (models.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return p.ProcessBytes(data, filepath.Base(path))
}

func (p *Parser) ProcessBytes(data []byte, filename string) (models.Grid, error) {
	fileType := detectType(filename)
	p.logger.Debug("detected file type", "type", fileType, "filename", filename)

	var (
		grid models.Grid
		err  error
	)
	switch fileType {
	case XLSX:
		grid, err = p.ParseXLSX(data)
	case XLS:
		grid, err = p.ParseXLS(data)
	default:
		p.logger.Debug("unknown file type", "filename", filename)
		return nil, ErrUnknownFileType
	}
	if err != nil {
		return nil, err
	}
	if len(grid) == 0 {
		return nil, ErrEmptySheet
	}
	p.logger.Debug("extracted grid", "filename", filename, "rows", len(grid), "cols", grid.Width())
	return grid, nil
}

func detectType(filename string) FileType {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return XLSX
	case ".xls":
		return XLS
	}
	return ""
}

package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/GitKaran4723/attendanceModule/internal/config"
	"github.com/GitKaran4723/attendanceModule/internal/domain"
	"github.com/GitKaran4723/attendanceModule/internal/dto"
	"github.com/GitKaran4723/attendanceModule/internal/middleware"
	"github.com/GitKaran4723/attendanceModule/internal/repository"
	"github.com/GitKaran4723/attendanceModule/internal/service"
	"github.com/GitKaran4723/attendanceModule/internal/storage"
)

// importTemplates drives both column validation hints and template
// downloads, one header row per import type.
var importTemplates = map[domain.ImportType][]string{
	domain.ImportStudents:  {"roll_number", "first_name", "last_name", "email", "date_of_birth", "phone", "guardian_name", "guardian_phone", "address", "program_code", "section_name", "admission_year", "gender"},
	domain.ImportFaculty:   {"employee_id", "first_name", "last_name", "email", "phone", "designation", "department"},
	domain.ImportSubjects:  {"subject_code", "subject_name", "semester", "credits", "subject_type", "program_code"},
	domain.ImportSchedules: {"subject_code", "faculty_employee_id", "section_name", "date", "start_time", "end_time", "room", "class_type"},
}

type ImportHandler struct {
	importService *service.ImportService
	importRepo    *repository.ImportRepository
	authMw        *middleware.AuthMiddleware
	storage       *storage.MinIOClient
	cfg           *config.Config
}

func NewImportHandler(
	importService *service.ImportService,
	importRepo *repository.ImportRepository,
	authMw *middleware.AuthMiddleware,
	storage *storage.MinIOClient,
	cfg *config.Config,
) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		importRepo:    importRepo,
		authMw:        authMw,
		storage:       storage,
		cfg:           cfg,
	}
}

// Upload accepts a CSV or XLSX file and runs the declared import type.
func (h *ImportHandler) Upload(c *fiber.Ctx) error {
	actor, err := h.authMw.GetActor(c)
	if err != nil {
		return respondError(c, err)
	}

	importType := domain.ImportType(c.Params("type"))
	if _, ok := importTemplates[importType]; !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Unknown import type. Use student, faculty, subject or schedule.",
		))
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "A file upload is required",
		))
	}
	if file.Size > int64(h.cfg.Import.MaxFileSizeMB)*1024*1024 {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse(
			"FILE_TOO_LARGE", fmt.Sprintf("File exceeds the %d MB limit", h.cfg.Import.MaxFileSizeMB),
		))
	}

	filename := strings.ToLower(file.Filename)
	isCSV := strings.HasSuffix(filename, ".csv")
	isXLSX := strings.HasSuffix(filename, ".xlsx")
	if !isCSV && !isXLSX {
		return h.failUnreadable(c, importType, file.Filename, actor, "unsupported file type, expected .csv or .xlsx")
	}

	f, err := file.Open()
	if err != nil {
		return h.failUnreadable(c, importType, file.Filename, actor, "could not open uploaded file")
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return h.failUnreadable(c, importType, file.Filename, actor, "could not read uploaded file")
	}

	var rows []service.ImportRow
	var parseErr error
	if isCSV {
		rows, parseErr = parseCSV(bytes.NewReader(raw))
	} else {
		rows, parseErr = parseXLSX(bytes.NewReader(raw))
	}
	if parseErr != nil {
		return h.failUnreadable(c, importType, file.Filename, actor, parseErr.Error())
	}
	if len(rows) > h.cfg.Import.MaxRows {
		return h.failUnreadable(c, importType, file.Filename, actor,
			fmt.Sprintf("file has %d rows, the limit is %d", len(rows), h.cfg.Import.MaxRows))
	}

	log, err := h.importService.Run(c.Context(), importType, file.Filename, rows, actor)
	if err != nil {
		return respondError(c, err)
	}

	// Archive the original file next to its audit record. Failure to
	// archive does not fail the import.
	objectKey := fmt.Sprintf("imports/%s/%s", log.ID, file.Filename)
	if err := h.storage.Upload(c.Context(), objectKey, bytes.NewReader(raw), int64(len(raw)), file.Header.Get("Content-Type")); err == nil {
		fileURL := h.storage.GetPublicURL(objectKey)
		log.FileURL = &fileURL
		_ = h.importRepo.Update(log)
	}

	return c.JSON(dto.SuccessResponse(dto.ToImportResultDTO(log), "Import finished"))
}

// failUnreadable writes a failed ImportLog with zero processed rows. The
// only whole-file failure mode is a file that cannot be read at all.
func (h *ImportHandler) failUnreadable(c *fiber.Ctx, importType domain.ImportType, fileName string, actor domain.Actor, reason string) error {
	log := &domain.ImportLog{
		ImportType: importType,
		ImportedBy: actor.UserID,
		FileName:   fileName,
		Status:     domain.ImportFailed,
		ErrorLog:   domain.RowErrorList{{Row: 0, Reason: reason}},
	}
	_ = h.importRepo.Create(log)

	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
		"UNREADABLE_FILE", reason,
	))
}

func (h *ImportHandler) ListLogs(c *fiber.Ctx) error {
	var importType *domain.ImportType
	if raw := c.Query("type"); raw != "" {
		t := domain.ImportType(raw)
		importType = &t
	}

	page, limit := pageParams(c)
	logs, total, err := h.importRepo.List(importType, page, limit)
	if err != nil {
		return respondError(c, err)
	}

	out := make([]dto.ImportLogDTO, 0, len(logs))
	for i := range logs {
		out = append(out, dto.ToImportLogDTO(&logs[i]))
	}
	return c.JSON(dto.SuccessWithMeta(out, dto.NewMeta(page, limit, total)))
}

func (h *ImportHandler) GetLog(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Invalid import log id",
		))
	}

	log, err := h.importRepo.FindByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse(dto.ToImportLogDTO(log), ""))
}

// Template streams an empty CSV with the expected header row.
func (h *ImportHandler) Template(c *fiber.Ctx) error {
	importType := domain.ImportType(c.Params("type"))
	header, ok := importTemplates[importType]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Unknown import type",
		))
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(header)
	w.Flush()

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s_import_template.csv", importType))
	return c.SendString(buf.String())
}

// parseCSV turns a CSV stream into header-keyed rows. Headers are
// lower-cased and trimmed.
func parseCSV(r io.Reader) ([]service.ImportRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV: %v", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	return recordsToRows(records), nil
}

func parseXLSX(r io.Reader) ([]service.ImportRow, error) {
	xlsx, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("invalid XLSX: %v", err)
	}
	defer xlsx.Close()

	sheets := xlsx.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	records, err := xlsx.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("could not read sheet: %v", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	return recordsToRows(records), nil
}

func recordsToRows(records [][]string) []service.ImportRow {
	header := make([]string, len(records[0]))
	for i, col := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(col))
	}

	rows := make([]service.ImportRow, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(service.ImportRow, len(header))
		for i, col := range header {
			if i >= len(record) {
				continue
			}
			value := record[i]
			if col == "start_time" || col == "end_time" {
				value = normalizeClock(value)
			}
			row[col] = value
		}
		rows = append(rows, row)
	}
	return rows
}

// normalizeClock accepts HH:MM and HH:MM:SS spreadsheet values.
func normalizeClock(v string) string {
	v = strings.TrimSpace(v)
	if t, err := time.Parse("15:04:05", v); err == nil {
		return t.Format("15:04")
	}
	return v
}

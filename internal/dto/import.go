package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/GitKaran4723/attendanceModule/internal/domain"
)

// ImportResultDTO summarizes one bulk import run.
type ImportResultDTO struct {
	ImportLogID    uuid.UUID         `json:"import_log_id"`
	ImportType     string            `json:"import_type"`
	FileName       string            `json:"file_name"`
	Status         string            `json:"status"`
	TotalRows      int               `json:"total_rows"`
	SuccessfulRows int               `json:"successful_rows"`
	FailedRows     int               `json:"failed_rows"`
	Errors         []domain.RowError `json:"errors,omitempty"`
}

// ImportLogDTO is one audit entry in the import history listing.
type ImportLogDTO struct {
	ID             uuid.UUID         `json:"id"`
	ImportType     string            `json:"import_type"`
	ImportedBy     uuid.UUID         `json:"imported_by"`
	ImporterName   string            `json:"importer_name,omitempty"`
	FileName       string            `json:"file_name"`
	FileURL        *string           `json:"file_url,omitempty"`
	TotalRows      int               `json:"total_rows"`
	SuccessfulRows int               `json:"successful_rows"`
	FailedRows     int               `json:"failed_rows"`
	Status         string            `json:"status"`
	Errors         []domain.RowError `json:"errors,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

func ToImportResultDTO(log *domain.ImportLog) ImportResultDTO {
	return ImportResultDTO{
		ImportLogID:    log.ID,
		ImportType:     string(log.ImportType),
		FileName:       log.FileName,
		Status:         string(log.Status),
		TotalRows:      log.TotalRows,
		SuccessfulRows: log.SuccessfulRows,
		FailedRows:     log.FailedRows,
		Errors:         log.ErrorLog,
	}
}

func ToImportLogDTO(log *domain.ImportLog) ImportLogDTO {
	out := ImportLogDTO{
		ID:             log.ID,
		ImportType:     string(log.ImportType),
		ImportedBy:     log.ImportedBy,
		FileName:       log.FileName,
		FileURL:        log.FileURL,
		TotalRows:      log.TotalRows,
		SuccessfulRows: log.SuccessfulRows,
		FailedRows:     log.FailedRows,
		Status:         string(log.Status),
		Errors:         log.ErrorLog,
		CreatedAt:      log.CreatedAt,
	}
	if log.ImportedUser != nil {
		out.ImporterName = log.ImportedUser.Username
	}
	return out
}

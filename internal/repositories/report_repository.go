package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anonto42/newsroom-social/backend/internal/models"
	"github.com/anonto42/newsroom-social/backend/internal/policy"
	"gorm.io/gorm"
)

// ReportRepository stores moderation reports.
type ReportRepository interface {
	ReportContent(ctx context.Context, reporterID uint, contentType string, contentID int64, reason string) (uint, error)
	GetReports(ctx context.Context, resolved *bool) ([]models.Report, error)
	GetReportByID(ctx context.Context, id uint) (*models.Report, error)
	ResolveReport(ctx context.Context, id uint, resolved bool) (bool, error)
	DeleteReport(ctx context.Context, id uint, actor policy.Actor) (models.DeleteResult, error)
}

type GormReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// ReportContent validates every field before writing.
func (r *GormReportRepository) ReportContent(ctx context.Context, reporterID uint, contentType string, contentID int64, reason string) (uint, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return 0, ErrEmptyReason
	}
	if !models.ValidContentType(contentType) {
		return 0, ErrInvalidContentType
	}
	if contentID <= 0 {
		return 0, ErrInvalidContentID
	}

	report := &models.Report{
		ReporterID:  reporterID,
		ContentType: contentType,
		ContentID:   contentID,
		Reason:      reason,
	}
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return 0, fmt.Errorf("create report: %w", err)
	}
	return report.ID, nil
}

// GetReports lists reports newest first, optionally filtered by resolution.
func (r *GormReportRepository) GetReports(ctx context.Context, resolved *bool) ([]models.Report, error) {
	reports := []models.Report{}
	q := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if resolved != nil {
		q = q.Where("is_resolved = ?", *resolved)
	}
	err := q.Find(&reports).Error
	return reports, err
}

func (r *GormReportRepository) GetReportByID(ctx context.Context, id uint) (*models.Report, error) {
	var report models.Report
	if err := r.db.WithContext(ctx).First(&report, id).Error; err != nil {
		return nil, translate(err)
	}
	return &report, nil
}

// ResolveReport returns false when no such report exists.
func (r *GormReportRepository) ResolveReport(ctx context.Context, id uint, resolved bool) (bool, error) {
	if _, err := r.GetReportByID(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	err := r.db.WithContext(ctx).Model(&models.Report{}).
		Where("id = ?", id).
		Update("is_resolved", resolved).Error
	if err != nil {
		return false, fmt.Errorf("resolve report %d: %w", id, err)
	}
	return true, nil
}

func (r *GormReportRepository) DeleteReport(ctx context.Context, id uint, actor policy.Actor) (models.DeleteResult, error) {
	report, err := r.GetReportByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.DeleteNotFound, nil
		}
		return 0, err
	}
	if !policy.CanDelete(actor, report) {
		return models.DeleteForbidden, nil
	}
	if err := r.db.WithContext(ctx).Delete(&models.Report{}, id).Error; err != nil {
		return 0, fmt.Errorf("delete report %d: %w", id, err)
	}
	return models.Deleted, nil
}

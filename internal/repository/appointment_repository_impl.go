package repository

import (
	"context"
	"errors"
	"time"

	"dentalcare-booking/internal/domain/entity"
	domainRepo "dentalcare-booking/internal/domain/repository"

	"gorm.io/gorm"
)

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, id int) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(ctx context.Context) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Order("date, time").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Save(appointment).Error
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id int, status entity.Status) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsSlotTaken counts live rows at (date, slot). Cancelled rows never block a
// booking; excludeID lets the edit flow keep its own slot.
func (r *appointmentRepository) IsSlotTaken(ctx context.Context, date time.Time, slot string, excludeID int) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("date = ? AND time = ? AND status != ?", date.Format("2006-01-02"), slot, entity.StatusCancelled)
	if excludeID > 0 {
		query = query.Where("id != ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

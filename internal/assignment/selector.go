package assignment

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"careconnect-server/internal/models"
)

// ErrNoDoctorsAvailable is returned when no doctor exists to take a request.
// The request is left pending; callers queue it rather than failing intake.
var ErrNoDoctorsAvailable = errors.New("no doctors available")

// Selector picks a doctor for a pending request and opens its session.
// Selection is best effort: nothing stops two concurrent requests from
// landing on the same doctor.
type Selector struct {
	db  *gorm.DB
	log *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector creates a Selector seeded from the current time.
func NewSelector(db *gorm.DB, log *zap.Logger) *Selector {
	return &Selector{
		db:  db,
		log: log,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Assign selects exactly one doctor for the given pending request, marks the
// request assigned and creates its waiting session. Online doctors are
// preferred; when none are online any registered doctor can be drafted. The
// request update and session insert run in one transaction so a session never
// references a request that is still pending.
func (s *Selector) Assign(request *models.DoctorRequest) (*models.User, *models.Session, error) {
	var doctors []models.User
	if err := s.db.Where("role = ? AND is_online = ?", models.RoleDoctor, true).Find(&doctors).Error; err != nil {
		return nil, nil, err
	}
	if len(doctors) == 0 {
		if err := s.db.Where("role = ?", models.RoleDoctor).Find(&doctors).Error; err != nil {
			return nil, nil, err
		}
	}
	if len(doctors) == 0 {
		return nil, nil, ErrNoDoctorsAvailable
	}

	doctor := s.pick(doctors)
	now := time.Now()
	session := &models.Session{
		PatientID: request.PatientID,
		DoctorID:  doctor.ID,
		RequestID: request.ID,
		Status:    models.SessionWaiting,
		StartTime: now,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"doctor_id":     doctor.ID,
			"status":        models.RequestAssigned,
			"assigned_date": now,
		}
		if err := tx.Model(request).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Create(session).Error
	})
	if err != nil {
		return nil, nil, err
	}

	request.DoctorID = &doctor.ID
	request.Status = models.RequestAssigned
	request.AssignedDate = &now

	s.log.Info("doctor assigned",
		zap.String("requestId", request.ID),
		zap.String("doctorId", doctor.ID),
		zap.Bool("doctorOnline", doctor.IsOnline),
	)
	return &doctor, session, nil
}

func (s *Selector) pick(doctors []models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pickRandom(doctors, s.rng)
}

// pickRandom chooses uniformly among the eligible doctors.
func pickRandom(doctors []models.User, rng *rand.Rand) models.User {
	return doctors[rng.Intn(len(doctors))]
}

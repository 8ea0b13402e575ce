package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"examen_backend/internal/model"
	"examen_backend/internal/repository"
	"examen_backend/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// codeAttempts bounds verification-code regeneration. With 32 bits of
// entropy per code a second collision in a row already means something
// is broken.
const codeAttempts = 5

type CertificateService struct {
	CertRepo   *repository.CertificateRepository
	ResultRepo *repository.ResultRepository
	Notifier   *NotificationService
}

func NewCertificateService(
	certRepo *repository.CertificateRepository,
	resultRepo *repository.ResultRepository,
	notifier *NotificationService,
) *CertificateService {
	return &CertificateService{
		CertRepo:   certRepo,
		ResultRepo: resultRepo,
		Notifier:   notifier,
	}
}

// GenerateVerificationCode mints a candidate certificate code. The store
// still enforces uniqueness; this only makes collisions negligible.
func GenerateVerificationCode() string {
	return fmt.Sprintf("IFCES-%s", strings.ToUpper(uuid.New().String()[:8]))
}

// IssueOrFetch mints the certificate for a passing result, or returns
// the existing one unchanged. Safe to retry: at most one certificate per
// result ever exists.
func (s *CertificateService) IssueOrFetch(resultID, requesterID uint) (*model.Certificate, bool, error) {
	result, err := s.ResultRepo.FindByID(resultID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, util.ErrNotFound
		}
		return nil, false, err
	}

	if result.StudentID != requesterID {
		return nil, false, util.ErrForbidden
	}

	passingScore := DefaultPassingScore
	if result.Exam != nil && result.Exam.PassingScore != 0 {
		passingScore = result.Exam.PassingScore
	}
	if !IsPassing(result.Score, passingScore) {
		return nil, false, util.ErrNotEligible
	}

	if existing, err := s.CertRepo.FindByResultID(resultID); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	cert, err := s.create(result)
	if err != nil {
		return nil, false, err
	}

	examTitle := ""
	if result.Exam != nil {
		examTitle = result.Exam.Title
	}
	_, err = s.Notifier.Send(
		result.StudentID,
		model.NotificationSuccess,
		"Certificate issued",
		fmt.Sprintf("Your certificate for %s is ready", examTitle),
		fmt.Sprintf("/certificates/%s", cert.VerificationCode),
	)
	if err != nil {
		return nil, false, err
	}

	return cert, true, nil
}

// create inserts the certificate, regenerating the code on a code
// collision and falling back to the stored row when a concurrent request
// won the result_id race.
func (s *CertificateService) create(result *model.ExamResult) (*model.Certificate, error) {
	for attempt := 0; attempt < codeAttempts; attempt++ {
		cert := &model.Certificate{
			StudentID:        result.StudentID,
			ExamID:           result.ExamID,
			ResultID:         result.ID,
			VerificationCode: GenerateVerificationCode(),
			IssuedAt:         time.Now(),
			Score:            result.Score,
		}

		err := s.CertRepo.Create(cert)
		if err == nil {
			return cert, nil
		}
		if !repository.IsDuplicateKey(err) {
			return nil, err
		}

		// Either the code collided (retry with a fresh one) or another
		// request already issued for this result (return theirs).
		if existing, ferr := s.CertRepo.FindByResultID(result.ID); ferr == nil {
			return existing, nil
		}
	}
	return nil, fmt.Errorf("certificate code generation kept colliding for result %d", result.ID)
}

// Lookup resolves a certificate by verification code. Public: no actor.
func (s *CertificateService) Lookup(code string) (*model.Certificate, error) {
	cert, err := s.CertRepo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}
	return cert, nil
}

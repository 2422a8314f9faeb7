package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"gorm.io/gorm"

	"benishangul-police/idregistry/internal/apperrors"
	"benishangul-police/idregistry/internal/common"
	"benishangul-police/idregistry/internal/constants"
	"benishangul-police/idregistry/internal/db"
	"benishangul-police/idregistry/internal/logging"
	"benishangul-police/idregistry/internal/models/dtos/requests"
	gormModels "benishangul-police/idregistry/internal/models/gorm"
)

// IssuanceService is the only writer of new ID numbers. Allocation reads the
// counter row, increments it, and inserts the member inside one transaction;
// the mutex serializes concurrent issue calls so two requests can never see
// the same counter value.
type IssuanceService struct {
	store      *db.Store
	translator common.Translator
	prefix     string

	mu sync.Mutex
}

// NewIssuanceService creates the issuance service. The number prefix comes
// from ID_PREFIX, defaulting to BGR-POL-.
func NewIssuanceService(store *db.Store, translator common.Translator) *IssuanceService {
	prefix := os.Getenv("ID_PREFIX")
	if prefix == "" {
		prefix = constants.DefaultIDPrefix
	}
	if translator == nil {
		translator = common.NoopTranslator{}
	}
	return &IssuanceService{store: store, translator: translator, prefix: prefix}
}

// Issue allocates the next ID number and creates the member record.
func (s *IssuanceService) Issue(ctx context.Context, req *requests.MemberRequest) (*gormModels.Member, error) {
	if req.FullNameAm == "" && req.FullNameEn == "" {
		return nil, apperrors.New(apperrors.KindValidation, "full name is required")
	}

	member := memberFromRequest(req)
	s.fillBilingual(ctx, member)

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.store.Gorm().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var counter gormModels.IDCounter
		if err := tx.First(&counter, 1).Error; err != nil {
			return fmt.Errorf("counter read failed: %w", err)
		}

		counter.Value++
		member.IDNumber = fmt.Sprintf("%s%0*d", s.prefix, constants.IDNumberWidth, counter.Value)

		if err := tx.Create(member).Error; err != nil {
			return err
		}

		return tx.Model(&gormModels.IDCounter{}).
			Where("id = ?", counter.ID).
			Update("value", counter.Value).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.New(apperrors.KindConflict, "id number already exists")
		}
		return nil, apperrors.Wrap(err, apperrors.KindStorage, "failed to issue id card")
	}

	logging.Info("id card issued", "id_number", member.IDNumber)
	return member, nil
}

// fillBilingual translates whichever side of each name/rank/responsibility
// pair is missing. A translator failure falls back to the source text; a card
// with a duplicated name beats a failed issuance.
func (s *IssuanceService) fillBilingual(ctx context.Context, m *gormModels.Member) {
	pairs := []struct {
		am *string
		en *string
	}{
		{&m.FullNameAm, &m.FullNameEn},
		{&m.RankAm, &m.RankEn},
		{&m.ResponsibilityAm, &m.ResponsibilityEn},
	}

	for _, p := range pairs {
		switch {
		case *p.am == "" && *p.en != "":
			*p.am = s.translateOr(ctx, *p.en, "am")
		case *p.en == "" && *p.am != "":
			*p.en = s.translateOr(ctx, *p.am, "en")
		}
	}
}

func (s *IssuanceService) translateOr(ctx context.Context, text, targetLang string) string {
	translated, err := s.translator.Translate(ctx, text, targetLang)
	if err != nil || translated == "" {
		if err != nil {
			logging.Warn("translation failed, keeping source text", "target", targetLang, "error", err.Error())
		}
		return text
	}
	return translated
}

func memberFromRequest(req *requests.MemberRequest) *gormModels.Member {
	return &gormModels.Member{
		FullNameAm:            req.FullNameAm,
		FullNameEn:            req.FullNameEn,
		RankAm:                req.RankAm,
		RankEn:                req.RankEn,
		ResponsibilityAm:      req.ResponsibilityAm,
		ResponsibilityEn:      req.ResponsibilityEn,
		Phone:                 req.Phone,
		PhotoURL:              req.PhotoURL,
		CommissionerSignature: req.CommissionerSignature,
		BloodType:             req.BloodType,
		BadgeNumber:           req.BadgeNumber,
		Gender:                req.Gender,
		Complexion:            req.Complexion,
		Height:                req.Height,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
	}
}

// ApplyUpdate copies the writable fields onto an existing member, leaving the
// id, id_number, and created_at untouched.
func ApplyUpdate(m *gormModels.Member, req *requests.MemberRequest) {
	updated := memberFromRequest(req)
	updated.ID = m.ID
	updated.IDNumber = m.IDNumber
	updated.CreatedAt = m.CreatedAt
	*m = *updated
}

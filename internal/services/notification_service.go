// internal/services/notification_service.go
package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jenny07007/deserhub-backend/internal/models"
)

// NotificationService emits marketplace events: a persisted PlatformEvent row
// written inside the operation's transaction plus a structured log line.
// Events are informational only; nothing reads them back.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) PaperCreated(tx *gorm.DB, paper *models.PaperEntry) error {
	event := &models.PlatformEvent{
		Type:       models.EventTypePaperCreated,
		PlatformID: &paper.PlatformID,
		ActorID:    &paper.ResearcherID,
		ResourceID: &paper.ID,
		Data: models.JSONB{
			"researcher":  paper.ResearcherID.String(),
			"paper_entry": paper.ID.String(),
			"title":       paper.Title,
			"open_access": paper.OpenAccess,
			"price":       paper.Price,
		},
	}
	if err := tx.Create(event).Error; err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"researcher":  paper.ResearcherID,
		"paper_entry": paper.ID,
		"title":       paper.Title,
		"open_access": paper.OpenAccess,
		"price":       paper.Price,
	}).Info("Paper created")
	return nil
}

func (s *NotificationService) PassCreated(tx *gorm.DB, pass *models.PaperAccessPass, platformID uuid.UUID) error {
	event := &models.PlatformEvent{
		Type:       models.EventTypePassCreated,
		PlatformID: &platformID,
		ActorID:    &pass.ReaderID,
		ResourceID: &pass.ID,
		Data: models.JSONB{
			"paper_entry":       pass.PaperEntryID.String(),
			"paper_access_pass": pass.ID.String(),
			"owner":             pass.ReaderID.String(),
			"price":             pass.PricePaid,
			"purchased_at":      pass.PurchasedAt.Unix(),
		},
	}
	if err := tx.Create(event).Error; err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"paper_entry":       pass.PaperEntryID,
		"paper_access_pass": pass.ID,
		"owner":             pass.ReaderID,
		"price":             pass.PricePaid,
	}).Info("Paper access pass created")
	return nil
}

func (s *NotificationService) CredentialIssued(tx *gorm.DB, credential *models.Credential) error {
	event := &models.PlatformEvent{
		Type:       models.EventTypeCredentialIssued,
		PlatformID: &credential.AuthorityID,
		ActorID:    &credential.OwnerID,
		ResourceID: &credential.ID,
		Data: models.JSONB{
			"pass":         credential.PassID.String(),
			"credential":   credential.ID.String(),
			"mint_address": credential.MintAddress,
			"owner":        credential.OwnerID.String(),
		},
	}
	if err := tx.Create(event).Error; err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"pass":         credential.PassID,
		"credential":   credential.ID,
		"mint_address": credential.MintAddress,
		"owner":        credential.OwnerID,
	}).Info("Credential issued")
	return nil
}

func (s *NotificationService) Withdrawal(tx *gorm.DB, platformID, operatorID uuid.UUID, amount uint64) error {
	event := &models.PlatformEvent{
		Type:       models.EventTypeWithdrawal,
		PlatformID: &platformID,
		ActorID:    &operatorID,
		Data: models.JSONB{
			"amount":       amount,
			"withdrawn_at": time.Now().Unix(),
		},
	}
	if err := tx.Create(event).Error; err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"platform": platformID,
		"operator": operatorID,
		"amount":   amount,
	}).Info("Treasury withdrawal")
	return nil
}
